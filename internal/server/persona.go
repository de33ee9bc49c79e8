package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetPersona(c *gin.Context) {
	p, err := s.personaSvc.GetPersonaData(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if p == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}
