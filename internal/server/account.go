package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/smallbiznis/accountresolver/internal/subscription/domain"
	"github.com/smallbiznis/accountresolver/internal/subscription/policy"
)

type tierResponse struct {
	Tier   *subscriptiondomain.Tier `json:"tier"`
	Absent bool                     `json:"absent"`
}

func (s *Server) GetAccount(c *gin.Context) {
	acc, err := s.accountSvc.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if acc == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": acc})
}

// GetAccountTier resolves the account tier. strict=true answers 404 when the
// tier is absent; fallback=<TIER> substitutes it; otherwise absence is reported
// in the body.
func (s *Server) GetAccountTier(c *gin.Context) {
	var query struct {
		Fallback string `form:"fallback"`
		Strict   string `form:"strict"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	strict := false
	if raw := strings.TrimSpace(query.Strict); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			AbortWithError(c, newValidationError("strict", "invalid_strict", "strict must be a boolean"))
			return
		}
		strict = parsed
	}

	var fallback *subscriptiondomain.Tier
	if raw := strings.TrimSpace(query.Fallback); raw != "" {
		tier, err := subscriptiondomain.ParseTier(raw)
		if err != nil {
			AbortWithError(c, newValidationError("fallback", "invalid_tier", "unknown tier"))
			return
		}
		fallback = &tier
	}

	acc, err := s.accountSvc.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if acc == nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	switch {
	case strict:
		tier, err := policy.ResolveOrFail(acc)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": tierResponse{Tier: &tier}})
	case fallback != nil:
		tier := policy.ExtractTierOr(acc, *fallback)
		c.JSON(http.StatusOK, gin.H{"data": tierResponse{Tier: &tier, Absent: policy.IsTierAbsent(acc)}})
	default:
		resp := tierResponse{Absent: true}
		if tier, ok := policy.ExtractTier(acc); ok {
			resp = tierResponse{Tier: &tier}
		}
		c.JSON(http.StatusOK, gin.H{"data": resp})
	}
}
