package service

import (
	"context"
	"strings"

	personadomain "github.com/smallbiznis/accountresolver/internal/persona/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	log  *zap.Logger
	repo personadomain.Repository
}

type ServiceParam struct {
	fx.In

	Log  *zap.Logger
	Repo personadomain.Repository
}

func NewService(p ServiceParam) personadomain.Service {
	log := p.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		log:  log.Named("persona.service"),
		repo: p.Repo,
	}
}

// GetPersonaData returns the persona or (nil, nil) when none is stored.
func (s *Service) GetPersonaData(ctx context.Context, id string) (*personadomain.Persona, error) {
	if strings.TrimSpace(id) == "" {
		return nil, personadomain.ErrInvalidPersonaID
	}
	return s.repo.FindByID(ctx, id)
}
