package persona

import (
	"github.com/smallbiznis/accountresolver/internal/persona/repository"
	"github.com/smallbiznis/accountresolver/internal/persona/service"
	"go.uber.org/fx"
)

var Module = fx.Module("persona.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
