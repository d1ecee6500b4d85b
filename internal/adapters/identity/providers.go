package identity

import (
	"github.com/google/wire"

	"github.com/newshub/news-service/internal/identity/ports"
	"github.com/newshub/news-service/internal/platform/logger"
)

// ProvideGateway provides the user service client as its port interface
func ProvideGateway(cfg Config, log logger.Logger) ports.Gateway {
	return NewClient(cfg, log)
}

// ProviderSet is the wire provider set for the identity gateway
var ProviderSet = wire.NewSet(
	ProvideGateway,
)
