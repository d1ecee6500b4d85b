package rest

import (
	"github.com/google/wire"
)

// ProviderSet is the wire provider set for REST handlers
var ProviderSet = wire.NewSet(
	NewBaseHandler,
	NewNewsHandler,
	NewCommentHandler,
	NewHistoryHandler,
	NewHealthHandler,
	NewRouter,
)
