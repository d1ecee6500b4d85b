package application

import "github.com/google/wire"

// ProviderSet is the wire provider set for the news application services
var ProviderSet = wire.NewSet(
	NewAuthorizer,
	NewCommentCache,
	NewNewsService,
	NewCommentService,
	NewHistoryService,
)
