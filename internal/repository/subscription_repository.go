package repository

import (
	"context"

	"feedshelf/internal/domain/entity"
)

// SubscriptionRepository mirrors folders and their sources into a database.
//
// ReplaceAll stores exactly the given folders, in order, discarding whatever
// was stored before. ListFolders returns folders ordered by position with
// their sources ordered by position; an empty store returns an empty slice.
type SubscriptionRepository interface {
	ReplaceAll(ctx context.Context, folders []*entity.Folder) error
	ListFolders(ctx context.Context) ([]*entity.Folder, error)
}
