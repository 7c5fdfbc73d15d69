package listing

import (
	"context"

	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
)

// Repository defines the storage contract for direct listing access.
type Repository interface {
	Get(ctx context.Context, id string) (domlisting.Listing, error)
	IncrViews(ctx context.Context, id string) (int64, error)
}
