// Package listing serves direct listing access: the one path where solved
// cases remain reachable.
package listing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domlisting "github.com/gasit-app/gasit/internal/domain/listing"
	"github.com/gasit-app/gasit/internal/logger"
)

// Service handles listing detail fetches.
type Service struct {
	repo Repository
}

// New creates a listing service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get fetches a listing by id and bumps its view counter. The counter is a
// best-effort side effect: a failed increment never fails the fetch.
func (s *Service) Get(ctx context.Context, id string) (domlisting.Listing, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return domlisting.Listing{}, fmt.Errorf("get listing: %w", err)
	}

	views, err := s.repo.IncrViews(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Warn("view counter increment failed",
			zap.String("listing_id", id), zap.Error(err))
		return l, nil
	}

	return domlisting.Reconstruct(
		l.ID(), l.Title(), l.Content(), l.Category(), l.Status(),
		l.Location(), l.CircleRadius(), l.CreatedAt(), l.LastSeenAt(),
		l.Promotion(), views, l.Images(),
	), nil
}
