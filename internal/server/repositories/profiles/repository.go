// Package profiles stores viewer profiles. Every operation is scoped to the
// owning user; a profile of another user behaves as missing.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/notflix/internal/server/models"
)

type Repository interface {
	// List returns the user's profiles oldest first.
	List(ctx context.Context, userID string) ([]models.Profile, error)
	// LockOwner locks the owning user row until the surrounding transaction
	// ends, serializing profile creation per account.
	LockOwner(ctx context.Context, userID string) error
	Count(ctx context.Context, userID string) (int, error)
	Get(ctx context.Context, userID string, id int64) (*models.Profile, error)
	Create(ctx context.Context, p *models.Profile) (*models.Profile, error)
	Update(ctx context.Context, userID string, id int64, name, color string) error
	Delete(ctx context.Context, userID string, id int64) error
}
