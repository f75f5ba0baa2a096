package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"github.com/dmitrijs2005/notflix/internal/common"
)

type TitleBackend interface {
	FindTitle(ctx context.Context, externalID string) (*models.Title, error)
	CreateTitle(ctx context.Context, t *models.Title) (*models.Title, error)
}

// resolveTitle returns the stored id for a catalog item, creating the row on
// first use. A concurrent creator winning the insert is not an error.
func resolveTitle(ctx context.Context, store TitleBackend, c models.CatalogTitle) (int64, error) {
	t, err := store.FindTitle(ctx, c.ExternalID())
	if err == nil {
		return t.ID, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return 0, err
	}

	created, err := store.CreateTitle(ctx, TitleFromCatalog(c))
	if errors.Is(err, common.ErrorAlreadyExists) {
		t, err = store.FindTitle(ctx, c.ExternalID())
		if err != nil {
			return 0, err
		}
		return t.ID, nil
	}
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// lookupTitle reports whether a title is stored without creating it.
func lookupTitle(ctx context.Context, store TitleBackend, externalID string) (int64, bool, error) {
	t, err := store.FindTitle(ctx, externalID)
	if errors.Is(err, common.ErrorNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return t.ID, true, nil
}
