package catalog

import (
	"context"

	"github.com/dmitrijs2005/notflix/internal/client/models"
	"golang.org/x/sync/errgroup"
)

type Row struct {
	Shelf Shelf
	Items []models.CatalogTitle
}

// FetchBatch fetches every shelf concurrently. Either all rows come back, in
// shelf order, or the first error does.
func (c *Client) FetchBatch(ctx context.Context, shelves []Shelf) ([]Row, error) {
	rows := make([]Row, len(shelves))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range shelves {
		g.Go(func() error {
			items, err := c.List(gctx, s)
			if err != nil {
				return err
			}
			rows[i] = Row{Shelf: s, Items: items}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}
