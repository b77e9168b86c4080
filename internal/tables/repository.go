package tables

import (
	"context"

	"comanda/internal/models"
)

// Mutator transforms a restaurant snapshot inside a commit. Returning an
// error aborts the commit without writing; the mutator must not retain the
// snapshot after returning.
type Mutator func(r *models.Restaurant) error

// Repository is the transaction boundary around the shared restaurant
// document. Load returns a point-in-time snapshot; Commit re-reads the
// current state, applies the mutator and writes atomically, retrying on
// concurrent-write conflicts. The variant engine never sees this interface:
// only the service layer does.
type Repository interface {
	Load(ctx context.Context, scope string) (*models.Restaurant, error)
	Commit(ctx context.Context, scope string, fn Mutator) (*models.Restaurant, error)
}
