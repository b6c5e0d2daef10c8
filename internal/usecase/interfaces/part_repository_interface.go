package interfaces

import (
	"context"

	"oficina_quotes/internal/domain/entities"
)

// IPartRepository abstracts the parts inventory.
//
// Lookups return a zero Part and a nil error when nothing matches.
// ConditionalDecrement subtracts amount only if the stored quantity is at
// least amount; when the precondition fails (or the part is gone) it returns
// a zero Part and a nil error.
type IPartRepository interface {
	GetByID(ctx context.Context, id string) (entities.Part, error)
	GetByName(ctx context.Context, name string) (entities.Part, error)
	ConditionalDecrement(ctx context.Context, id string, amount int) (entities.Part, error)
	Increment(ctx context.Context, id string, amount int) (entities.Part, error)
}
