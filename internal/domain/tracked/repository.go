package tracked

import "context"

// Repository describes tracked-player persistence needs from use cases.
// List returns rows sorted by name ascending at the storage layer. Update
// stamps updated_at as part of the same write; the boolean results report
// whether the target row existed.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByID(ctx context.Context, id string) (Player, bool, error)
	Create(ctx context.Context, item Player) (Player, error)
	Update(ctx context.Context, id string, changes Update) (Player, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
