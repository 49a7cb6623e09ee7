package cats

import "context"

// Repository persiste gatos. Create asigna el ID; Update/Delete/GetByID
// devuelven ErrNotFound si el id no existe.
type Repository interface {
	Create(ctx context.Context, c Cat) (Cat, error)
	Update(ctx context.Context, c Cat) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (Cat, error)
	List(ctx context.Context) ([]Cat, error)
}
