package repo

import (
	"github.com/rogerio-castellano/shop-pos/internal/models"
)

type InMemoryMovementRepository struct {
	movements []models.Movement
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{
		movements: []models.Movement{},
	}
}

// Log appends a movement, assigning the next ID.
func (r *InMemoryMovementRepository) Log(m models.Movement) error {
	m.ID = len(r.movements) + 1
	r.movements = append(r.movements, m)
	return nil
}

// GetByProduct returns movements for a product, newest first, optionally filtered by date range and paginated
func (r *InMemoryMovementRepository) GetByProduct(name string, mf MovementFilter) ([]models.Movement, int, error) {
	key := models.NameKey(name)

	var filtered []models.Movement
	for i := len(r.movements) - 1; i >= 0; i-- {
		m := r.movements[i]
		if models.NameKey(m.ProductName) == key && mf.matches(m.CreatedAt) {
			filtered = append(filtered, m)
		}
	}

	start, end := mf.page(len(filtered))
	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryMovementRepository) Count() (int, error) {
	return len(r.movements), nil
}

func (r *InMemoryMovementRepository) All() []models.Movement {
	out := make([]models.Movement, len(r.movements))
	copy(out, r.movements)
	return out
}
