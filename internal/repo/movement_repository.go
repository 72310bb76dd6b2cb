package repo

import (
	"github.com/rogerio-castellano/shop-pos/internal/models"
)

// MovementRepository is the audit trail of stock changes made by sales and restocks.
type MovementRepository interface {
	Log(m models.Movement) error
	// GetByProduct returns the matching page of movements, newest first, plus
	// the total number of movements matching the filter.
	GetByProduct(name string, mf MovementFilter) ([]models.Movement, int, error)
	Count() (int, error)
}

// NopMovementRepository discards movements; used when no movement log is configured.
type NopMovementRepository struct{}

func (NopMovementRepository) Log(models.Movement) error { return nil }

func (NopMovementRepository) GetByProduct(string, MovementFilter) ([]models.Movement, int, error) {
	return []models.Movement{}, 0, nil
}

func (NopMovementRepository) Count() (int, error) { return 0, nil }
