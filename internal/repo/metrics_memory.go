package repo

import "github.com/rogerio-castellano/shop-pos/internal/models"

// InMemoryMetricsRepository derives dashboard metrics from an already loaded
// catalog and the movement log.
type InMemoryMetricsRepository struct {
	movementRepo      MovementRepository
	lowStockThreshold int
}

func NewInMemoryMetricsRepository(movementRepo MovementRepository, lowStockThreshold int) *InMemoryMetricsRepository {
	if movementRepo == nil {
		movementRepo = NopMovementRepository{}
	}
	return &InMemoryMetricsRepository{
		movementRepo:      movementRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(products []models.Product) (Metrics, error) {
	m := Metrics{TotalProducts: len(products)}

	zero := 0
	for _, product := range products {
		m.TotalUnits += product.Stock
		if product.Stock < i.lowStockThreshold {
			m.LowStockCount++
		}

		_, count, err := i.movementRepo.GetByProduct(product.Name, MovementFilter{Limit: &zero})
		if err != nil {
			return m, err
		}
		if count > m.MostMovedProduct.MovementCount {
			m.MostMovedProduct.Name = product.Name
			m.MostMovedProduct.MovementCount = count
		}
	}

	total, err := i.movementRepo.Count()
	if err != nil {
		return m, err
	}
	m.TotalMovements = total

	return m, nil
}
