package repo

import "github.com/rogerio-castellano/shop-pos/internal/models"

type MostMovedProduct struct {
	Name          string `json:"name"`
	MovementCount int    `json:"movement_count"`
}

type Metrics struct {
	TotalProducts    int              `json:"total_products"`
	TotalUnits       int              `json:"total_units"`
	LowStockCount    int              `json:"low_stock_count"`
	TotalMovements   int              `json:"total_movements"`
	MostMovedProduct MostMovedProduct `json:"most_moved_product"`
}

type MetricsRepository interface {
	GetDashboardMetrics(products []models.Product) (Metrics, error)
}
