package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
)

const ruleWidth = 65

func writeProducts(w io.Writer, products []models.Product, currency string) {
	rule := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(w, "\nAvailable Products:\n\n")
	fmt.Fprintf(w, "%-20s%-15s%-8s%-12s%s\n", "Product", "Brand", "Stock", "Price ("+currency+")", "Origin")
	fmt.Fprintln(w, rule)
	for _, p := range products {
		fmt.Fprintf(w, "%-20s%-15s%-8d%-12s%s\n", p.Name, p.Brand, p.Stock, models.FormatDecimal(p.SellingPrice), p.Country)
	}
	fmt.Fprintln(w, rule)
}

func writeMetrics(w io.Writer, m repo.Metrics) {
	fmt.Fprintf(w, "Products: %d  Units in stock: %d  Low stock: %d\n", m.TotalProducts, m.TotalUnits, m.LowStockCount)
	if m.TotalMovements > 0 {
		fmt.Fprintf(w, "Movements: %d  Most moved: %s (%d)\n", m.TotalMovements, m.MostMovedProduct.Name, m.MostMovedProduct.MovementCount)
	}
	fmt.Fprintln(w)
}
