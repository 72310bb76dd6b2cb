// Package invoice writes the text receipt of a completed sale or restock.
package invoice

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rogerio-castellano/shop-pos/internal/models"
)

const (
	fileStampLayout = "20060102_150405"
	dateLayout      = "2006-01-02 15:04:05.000000"
)

var (
	// ErrNoItems is returned when asked to record an invoice without line items.
	ErrNoItems = errors.New("invoice has no items")
	// ErrInvoiceExists is returned when an invoice file for the same second already exists.
	ErrInvoiceExists = errors.New("invoice file already exists")
)

// Recorder writes one invoice file per transaction into a directory.
type Recorder struct {
	dir      string
	currency string
}

func NewRecorder(dir, currency string) *Recorder {
	if dir == "" {
		dir = "."
	}
	return &Recorder{dir: dir, currency: currency}
}

// Filename returns the path the invoice will be written to.
func (r *Recorder) Filename(inv models.Invoice) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s_%s.txt", filePrefix(inv.Kind), inv.IssuedAt.Format(fileStampLayout)))
}

// WriteInvoice writes inv to a new file and returns its path. An existing file
// is never overwritten.
func (r *Recorder) WriteInvoice(inv models.Invoice) (path string, err error) {
	if len(inv.Items) == 0 {
		return "", ErrNoItems
	}

	path = r.Filename(inv)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrInvoiceExists, path)
		}
		return "", fmt.Errorf("failed to create invoice %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close invoice %s: %w", path, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	r.render(w, inv)
	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write invoice %s: %w", path, err)
	}
	return path, nil
}

// RemoveInvoice deletes an invoice written by WriteInvoice.
func (r *Recorder) RemoveInvoice(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove invoice %s: %w", path, err)
	}
	return nil
}

func (r *Recorder) render(w *bufio.Writer, inv models.Invoice) {
	fmt.Fprintf(w, "%s: %s\n", counterpartyLabel(inv.Kind), inv.Counterparty)
	fmt.Fprintf(w, "Date: %s\n", inv.IssuedAt.Format(dateLayout))
	fmt.Fprintf(w, "Reference: %s\n\n", inv.TransactionID)

	fmt.Fprint(w, "Item\tBrand\tQty\tRate\tAmount\n")
	for _, li := range inv.Items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			li.Name, li.Brand, li.Quantity, models.FormatDecimal(li.UnitPrice), models.FormatDecimal(li.Amount()))
	}

	total := models.FormatDecimal(inv.Total())
	if r.currency != "" {
		total = r.currency + " " + total
	}
	fmt.Fprintf(w, "\n%s: %s\n", totalLabel(inv.Kind), total)
}

func filePrefix(k models.InvoiceKind) string {
	if k == models.RestockInvoice {
		return "RestockInvoice"
	}
	return "SalesInvoice"
}

func counterpartyLabel(k models.InvoiceKind) string {
	if k == models.RestockInvoice {
		return "Supplier"
	}
	return "Customer"
}

func totalLabel(k models.InvoiceKind) string {
	if k == models.RestockInvoice {
		return "Total Purchase Amount"
	}
	return "Total Sales Amount"
}
