package invoice_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/shop-pos/internal/invoice"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/shopspring/decimal"
)

var (
	issuedAt = time.Date(2025, 6, 14, 9, 5, 7, 123456000, time.Local)
	txID     = uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e")
)

func TestWriteInvoice_Sale(t *testing.T) {
	dir := t.TempDir()
	r := invoice.NewRecorder(dir, "Rs.")

	path, err := r.WriteInvoice(models.Invoice{
		Kind:          models.SaleInvoice,
		Counterparty:  "Asha",
		TransactionID: txID,
		IssuedAt:      issuedAt,
		Items: []models.LineItem{
			{Name: "Soap", Brand: "Dove", Quantity: 3, UnitPrice: decimal.RequireFromString("100.0")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := filepath.Join(dir, "SalesInvoice_20250614_090507.txt"); path != want {
		t.Errorf("expected path %s, got %s", want, path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read invoice: %v", err)
	}
	want := "Customer: Asha\n" +
		"Date: 2025-06-14 09:05:07.123456\n" +
		"Reference: 6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e\n" +
		"\n" +
		"Item\tBrand\tQty\tRate\tAmount\n" +
		"Soap\tDove\t3\t100.0\t300.0\n" +
		"\n" +
		"Total Sales Amount: Rs. 300.0\n"
	if string(got) != want {
		t.Errorf("unexpected invoice:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriteInvoice_Restock(t *testing.T) {
	dir := t.TempDir()
	r := invoice.NewRecorder(dir, "Rs.")

	path, err := r.WriteInvoice(models.Invoice{
		Kind:          models.RestockInvoice,
		Counterparty:  "Glow Traders",
		TransactionID: txID,
		IssuedAt:      issuedAt,
		Items: []models.LineItem{
			{Name: "Lotion", Brand: "Nivea", Quantity: 20, UnitPrice: decimal.RequireFromString("30.0")},
			{Name: "Soap", Brand: "Dove", Quantity: 5, UnitPrice: decimal.RequireFromString("45.5")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(path) != "RestockInvoice_20250614_090507.txt" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	got, _ := os.ReadFile(path)
	want := "Supplier: Glow Traders\n" +
		"Date: 2025-06-14 09:05:07.123456\n" +
		"Reference: 6f1c2d3e-4a5b-4c6d-8e7f-901a2b3c4d5e\n" +
		"\n" +
		"Item\tBrand\tQty\tRate\tAmount\n" +
		"Lotion\tNivea\t20\t30.0\t600.0\n" +
		"Soap\tDove\t5\t45.5\t227.5\n" +
		"\n" +
		"Total Purchase Amount: Rs. 827.5\n"
	if string(got) != want {
		t.Errorf("unexpected invoice:\n%q\nwant:\n%q", got, want)
	}
}

func TestWriteInvoice_NoItems(t *testing.T) {
	dir := t.TempDir()
	r := invoice.NewRecorder(dir, "Rs.")

	_, err := r.WriteInvoice(models.Invoice{Kind: models.SaleInvoice, Counterparty: "Asha", IssuedAt: issuedAt})
	if !errors.Is(err, invoice.ErrNoItems) {
		t.Fatalf("expected ErrNoItems, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected no file, found %d", len(entries))
	}
}

func TestWriteInvoice_SameSecondCollision(t *testing.T) {
	dir := t.TempDir()
	r := invoice.NewRecorder(dir, "Rs.")
	inv := models.Invoice{
		Kind:         models.SaleInvoice,
		Counterparty: "Asha",
		IssuedAt:     issuedAt,
		Items:        []models.LineItem{{Name: "Soap", Brand: "Dove", Quantity: 1, UnitPrice: decimal.NewFromInt(100)}},
	}

	first, err := r.WriteInvoice(inv)
	if err != nil {
		t.Fatalf("first write: %v", err)
	}
	before, _ := os.ReadFile(first)

	inv.Counterparty = "Ravi"
	if _, err := r.WriteInvoice(inv); !errors.Is(err, invoice.ErrInvoiceExists) {
		t.Fatalf("expected ErrInvoiceExists, got %v", err)
	}

	after, _ := os.ReadFile(first)
	if string(before) != string(after) {
		t.Errorf("first invoice must not be overwritten")
	}
}

func TestWriteInvoice_EmptyCurrency(t *testing.T) {
	r := invoice.NewRecorder(t.TempDir(), "")

	path, err := r.WriteInvoice(models.Invoice{
		Kind:         models.SaleInvoice,
		Counterparty: "Asha",
		IssuedAt:     issuedAt,
		Items:        []models.LineItem{{Name: "Soap", Brand: "Dove", Quantity: 3, UnitPrice: decimal.RequireFromString("100.0")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(got), "\nTotal Sales Amount: 300.0\n") {
		t.Errorf("unexpected total line in:\n%q", got)
	}
}

func TestRemoveInvoice(t *testing.T) {
	r := invoice.NewRecorder(t.TempDir(), "Rs.")
	path, err := r.WriteInvoice(models.Invoice{
		Kind:         models.RestockInvoice,
		Counterparty: "Unilever",
		IssuedAt:     issuedAt,
		Items:        []models.LineItem{{Name: "Soap", Brand: "Dove", Quantity: 1, UnitPrice: decimal.NewFromInt(50)}},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := r.RemoveInvoice(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected invoice to be gone, got %v", err)
	}
	if err := r.RemoveInvoice(path); err == nil {
		t.Errorf("expected error removing a missing invoice")
	}
}
