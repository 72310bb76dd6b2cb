package repo_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
	"github.com/shopspring/decimal"
)

func newFileRepo(t *testing.T, content string) (*repo.FileCatalogRepository, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write catalog: %v", err)
		}
	}
	var logs bytes.Buffer
	return repo.NewFileCatalogRepository(path, models.DefaultMarkup, log.New(&logs)), &logs
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestFileCatalogLoad_DerivesSellingPrice(t *testing.T) {
	r, _ := newFileRepo(t, "Soap,Dove,10,50.0,India\n")

	products, err := r.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}

	p := products[0]
	if p.Name != "Soap" || p.Brand != "Dove" || p.Stock != 10 || p.Country != "India" {
		t.Errorf("unexpected product: %+v", p)
	}
	if models.FormatDecimal(p.CostPrice) != "50.0" {
		t.Errorf("expected cost price 50.0, got %s", p.CostPrice)
	}
	if models.FormatDecimal(p.SellingPrice) != "100.0" {
		t.Errorf("expected selling price 100.0, got %s", p.SellingPrice)
	}
}

func TestFileCatalogLoad_CreatesMissingFile(t *testing.T) {
	r, _ := newFileRepo(t, "")

	products, err := r.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("expected empty catalog, got %d products", len(products))
	}
	if _, err := os.Stat(r.Path()); err != nil {
		t.Errorf("expected catalog file to be created: %v", err)
	}
}

func TestFileCatalogLoad_SkipsInvalidLines(t *testing.T) {
	content := strings.Join([]string{
		"Soap,Dove,10,50.0,India",
		"Shampoo,Sunsilk,5,80.0", // 4 fields
		"",
		"   ",
		"Cream,Ponds,many,40.0,India",
		"Gel,Nivea,3,cheap,Germany",
		"Powder,Johnson,-2,20.0,USA",
		"  Lotion , Nivea , 20 , 30.0 , Germany  ",
	}, "\n")
	r, logs := newFileRepo(t, content)

	products, err := r.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(products) != 2 {
		t.Fatalf("expected 2 valid products, got %d: %+v", len(products), products)
	}
	if products[0].Name != "Soap" || products[1].Name != "Lotion" {
		t.Errorf("unexpected products order: %s, %s", products[0].Name, products[1].Name)
	}
	if products[1].Brand != "Nivea" || products[1].Country != "Germany" || products[1].Stock != 20 {
		t.Errorf("expected trimmed fields, got %+v", products[1])
	}

	out := logs.String()
	if got := strings.Count(out, "skipping invalid catalog line"); got != 4 {
		t.Errorf("expected 4 warnings, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "Shampoo,Sunsilk,5,80.0") {
		t.Errorf("expected warning to quote the bad line, got:\n%s", out)
	}
}

func TestFileCatalogSaveLoad_RoundTrip(t *testing.T) {
	r, _ := newFileRepo(t, "")

	in := []models.Product{
		{Name: "Soap", Brand: "Dove", Stock: 7, CostPrice: decimal.RequireFromString("50.0"), Country: "India"},
		{Name: "Lotion", Brand: "Nivea", Stock: 20, CostPrice: decimal.RequireFromString("30.0"), Country: "Germany"},
		{Name: "Sunscreen", Brand: "La Roche", Stock: 0, CostPrice: decimal.RequireFromString("12.75"), Country: "France"},
	}
	// a stale selling price must not survive the round trip
	in[0].SellingPrice = decimal.NewFromInt(999)

	if err := r.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	want := "Soap,Dove,7,50.0,India\nLotion,Nivea,20,30.0,Germany\nSunscreen,La Roche,0,12.75,France\n"
	if got := readFile(t, r.Path()); got != want {
		t.Errorf("unexpected file content:\n%q\nwant:\n%q", got, want)
	}

	out, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != len(in) {
		t.Fatalf("expected %d products, got %d", len(in), len(out))
	}
	for i := range in {
		if out[i].Name != in[i].Name || out[i].Brand != in[i].Brand || out[i].Stock != in[i].Stock ||
			!out[i].CostPrice.Equal(in[i].CostPrice) || out[i].Country != in[i].Country {
			t.Errorf("product %d: got %+v, want %+v", i, out[i], in[i])
		}
		if !out[i].SellingPrice.Equal(in[i].CostPrice.Mul(models.DefaultMarkup)) {
			t.Errorf("product %d: selling price %s not recomputed", i, out[i].SellingPrice)
		}
	}
}

func TestFileCatalog_Idempotent(t *testing.T) {
	r, _ := newFileRepo(t, "Soap,Dove,10,50.0,India\nLotion,Nivea,20,30.0,Germany\n")

	first, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	before := readFile(t, r.Path())

	if err := r.Save(first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := r.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if after := readFile(t, r.Path()); after != before {
		t.Errorf("file changed after load/save:\n%q\n%q", before, after)
	}
	if len(first) != len(second) {
		t.Fatalf("catalog size changed: %d -> %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Name != second[i].Name || !first[i].SellingPrice.Equal(second[i].SellingPrice) {
			t.Errorf("product %d changed: %+v -> %+v", i, first[i], second[i])
		}
	}
}

func TestFileCatalog_CommaInFieldRoundTrips(t *testing.T) {
	r, _ := newFileRepo(t, "")
	in := []models.Product{
		{Name: "Soap, Lavender", Brand: `Dove "Pro"`, Stock: 2, CostPrice: decimal.RequireFromString("5"), Country: "India"},
	}

	if err := r.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Soap, Lavender" || out[0].Brand != `Dove "Pro"` {
		t.Fatalf("quoted fields did not round trip: %+v", out)
	}
}

func TestFileCatalog_LegacyBareQuotesSurviveRewrite(t *testing.T) {
	r, logs := newFileRepo(t, "Soap,Dove,10,50.0,India\n\"Best\" Soap,Dove,4,60.0,India\nCream,\"Ponds\" Gold,2,40.0,India\n")

	products, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products, got %d: %+v\n%s", len(products), products, logs.String())
	}
	if products[1].Name != `"Best" Soap` || products[1].Stock != 4 {
		t.Errorf("unexpected legacy product %+v", products[1])
	}
	if products[2].Brand != `"Ponds" Gold` {
		t.Errorf("unexpected legacy brand %q", products[2].Brand)
	}

	if err := r.Save(products); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := r.Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(again) != 3 || again[1].Name != `"Best" Soap` || again[2].Brand != `"Ponds" Gold` {
		t.Fatalf("legacy records lost on rewrite: %+v", again)
	}
}

func TestFileCatalog_NamelessRecordSurvivesRewrite(t *testing.T) {
	r, _ := newFileRepo(t, ",NoName,1,1,X\nSoap,Dove,10,50.0,India\n")

	products, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 2 || products[0].Name != "" || products[0].Brand != "NoName" {
		t.Fatalf("expected nameless record to load, got %+v", products)
	}

	if err := r.Save(products); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := readFile(t, r.Path()); got != ",NoName,1,1.0,X\nSoap,Dove,10,50.0,India\n" {
		t.Errorf("unexpected file content %q", got)
	}
}

func TestFileCatalogSave_RejectsInvalidProduct(t *testing.T) {
	r, _ := newFileRepo(t, "Soap,Dove,10,50.0,India\n")

	err := r.Save([]models.Product{{Name: "Soap", Brand: "Dove", Stock: -1, CostPrice: decimal.Zero, Country: "India"}})
	if err == nil {
		t.Fatalf("expected error for negative stock")
	}
	if got := readFile(t, r.Path()); got != "Soap,Dove,10,50.0,India\n" {
		t.Errorf("catalog must stay untouched after a rejected save, got %q", got)
	}
}

func TestFileCatalog_LegacyEncoding(t *testing.T) {
	// "Crème" in windows-1252
	r, _ := newFileRepo(t, "Cr\xe8me,Nivea,4,10.0,France\n")
	if err := r.SetEncoding("windows-1252"); err != nil {
		t.Fatalf("set encoding: %v", err)
	}

	products, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Crème" {
		t.Fatalf("expected decoded name Crème, got %+v", products)
	}

	if err := r.Save(products); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := readFile(t, r.Path()); got != "Cr\xe8me,Nivea,4,10.0,France\n" {
		t.Errorf("expected windows-1252 output, got %q", got)
	}
}

func TestFileCatalog_SkipsUTF8BOM(t *testing.T) {
	r, _ := newFileRepo(t, "\xef\xbb\xbfSoap,Dove,10,50.0,India\n")

	products, err := r.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Soap" {
		t.Fatalf("expected BOM to be stripped, got %+v", products)
	}
}

func TestFileCatalog_UnknownEncoding(t *testing.T) {
	r, _ := newFileRepo(t, "")
	if err := r.SetEncoding("klingon-8"); err == nil {
		t.Fatalf("expected error for unknown encoding")
	}
}
