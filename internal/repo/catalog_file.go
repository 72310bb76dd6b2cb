package repo

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const recordFields = 5

// FileCatalogRepository stores the catalog in a flat text file with one
// "name,brand,stock,cost_price,country" record per line and no header.
//
// Fields holding a comma or a quote are written CSV-quoted. Plain fields are
// written bare, so files produced by older comma-only writers load unchanged.
type FileCatalogRepository struct {
	path     string
	markup   decimal.Decimal
	encoding encoding.Encoding
	logger   *log.Logger
}

// NewFileCatalogRepository creates a repository backed by the file at path.
func NewFileCatalogRepository(path string, markup decimal.Decimal, logger *log.Logger) *FileCatalogRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &FileCatalogRepository{
		path:   path,
		markup: markup,
		logger: logger,
	}
}

// SetEncoding selects the text encoding of the file by IANA name, e.g.
// "windows-1252" or "Shift_JIS". An empty name means UTF-8.
func (r *FileCatalogRepository) SetEncoding(name string) error {
	if name == "" {
		r.encoding = nil
		return nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return fmt.Errorf("unknown catalog encoding %q: %w", name, err)
	}
	if enc == nil {
		return fmt.Errorf("catalog encoding %q is not supported", name)
	}
	r.encoding = enc
	return nil
}

// Path returns the backing file path.
func (r *FileCatalogRepository) Path() string {
	return r.path
}

// Load reads every record of the catalog file, creating an empty file when it
// does not exist yet. Malformed lines are logged and skipped; blank lines are
// skipped silently.
func (r *FileCatalogRepository) Load() ([]models.Product, error) {
	f, err := os.OpenFile(r.path, os.O_RDONLY|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", r.path, err)
	}
	defer f.Close()

	products := []models.Product{}
	scanner := bufio.NewScanner(r.decode(f))
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		p, err := parseRecord(line)
		if err != nil {
			r.logger.Warn("skipping invalid catalog line", "file", r.path, "line", lineNo, "content", line, "err", err)
			continue
		}
		p.Reprice(r.markup)
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", r.path, err)
	}
	return products, nil
}

// Save rewrites the whole catalog file from products. Selling prices are not
// written; they are derived again on the next Load.
func (r *FileCatalogRepository) Save(products []models.Product) error {
	var buf bytes.Buffer

	var w io.Writer = &buf
	var encoder *transform.Writer
	if r.encoding != nil {
		encoder = transform.NewWriter(&buf, r.encoding.NewEncoder())
		w = encoder
	}

	cw := csv.NewWriter(w)
	for _, p := range products {
		if err := checkProduct(p); err != nil {
			return fmt.Errorf("refusing to save %q: %w", p.Name, err)
		}
		if err := cw.Write(formatRecord(p)); err != nil {
			return fmt.Errorf("failed to encode %q: %w", p.Name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if encoder != nil {
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
	}

	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write catalog %s: %w", r.path, err)
	}
	return nil
}

// decode strips a byte order mark and converts the configured encoding to UTF-8.
func (r *FileCatalogRepository) decode(src io.Reader) io.Reader {
	var fallback transform.Transformer = transform.Nop
	if r.encoding != nil {
		fallback = r.encoding.NewDecoder()
	}
	return transform.NewReader(src, unicode.BOMOverride(fallback))
}

func parseRecord(line string) (models.Product, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	fields, err := cr.Read()
	if err != nil || len(fields) != recordFields {
		// Files written before quoting was introduced may hold a bare quote
		// inside a field; read those as plain comma separated values.
		if plain := strings.Split(line, ","); len(plain) == recordFields {
			fields, err = plain, nil
		}
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if len(fields) != recordFields {
		return models.Product{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidRecord, recordFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	stock, err := strconv.Atoi(fields[2])
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: stock %q is not an integer", ErrInvalidRecord, fields[2])
	}
	cost, err := decimal.NewFromString(fields[3])
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: cost price %q is not a number", ErrInvalidRecord, fields[3])
	}

	p := models.Product{
		Name:      fields[0],
		Brand:     fields[1],
		Stock:     stock,
		CostPrice: cost,
		Country:   fields[4],
	}
	if err := checkProduct(p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func formatRecord(p models.Product) []string {
	return []string{
		p.Name,
		p.Brand,
		strconv.Itoa(p.Stock),
		models.FormatDecimal(p.CostPrice),
		p.Country,
	}
}
