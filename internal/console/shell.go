// Package console is the operator's terminal: the main menu and the prompts
// that drive sales and restocks.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/rogerio-castellano/shop-pos/internal/models"
	"github.com/rogerio-castellano/shop-pos/internal/pos"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
)

type Shell struct {
	svc      *pos.Service
	metrics  repo.MetricsRepository
	prompt   *Prompter
	out      io.Writer
	currency string
	logger   *log.Logger
}

func NewShell(svc *pos.Service, metrics repo.MetricsRepository, in io.Reader, out io.Writer, currency string, logger *log.Logger) *Shell {
	if logger == nil {
		logger = log.Default()
	}
	return &Shell{
		svc:      svc,
		metrics:  metrics,
		prompt:   NewPrompter(in, out),
		out:      out,
		currency: currency,
		logger:   logger,
	}
}

// Run shows the main menu until the operator exits or input ends.
// A transaction interrupted by the end of input is discarded.
func (s *Shell) Run() error {
	for {
		s.menu()
		choice, err := s.prompt.Line("\nEnter your choice (1-4): ")
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = s.listProducts()
		case "2":
			err = s.sell()
		case "3":
			err = s.restock()
		case "4":
			s.prompt.Printf("\nThank you for using the shop system.\n")
			return nil
		default:
			s.prompt.Printf("\nInvalid choice. Please try again (1-4).\n")
			continue
		}

		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		if err != nil {
			s.logger.Error("operation failed", "choice", choice, "err", err)
			s.prompt.Printf("Error: %v\n", err)
		}
	}
}

func (s *Shell) menu() {
	s.prompt.Printf("\nMain Menu:\n")
	s.prompt.Printf("1. Show Available Products\n")
	s.prompt.Printf("2. Sell Products\n")
	s.prompt.Printf("3. Restock Products\n")
	s.prompt.Printf("4. Exit\n")
}

func (s *Shell) listProducts() error {
	products, err := s.svc.Products()
	if err != nil {
		return err
	}
	if len(products) == 0 {
		s.prompt.Printf("No products available.\n")
		return nil
	}

	writeProducts(s.out, products, s.currency)

	if s.metrics == nil {
		return nil
	}
	m, err := s.metrics.GetDashboardMetrics(products)
	if err != nil {
		s.logger.Warn("failed to compute metrics", "err", err)
		return nil
	}
	writeMetrics(s.out, m)
	return nil
}

func (s *Shell) sell() error {
	customer, err := s.prompt.Name("Customer name", "Enter customer's name: ")
	if err != nil {
		return err
	}
	sale, err := s.svc.BeginSale(customer)
	if err != nil {
		return err
	}

	for {
		name, err := s.prompt.Line("Enter product name to sell (or 'done' to finish): ")
		if err != nil {
			return err
		}
		if IsDone(name) {
			break
		}

		p, err := sale.Find(name)
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			s.prompt.Printf("Product not found.\n")
			continue
		case errors.Is(err, pos.ErrOutOfStock):
			s.prompt.Printf("Out of stock.\n")
			continue
		case err != nil:
			return err
		}

		qty, err := s.prompt.PositiveInt("Quantity", fmt.Sprintf("Enter quantity to sell (Available: %d): ", p.Stock))
		if err != nil {
			return err
		}
		if _, err := sale.Sell(p.Name, qty); errors.Is(err, pos.ErrInsufficientStock) {
			s.prompt.Printf("Not enough stock.\n")
		} else if err != nil {
			return err
		}
	}

	receipt, err := sale.Finish()
	if errors.Is(err, pos.ErrNothingRecorded) {
		s.prompt.Printf("No items sold.\n")
		return nil
	}
	if err != nil {
		return err
	}
	s.report("Sales", receipt)
	return nil
}

func (s *Shell) restock() error {
	supplier, err := s.prompt.Name("Supplier name", "Enter vendor/supplier name: ")
	if err != nil {
		return err
	}
	session, err := s.svc.BeginRestock(supplier)
	if err != nil {
		return err
	}

	for {
		line, err := s.prompt.Line("Enter product name to restock (or 'done' to finish): ")
		if err != nil {
			return err
		}
		if IsDone(line) {
			break
		}
		name, err := ValidateName("Product name", line)
		if err != nil {
			s.prompt.Printf("Invalid product name. Please enter a proper name.\n")
			continue
		}

		p, err := session.Find(name)
		switch {
		case err == nil:
			err = s.restockExisting(session, p)
		case errors.Is(err, repo.ErrProductNotFound):
			s.prompt.Printf("This is a new product.\n")
			err = s.addNew(session, name)
		}
		if err != nil {
			return err
		}
	}

	receipt, err := session.Finish()
	if errors.Is(err, pos.ErrNothingRecorded) {
		s.prompt.Printf("No items restocked.\n")
		return nil
	}
	if err != nil {
		return err
	}
	s.report("Restock", receipt)
	return nil
}

func (s *Shell) restockExisting(session *pos.RestockSession, p models.Product) error {
	qty, err := s.prompt.PositiveInt("Quantity", fmt.Sprintf("Enter quantity to restock for %s: ", p.Name))
	if err != nil {
		return err
	}
	cost, err := s.prompt.NonNegativeDecimal("Cost price", "Enter new cost price (0 to keep existing): ")
	if err != nil {
		return err
	}
	_, err = session.RestockExisting(p.Name, qty, cost)
	return err
}

func (s *Shell) addNew(session *pos.RestockSession, name string) error {
	brand, err := s.prompt.Name("Brand", "Enter brand name: ")
	if err != nil {
		return err
	}
	qty, err := s.prompt.PositiveInt("Quantity", "Enter quantity: ")
	if err != nil {
		return err
	}
	cost, err := s.prompt.NonNegativeDecimal("Cost price", "Enter cost price per item: ")
	if err != nil {
		return err
	}
	country, err := s.prompt.Name("Country", "Enter country of origin: ")
	if err != nil {
		return err
	}
	_, err = session.AddNew(name, brand, qty, cost, country)
	return err
}

func (s *Shell) report(label string, r pos.Receipt) {
	s.prompt.Printf("%s invoice generated: %s\n", label, r.Filename)
	s.prompt.Printf("Total: %s %s\n", s.currency, models.FormatDecimal(r.Total))
}
