package main

import (
	"fmt"
	"os"

	"github.com/rogerio-castellano/shop-pos/internal/config"
	"github.com/rogerio-castellano/shop-pos/internal/console"
	"github.com/rogerio-castellano/shop-pos/internal/invoice"
	"github.com/rogerio-castellano/shop-pos/internal/obs"
	"github.com/rogerio-castellano/shop-pos/internal/pos"
	"github.com/rogerio-castellano/shop-pos/internal/repo"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Could not load configuration:", err)
		os.Exit(1)
	}

	logger, err := obs.NewLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "❌ Could not create logger:", err)
		os.Exit(1)
	}

	st, catalog, movements, err := openStores(cfg, logger)
	if err != nil {
		logger.Fatal("could not open stores", "err", err)
	}
	defer st.Close()

	svc := pos.NewService(catalog, movements, invoice.NewRecorder(cfg.Invoice.Dir, cfg.Invoice.Currency), cfg.Markup, logger)
	metrics := repo.NewInMemoryMetricsRepository(movements, cfg.LowStockThreshold)

	fmt.Println("Welcome to WeCare Beauty & Skincare Store")
	shell := console.NewShell(svc, metrics, os.Stdin, os.Stdout, cfg.Invoice.Currency, logger)
	if err := shell.Run(); err != nil {
		logger.Error("shell stopped", "err", err)
	}
}
