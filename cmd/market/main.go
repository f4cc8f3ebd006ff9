package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/marketsim/go-market/app/config"
	"github.com/marketsim/go-market/app/market"
	"github.com/marketsim/go-market/app/runner"
	"github.com/marketsim/go-market/models"
)

// main runs the stdin simulation: buyers, products, purchases, report.
func main() {
	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	engine := market.NewEngine(models.NewValidation(cfg.Profile), market.WithLogger(log))

	r := runner.New(engine, os.Stdin, os.Stdout)
	if err := r.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
