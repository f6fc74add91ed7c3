package main

import (
	"fmt"
	"io"
	"os"

	"used-car-pricer/internal/apperror"
	"used-car-pricer/internal/config"
	"used-car-pricer/internal/logger"
	"used-car-pricer/internal/selftest"
	"used-car-pricer/internal/services"

	"github.com/joho/godotenv"
)

// Фабричные функции (подменяемые в тестах).
var (
	loadDotEnv = func() error { return godotenv.Load() }
	loadConfig = config.Load
	newLogger  = logger.New
	scenarios  = selftest.DefaultScenarios
)

func main() {
	os.Exit(run(os.Stdout))
}

// run прогоняет эталонные сценарии и возвращает код выхода
func run(out io.Writer) int {
	if err := loadDotEnv(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	cfg := loadConfig()
	log := newLogger(&cfg.Logger)
	defer func() { _ = log.Close() }()
	log.Info("Starting used car pricer self-test...")

	pricingService := services.NewPricingService(services.NewPricingRulesFromConfig(&cfg.Pricing), log)
	report := selftest.Run(pricingService, log, scenarios())

	if err := report.Write(out, cfg.SelfTest.Verbose); err != nil {
		err = apperror.Internal("failed to write self-test report", err)
		log.WithError(err).WithField("kind", apperror.KindInternal).Error("Failed to write report")
		return 2
	}
	if !report.OK() {
		return 1
	}
	return 0
}
