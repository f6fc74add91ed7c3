package main

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"used-car-pricer/internal/config"
	"used-car-pricer/internal/selftest"
)

// pricerEnv перечисляет переменные, которые читает config.Load.
var pricerEnv = []string{
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	"PRICING_AGE_RATE_PER_MONTH", "PRICING_AGE_MONTH_CAP",
	"PRICING_MILEAGE_RATE_PER_STEP", "PRICING_MILEAGE_STEP", "PRICING_MILEAGE_CAP",
	"PRICING_OWNER_PENALTY_THRESHOLD", "PRICING_OWNER_PENALTY_RATE",
	"PRICING_COLLISION_RATE", "PRICING_COLLISION_LIMIT",
	"PRICING_TOYOTA_BONUS_RATE", "PRICING_FORD_DEDUCTION",
	"PRICING_CUTOFF_RATE", "PRICING_ZERO_OWNER_BONUS_RATE",
	"PRICING_BONUS_MAY_EXCEED_CUTOFF", "SELFTEST_VERBOSE",
}

func stubDeps(t *testing.T, mutate func(cfg *config.Config)) {
	t.Helper()
	for _, key := range pricerEnv {
		t.Setenv(key, "")
	}

	origDotEnv, origConfig, origScenarios := loadDotEnv, loadConfig, scenarios
	t.Cleanup(func() {
		loadDotEnv, loadConfig, scenarios = origDotEnv, origConfig, origScenarios
	})

	loadDotEnv = func() error { return os.ErrNotExist }
	loadConfig = func() *config.Config {
		cfg := config.Load()
		cfg.Logger.Level = "panic"
		if mutate != nil {
			mutate(cfg)
		}
		return cfg
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_AllScenariosPass(t *testing.T) {
	stubDeps(t, nil)

	var out bytes.Buffer
	if code := run(&out); code != 0 {
		t.Fatalf("expected exit code 0, got %d\n%s", code, out.String())
	}
	if !strings.Contains(out.String(), "13 passed, 0 failed") {
		t.Fatalf("unexpected report:\n%s", out.String())
	}
}

func TestRun_IgnoresAmbientPricingOverrides(t *testing.T) {
	t.Setenv("PRICING_BONUS_MAY_EXCEED_CUTOFF", "true")
	t.Setenv("PRICING_AGE_MONTH_CAP", "120")
	t.Setenv("SELFTEST_VERBOSE", "true")
	stubDeps(t, nil)

	var out bytes.Buffer
	if code := run(&out); code != 0 {
		t.Fatalf("expected exit code 0 with ambient overrides cleared, got %d\n%s", code, out.String())
	}
}

func TestRun_FailingConfigurationExitsNonZero(t *testing.T) {
	stubDeps(t, func(cfg *config.Config) {
		cfg.Pricing.BonusMayExceedCutoff = true
	})

	var out bytes.Buffer
	if code := run(&out); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "FAIL") {
		t.Fatalf("expected a failing line in report:\n%s", out.String())
	}
}

func TestRun_ReportWriteFailureExitsWithInternalError(t *testing.T) {
	stubDeps(t, nil)

	if code := run(failingWriter{}); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRun_VerboseBreakdown(t *testing.T) {
	stubDeps(t, func(cfg *config.Config) {
		cfg.SelfTest.Verbose = true
	})
	scenarios = func() []selftest.Scenario {
		all := selftest.DefaultScenarios()
		return all[len(all)-1:]
	}

	var out bytes.Buffer
	if code := run(&out); code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	if !strings.Contains(out.String(), "profitability_cutoff") {
		t.Fatalf("expected stage breakdown:\n%s", out.String())
	}
}
