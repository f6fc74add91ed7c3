package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Config представляет конфигурацию приложения
type Config struct {
	Logger   LoggerConfig   `json:"logger"`
	Pricing  PricingConfig  `json:"pricing"`
	SelfTest SelfTestConfig `json:"self_test"`
}

// LoggerConfig представляет конфигурацию логгера
type LoggerConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	File   string `json:"file"`
}

// PricingConfig хранит коэффициенты оценки автомобиля.
// Ставки задаются долями: 0.005 означает 0.5%.
type PricingConfig struct {
	AgeRatePerMonth       decimal.Decimal `json:"age_rate_per_month"`
	AgeMonthCap           int             `json:"age_month_cap"`
	MileageRatePerStep    decimal.Decimal `json:"mileage_rate_per_step"`
	MileageStep           int             `json:"mileage_step"`
	MileageCap            int             `json:"mileage_cap"`
	OwnerPenaltyThreshold int             `json:"owner_penalty_threshold"`
	OwnerPenaltyRate      decimal.Decimal `json:"owner_penalty_rate"`
	CollisionRate         decimal.Decimal `json:"collision_rate"`
	CollisionLimit        int             `json:"collision_limit"`
	ToyotaBonusRate       decimal.Decimal `json:"toyota_bonus_rate"`
	FordDeduction         decimal.Decimal `json:"ford_deduction"`
	CutoffRate            decimal.Decimal `json:"cutoff_rate"`
	ZeroOwnerBonusRate    decimal.Decimal `json:"zero_owner_bonus_rate"`
	BonusMayExceedCutoff  bool            `json:"bonus_may_exceed_cutoff"`
}

// SelfTestConfig описывает настройки самопроверки
type SelfTestConfig struct {
	Verbose bool `json:"verbose"`
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   getEnv("LOG_FILE", ""),
		},
		Pricing: PricingConfig{
			AgeRatePerMonth:       getEnvAsDecimal("PRICING_AGE_RATE_PER_MONTH", decimal.RequireFromString("0.005")),
			AgeMonthCap:           getEnvAsInt("PRICING_AGE_MONTH_CAP", 119),
			MileageRatePerStep:    getEnvAsDecimal("PRICING_MILEAGE_RATE_PER_STEP", decimal.RequireFromString("0.002")),
			MileageStep:           getEnvAsInt("PRICING_MILEAGE_STEP", 1000),
			MileageCap:            getEnvAsInt("PRICING_MILEAGE_CAP", 150000),
			OwnerPenaltyThreshold: getEnvAsInt("PRICING_OWNER_PENALTY_THRESHOLD", 2),
			OwnerPenaltyRate:      getEnvAsDecimal("PRICING_OWNER_PENALTY_RATE", decimal.RequireFromString("0.25")),
			CollisionRate:         getEnvAsDecimal("PRICING_COLLISION_RATE", decimal.RequireFromString("0.02")),
			CollisionLimit:        getEnvAsInt("PRICING_COLLISION_LIMIT", 5),
			ToyotaBonusRate:       getEnvAsDecimal("PRICING_TOYOTA_BONUS_RATE", decimal.RequireFromString("0.05")),
			FordDeduction:         getEnvAsDecimal("PRICING_FORD_DEDUCTION", decimal.NewFromInt(500)),
			CutoffRate:            getEnvAsDecimal("PRICING_CUTOFF_RATE", decimal.RequireFromString("0.90")),
			ZeroOwnerBonusRate:    getEnvAsDecimal("PRICING_ZERO_OWNER_BONUS_RATE", decimal.RequireFromString("0.10")),
			BonusMayExceedCutoff:  getEnvAsBool("PRICING_BONUS_MAY_EXCEED_CUTOFF", false),
		},
		SelfTest: SelfTestConfig{
			Verbose: getEnvAsBool("SELFTEST_VERBOSE", false),
		},
	}
}

// getEnv получает значение переменной окружения с значением по умолчанию
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt получает значение переменной окружения как int с значением по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDecimal получает значение переменной окружения как decimal с значением по умолчанию
func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue
	}
	if value, err := decimal.NewFromString(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool получает значение переменной окружения как bool с значением по умолчанию
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(getEnv(key, ""))
	if valueStr == "true" || valueStr == "1" || valueStr == "yes" {
		return true
	}
	if valueStr == "false" || valueStr == "0" || valueStr == "no" {
		return false
	}
	return defaultValue
}
