package services

import (
	"used-car-pricer/internal/config"

	"github.com/shopspring/decimal"
)

// MakeAdjustment описывает поправку за надёжность марки.
// Rate увеличивает цену на долю, Deduction вычитает фиксированную сумму.
type MakeAdjustment struct {
	Make      string
	Rate      decimal.Decimal
	Deduction decimal.Decimal
}

// PricingRules хранит все коэффициенты оценки. Ставки задаются долями.
type PricingRules struct {
	AgeRatePerMonth decimal.Decimal
	// AgeMonthCap is the largest age that still reduces value.
	AgeMonthCap int

	MileageRatePerStep decimal.Decimal
	MileageStep        int
	MileageCap         int

	OwnerPenaltyThreshold int
	OwnerPenaltyRate      decimal.Decimal

	CollisionRate decimal.Decimal
	// Above CollisionLimit the collision stage is skipped, not clamped.
	CollisionLimit int

	// Checked in order, first match wins. Make values must be lowercase.
	MakeAdjustments []MakeAdjustment

	CutoffRate           decimal.Decimal
	ZeroOwnerBonusRate   decimal.Decimal
	BonusMayExceedCutoff bool
}

// DefaultPricingRules возвращает стандартные правила оценки
func DefaultPricingRules() PricingRules {
	return PricingRules{
		AgeRatePerMonth:       decimal.RequireFromString("0.005"),
		AgeMonthCap:           119,
		MileageRatePerStep:    decimal.RequireFromString("0.002"),
		MileageStep:           1000,
		MileageCap:            150000,
		OwnerPenaltyThreshold: 2,
		OwnerPenaltyRate:      decimal.RequireFromString("0.25"),
		CollisionRate:         decimal.RequireFromString("0.02"),
		CollisionLimit:        5,
		MakeAdjustments: []MakeAdjustment{
			{Make: "toyota", Rate: decimal.RequireFromString("0.05")},
			{Make: "ford", Deduction: decimal.NewFromInt(500)},
		},
		CutoffRate:         decimal.RequireFromString("0.90"),
		ZeroOwnerBonusRate: decimal.RequireFromString("0.10"),
	}
}

// NewPricingRulesFromConfig собирает правила из конфигурации
func NewPricingRulesFromConfig(cfg *config.PricingConfig) PricingRules {
	return PricingRules{
		AgeRatePerMonth:       cfg.AgeRatePerMonth,
		AgeMonthCap:           cfg.AgeMonthCap,
		MileageRatePerStep:    cfg.MileageRatePerStep,
		MileageStep:           cfg.MileageStep,
		MileageCap:            cfg.MileageCap,
		OwnerPenaltyThreshold: cfg.OwnerPenaltyThreshold,
		OwnerPenaltyRate:      cfg.OwnerPenaltyRate,
		CollisionRate:         cfg.CollisionRate,
		CollisionLimit:        cfg.CollisionLimit,
		MakeAdjustments: []MakeAdjustment{
			{Make: "toyota", Rate: cfg.ToyotaBonusRate},
			{Make: "ford", Deduction: cfg.FordDeduction},
		},
		CutoffRate:           cfg.CutoffRate,
		ZeroOwnerBonusRate:   cfg.ZeroOwnerBonusRate,
		BonusMayExceedCutoff: cfg.BonusMayExceedCutoff,
	}
}
