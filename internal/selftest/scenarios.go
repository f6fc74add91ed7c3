// Package selftest содержит эталонные оценки и прогон сервиса по ним.
package selftest

import (
	"used-car-pricer/internal/models"
	"used-car-pricer/internal/services"

	"github.com/shopspring/decimal"
)

// Scenario представляет одну проверку с точной ожидаемой ценой
type Scenario struct {
	Name     string
	Expected decimal.Decimal
	// Eval возвращает посчитанную цену; Appraisal заполнен только для сквозных сценариев
	Eval func(svc *services.PricingService) (decimal.Decimal, *models.Appraisal, error)
}

func stage(name, expected string, fn func(svc *services.PricingService) decimal.Decimal) Scenario {
	return Scenario{
		Name:     name,
		Expected: decimal.RequireFromString(expected),
		Eval: func(svc *services.PricingService) (decimal.Decimal, *models.Appraisal, error) {
			return fn(svc), nil, nil
		},
	}
}

func car(name, expected, purchase string, age, miles, owners, collisions int, carMake *string) Scenario {
	c := models.Car{
		PurchaseValue:  decimal.RequireFromString(purchase),
		AgeInMonths:    age,
		Mileage:        miles,
		PreviousOwners: owners,
		Collisions:     collisions,
		Make:           carMake,
	}
	return Scenario{
		Name:     name,
		Expected: decimal.RequireFromString(expected),
		Eval: func(svc *services.PricingService) (decimal.Decimal, *models.Appraisal, error) {
			appraisal, err := svc.Appraise(c)
			if err != nil {
				return decimal.Zero, nil, err
			}
			return appraisal.Price, appraisal, nil
		},
	}
}

func makeOf(s string) *string { return &s }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// DefaultScenarios возвращает проверки отдельных шагов, затем сквозные оценки
func DefaultScenarios() []Scenario {
	return []Scenario{
		stage("age 12 months", "23500.00", func(svc *services.PricingService) decimal.Decimal {
			return svc.AgeAdjustment(12, d("25000"))
		}),
		stage("age 120 months capped at 119", "10125.00", func(svc *services.PricingService) decimal.Decimal {
			return svc.AgeAdjustment(120, d("25000"))
		}),
		stage("mileage 12354", "33184.00", func(svc *services.PricingService) decimal.Decimal {
			return svc.MileageAdjustment(12354, d("34000"))
		}),
		stage("three previous owners", "18775.50", func(svc *services.PricingService) decimal.Decimal {
			return svc.OwnerPenalty(3, d("25034"))
		}),
		stage("three collisions", "27998.84", func(svc *services.PricingService) decimal.Decimal {
			return svc.CollisionAdjustment(3, d("29786"))
		}),
		stage("toyota reliability", "41775.30", func(svc *services.PricingService) decimal.Decimal {
			return svc.ReliabilityAdjustment(makeOf("Toyota"), d("39786"))
		}),
		stage("profitability cutoff", "40809.60", func(svc *services.PricingService) decimal.Decimal {
			return svc.ProfitabilityCutoff(d("41186"), d("45344"))
		}),

		car("ford, 50k miles", "24813.40", "35000", 36, 50000, 1, 1, makeOf("Ford")),
		car("toyota, 150k miles", "20672.61", "35000", 36, 150000, 1, 1, makeOf("Toyota")),
		car("tesla, 250k miles", "19688.20", "35000", 36, 250000, 1, 1, makeOf("Tesla")),
		car("toyota, no collisions", "21094.50", "35000", 36, 250000, 1, 0, makeOf("toyota")),
		car("acura, no previous owners", "21657.02", "35000", 36, 250000, 0, 1, makeOf("Acura")),
		car("no make, no previous owners", "72000.00", "80000", 8, 10000, 0, 1, nil),
	}
}
