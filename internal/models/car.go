package models

import (
	"github.com/shopspring/decimal"
)

// Stage представляет шаг расчёта стоимости автомобиля
type Stage string

const (
	StageAge            Stage = "age"
	StageMileage        Stage = "mileage"
	StageOwnerPenalty   Stage = "owner_penalty"
	StageCollision      Stage = "collision"
	StageReliability    Stage = "reliability"
	StageCutoff         Stage = "profitability_cutoff"
	StageZeroOwnerBonus Stage = "zero_owner_bonus"
)

// Car представляет подержанный автомобиль, стоимость которого нужно определить
type Car struct {
	PurchaseValue  decimal.Decimal `json:"purchase_value"`
	AgeInMonths    int             `json:"age_in_months"`
	Mileage        int             `json:"mileage"`
	PreviousOwners int             `json:"previous_owners"`
	Collisions     int             `json:"collisions"`
	Make           *string         `json:"make,omitempty"`
}

// MakeName возвращает марку или пустую строку, если она не указана
func (c Car) MakeName() string {
	if c.Make == nil {
		return ""
	}
	return *c.Make
}

// Adjustment фиксирует цену до и после одного шага расчёта
type Adjustment struct {
	Stage  Stage           `json:"stage"`
	Before decimal.Decimal `json:"before"`
	After  decimal.Decimal `json:"after"`
}

// Delta возвращает изменение цены на шаге
func (a Adjustment) Delta() decimal.Decimal {
	return a.After.Sub(a.Before)
}

// Appraisal представляет результат оценки с разбивкой по шагам
type Appraisal struct {
	Car     Car             `json:"car"`
	Steps   []Adjustment    `json:"steps"`
	Ceiling decimal.Decimal `json:"ceiling"`
	Price   decimal.Decimal `json:"price"`
}

// Step возвращает шаг по имени
func (a *Appraisal) Step(stage Stage) (Adjustment, bool) {
	for _, s := range a.Steps {
		if s.Stage == stage {
			return s, true
		}
	}
	return Adjustment{}, false
}
