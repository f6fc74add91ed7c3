package services

import (
	"slices"
	"strings"

	"used-car-pricer/internal/apperror"
	"used-car-pricer/internal/logger"
	"used-car-pricer/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// PricingService определяет стоимость подержанного автомобиля.
// Шаги применяются строго по порядку: возраст, пробег, штраф за владельцев,
// аварии, надёжность марки, потолок прибыльности, бонус за отсутствие владельцев.
type PricingService struct {
	rules PricingRules
	log   *logger.Logger
}

// NewPricingService создаёт сервис с правилами оценки.
// Таблица марок копируется, поэтому изменения rules после вызова на сервис не влияют.
func NewPricingService(rules PricingRules, log *logger.Logger) *PricingService {
	if log == nil {
		log = logger.NewNop()
	}
	rules.MakeAdjustments = slices.Clone(rules.MakeAdjustments)
	return &PricingService{
		rules: rules,
		log:   log,
	}
}

var defaultPricingService = NewPricingService(DefaultPricingRules(), nil)

// DetermineCarPrice считает цену по стандартным правилам
func DetermineCarPrice(car models.Car) (decimal.Decimal, error) {
	return defaultPricingService.DetermineCarPrice(car)
}

// DetermineCarPrice возвращает итоговую цену автомобиля
func (s *PricingService) DetermineCarPrice(car models.Car) (decimal.Decimal, error) {
	appraisal, err := s.Appraise(car)
	if err != nil {
		return decimal.Zero, err
	}
	return appraisal.Price, nil
}

// Appraise считает цену и возвращает разбивку по шагам
func (s *PricingService) Appraise(car models.Car) (*models.Appraisal, error) {
	if err := validateCar(car); err != nil {
		s.log.WithError(err).WithField("field", apperror.FieldOf(err)).Warn("Car rejected")
		return nil, err
	}

	appraisal := &models.Appraisal{
		Car:     car,
		Steps:   make([]models.Adjustment, 0, 7),
		Ceiling: s.ceiling(car.PurchaseValue),
	}
	price := car.PurchaseValue

	apply := func(stage models.Stage, next decimal.Decimal) {
		appraisal.Steps = append(appraisal.Steps, models.Adjustment{Stage: stage, Before: price, After: next})
		if s.log.IsLevelEnabled(logrus.DebugLevel) {
			s.log.WithFields(logrus.Fields{
				"stage":  stage,
				"before": price.String(),
				"after":  next.String(),
			}).Debug("Pricing stage applied")
		}
		price = next
	}

	apply(models.StageAge, s.AgeAdjustment(car.AgeInMonths, price))
	apply(models.StageMileage, s.MileageAdjustment(car.Mileage, price))
	apply(models.StageOwnerPenalty, s.OwnerPenalty(car.PreviousOwners, price))
	apply(models.StageCollision, s.CollisionAdjustment(car.Collisions, price))
	apply(models.StageReliability, s.ReliabilityAdjustment(car.Make, price))
	apply(models.StageCutoff, s.ProfitabilityCutoff(price, car.PurchaseValue))

	bonus := s.ZeroOwnerBonus(car.PreviousOwners, price)
	if !s.rules.BonusMayExceedCutoff {
		bonus = decimal.Min(bonus, appraisal.Ceiling)
	}
	apply(models.StageZeroOwnerBonus, bonus)

	appraisal.Price = price
	s.log.WithFields(logrus.Fields{
		"purchase_value": car.PurchaseValue.String(),
		"price":          price.String(),
		"make":           car.MakeName(),
	}).Debug("Car price determined")

	return appraisal, nil
}

// AgeAdjustment снижает цену на ставку за каждый месяц возраста.
// Возраст ограничен AgeMonthCap; снижение считается от текущей цены целиком, а не помесячно.
func (s *PricingService) AgeAdjustment(ageInMonths int, price decimal.Decimal) decimal.Decimal {
	if ageInMonths > s.rules.AgeMonthCap {
		ageInMonths = s.rules.AgeMonthCap
	}
	return reduceBy(price, s.rules.AgeRatePerMonth.Mul(decimal.NewFromInt(int64(ageInMonths))))
}

// MileageAdjustment снижает цену за каждую полную тысячу миль, остаток не учитывается
func (s *PricingService) MileageAdjustment(miles int, price decimal.Decimal) decimal.Decimal {
	if s.rules.MileageStep <= 0 {
		return price
	}
	if miles > s.rules.MileageCap {
		miles = s.rules.MileageCap
	}
	steps := miles / s.rules.MileageStep
	return reduceBy(price, s.rules.MileageRatePerStep.Mul(decimal.NewFromInt(int64(steps))))
}

// OwnerPenalty применяет штраф, если владельцев больше порога
func (s *PricingService) OwnerPenalty(previousOwners int, price decimal.Decimal) decimal.Decimal {
	if previousOwners > s.rules.OwnerPenaltyThreshold {
		return reduceBy(price, s.rules.OwnerPenaltyRate)
	}
	return price
}

// CollisionAdjustment снижает цену за каждую аварию.
// Если аварий больше лимита, шаг пропускается целиком.
func (s *PricingService) CollisionAdjustment(collisions int, price decimal.Decimal) decimal.Decimal {
	if collisions > s.rules.CollisionLimit {
		return price
	}
	return reduceBy(price, s.rules.CollisionRate.Mul(decimal.NewFromInt(int64(collisions))))
}

// ReliabilityAdjustment применяет поправку за марку без учёта регистра.
// Вычет не ограничен снизу: для дешёвого Ford цена может стать отрицательной.
func (s *PricingService) ReliabilityAdjustment(carMake *string, price decimal.Decimal) decimal.Decimal {
	if carMake == nil || *carMake == "" {
		return price
	}
	name := strings.ToLower(*carMake)
	for _, adj := range s.rules.MakeAdjustments {
		if adj.Make != name {
			continue
		}
		return price.Add(price.Mul(adj.Rate)).Sub(adj.Deduction)
	}
	return price
}

// ProfitabilityCutoff ограничивает цену долей CutoffRate от цены покупки
func (s *PricingService) ProfitabilityCutoff(price, purchaseValue decimal.Decimal) decimal.Decimal {
	ceiling := s.ceiling(purchaseValue)
	if price.LessThan(ceiling) {
		return price
	}
	return ceiling
}

// ZeroOwnerBonus увеличивает цену, если у автомобиля не было владельцев
func (s *PricingService) ZeroOwnerBonus(previousOwners int, price decimal.Decimal) decimal.Decimal {
	if previousOwners != 0 {
		return price
	}
	return price.Add(price.Mul(s.rules.ZeroOwnerBonusRate))
}

func (s *PricingService) ceiling(purchaseValue decimal.Decimal) decimal.Decimal {
	return purchaseValue.Mul(s.rules.CutoffRate)
}

func reduceBy(price, rate decimal.Decimal) decimal.Decimal {
	return price.Sub(price.Mul(rate))
}

// validateCar отклоняет отрицательные значения и неположительную цену покупки
func validateCar(car models.Car) error {
	switch {
	case !car.PurchaseValue.IsPositive():
		return apperror.InvalidInput("purchase_value", "must be positive")
	case car.AgeInMonths < 0:
		return apperror.InvalidInput("age_in_months", "must not be negative")
	case car.Mileage < 0:
		return apperror.InvalidInput("mileage", "must not be negative")
	case car.PreviousOwners < 0:
		return apperror.InvalidInput("previous_owners", "must not be negative")
	case car.Collisions < 0:
		return apperror.InvalidInput("collisions", "must not be negative")
	}
	return nil
}
