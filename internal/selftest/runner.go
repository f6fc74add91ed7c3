package selftest

import (
	"fmt"
	"io"

	"used-car-pricer/internal/logger"
	"used-car-pricer/internal/models"
	"used-car-pricer/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Result представляет итог одного сценария
type Result struct {
	Name      string
	Expected  decimal.Decimal
	Got       decimal.Decimal
	Err       error
	Appraisal *models.Appraisal
}

// Passed сообщает, совпала ли цена с ожидаемой без ошибки
func (r Result) Passed() bool {
	return r.Err == nil && r.Got.Equal(r.Expected)
}

// Report агрегирует результаты одного прогона
type Report struct {
	RunID   uuid.UUID
	Results []Result
	Passed  int
	Failed  int
}

// OK сообщает, что ни один сценарий не упал
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Run прогоняет все сценарии через svc
func Run(svc *services.PricingService, log *logger.Logger, scenarios []Scenario) *Report {
	report := &Report{
		RunID:   uuid.New(),
		Results: make([]Result, 0, len(scenarios)),
	}
	runLog := log.WithField("run_id", report.RunID.String())

	for _, sc := range scenarios {
		got, appraisal, err := sc.Eval(svc)
		res := Result{Name: sc.Name, Expected: sc.Expected, Got: got, Err: err, Appraisal: appraisal}
		report.Results = append(report.Results, res)

		entry := runLog.WithFields(logrus.Fields{
			"scenario": sc.Name,
			"expected": sc.Expected.StringFixed(2),
			"got":      got.StringFixed(2),
		})
		if res.Passed() {
			report.Passed++
			entry.Debug("Scenario passed")
			continue
		}
		report.Failed++
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("Scenario failed")
	}

	runLog.WithFields(logrus.Fields{
		"passed": report.Passed,
		"failed": report.Failed,
	}).Info("Self-test finished")
	return report
}

// Write печатает строку на каждый сценарий и итог.
// При verbose после сквозных сценариев выводится разбивка по шагам.
func (r *Report) Write(w io.Writer, verbose bool) error {
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed() {
			status = "FAIL"
		}
		line := fmt.Sprintf("%s  %-32s expected %12s  got %12s", status, res.Name, res.Expected.StringFixed(2), res.Got.StringFixed(2))
		if res.Err != nil {
			line += "  error: " + res.Err.Error()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if !verbose || res.Appraisal == nil {
			continue
		}
		for _, step := range res.Appraisal.Steps {
			if _, err := fmt.Fprintf(w, "      %-22s %12s -> %12s\n", step.Stage, step.Before.StringFixed(2), step.After.StringFixed(2)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "run %s: %d passed, %d failed\n", r.RunID, r.Passed, r.Failed)
	return err
}
