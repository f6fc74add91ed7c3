package selftest

import (
	"bytes"
	"strings"
	"testing"

	"used-car-pricer/internal/logger"
	"used-car-pricer/internal/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DefaultScenariosPass(t *testing.T) {
	svc := services.NewPricingService(services.DefaultPricingRules(), nil)
	report := Run(svc, logger.NewNop(), DefaultScenarios())

	require.Len(t, report.Results, 13)
	for _, res := range report.Results {
		assert.Truef(t, res.Passed(), "%s: expected %s, got %s (err %v)", res.Name, res.Expected, res.Got, res.Err)
	}
	assert.True(t, report.OK())
	assert.Equal(t, 13, report.Passed)
	assert.NotEqual(t, uuid.Nil, report.RunID)
}

func TestRun_DetectsFailure(t *testing.T) {
	rules := services.DefaultPricingRules()
	rules.BonusMayExceedCutoff = true
	svc := services.NewPricingService(rules, nil)

	report := Run(svc, logger.NewNop(), DefaultScenarios())
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Failed)

	last := report.Results[len(report.Results)-1]
	assert.False(t, last.Passed())
	assert.True(t, last.Got.Equal(decimal.NewFromInt(79200)))
}

func TestReport_Write(t *testing.T) {
	svc := services.NewPricingService(services.DefaultPricingRules(), nil)
	report := Run(svc, logger.NewNop(), DefaultScenarios())

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, false))
	out := buf.String()
	assert.Equal(t, 13, strings.Count(out, "PASS"))
	assert.NotContains(t, out, "FAIL")
	assert.Contains(t, out, "13 passed, 0 failed")
	assert.NotContains(t, out, "zero_owner_bonus")

	buf.Reset()
	require.NoError(t, report.Write(&buf, true))
	assert.Contains(t, buf.String(), "zero_owner_bonus")
	assert.Contains(t, buf.String(), "24813.40")
}
