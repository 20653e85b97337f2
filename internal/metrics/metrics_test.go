package metrics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishsim-backend/internal/metrics"
	"github.com/phishguard/phishsim-backend/internal/model"
)

func tp(t time.Time) *time.Time { return &t }

var base = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func TestComputeEmptyCollection(t *testing.T) {
	s := metrics.Compute(nil, metrics.CampaignThresholds)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.ClickRate)
	assert.Equal(t, 0, s.ReportRate)
	assert.Equal(t, 0, s.OpenRate)
	assert.Equal(t, metrics.RiskLow, s.RiskLevel)
	assert.Nil(t, s.LastActivity)
}

func TestComputeClickAndReportRates(t *testing.T) {
	// 10 targets, 3 clicked, none reported
	targets := make([]model.Target, 10)
	for i := range targets {
		targets[i].EmailSentAt = tp(base)
	}
	for i := 0; i < 3; i++ {
		targets[i].LinkClickedAt = tp(base.Add(time.Hour))
	}

	s := metrics.Compute(targets, metrics.CampaignThresholds)

	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 30, s.ClickRate)
	assert.Equal(t, 0, s.ReportRate)
	assert.Equal(t, 0, s.OpenRate)
	assert.Equal(t, metrics.RiskHigh, s.RiskLevel) // 30 >= CampaignThresholds.High
}

func TestReportIndependentOfClick(t *testing.T) {
	// Reported without ever clicking: counts toward report rate only.
	targets := []model.Target{
		{EmailSentAt: tp(base), ReportedAt: tp(base.Add(time.Minute))},
		{EmailSentAt: tp(base)},
	}

	s := metrics.Compute(targets, metrics.CampaignThresholds)

	assert.Equal(t, 50, s.ReportRate)
	assert.Equal(t, 0, s.ClickRate)
}

func TestRateRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 33, metrics.Rate(1, 3))
	assert.Equal(t, 67, metrics.Rate(2, 3))
	assert.Equal(t, 13, metrics.Rate(1, 8)) // 12.5 rounds up
	assert.Equal(t, 50, metrics.Rate(1, 2))
	assert.Equal(t, 0, metrics.Rate(0, 7))
	assert.Equal(t, 100, metrics.Rate(7, 7))
}

func TestRateZeroDenominator(t *testing.T) {
	assert.Equal(t, 0, metrics.Rate(0, 0))
}

func TestRateBounds(t *testing.T) {
	for count := 0; count <= 20; count++ {
		rate := metrics.Rate(count, 20)
		require.GreaterOrEqual(t, rate, 0)
		require.LessOrEqual(t, rate, 100)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	th := metrics.RiskThresholds{Medium: 15, High: 30}

	assert.Equal(t, metrics.RiskLow, th.Classify(0))
	assert.Equal(t, metrics.RiskLow, th.Classify(14))
	assert.Equal(t, metrics.RiskMedium, th.Classify(15))
	assert.Equal(t, metrics.RiskMedium, th.Classify(29))
	assert.Equal(t, metrics.RiskHigh, th.Classify(30))
	assert.Equal(t, metrics.RiskHigh, th.Classify(100))
}

func TestThresholdsVaryPerCallSite(t *testing.T) {
	// The same click rate can classify differently under the executive bands.
	assert.Equal(t, metrics.RiskHigh, metrics.CampaignThresholds.Classify(35))
	assert.Equal(t, metrics.RiskMedium, metrics.ExecutiveThresholds.Classify(35))
}

func TestLastActivityIsMaxAcrossTargets(t *testing.T) {
	latest := base.Add(48 * time.Hour)
	targets := []model.Target{
		{EmailSentAt: tp(base)},
		{EmailSentAt: tp(base), ReportedAt: tp(latest)},
		{EmailSentAt: tp(base), LinkClickedAt: tp(base.Add(2 * time.Hour))},
	}

	s := metrics.Compute(targets, metrics.CampaignThresholds)

	require.NotNil(t, s.LastActivity)
	assert.True(t, s.LastActivity.Equal(latest))
}

func TestComputeCountsEveryPredicate(t *testing.T) {
	targets := []model.Target{
		{EmailSentAt: tp(base), EmailOpenedAt: tp(base), LinkClickedAt: tp(base), ReportedAt: tp(base)},
		{EmailSentAt: tp(base), EmailOpenedAt: tp(base)},
		{EmailSentAt: tp(base)},
		{},
	}

	s := metrics.Compute(targets, metrics.CampaignThresholds)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Sent)
	assert.Equal(t, 2, s.Opened)
	assert.Equal(t, 1, s.Clicked)
	assert.Equal(t, 1, s.Reported)
	assert.Equal(t, 50, s.OpenRate)
	assert.Equal(t, 25, s.ClickRate)
	assert.Equal(t, 25, s.ReportRate)
}
