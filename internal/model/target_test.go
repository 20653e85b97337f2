package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishsim-backend/internal/model"
)

func tp(t time.Time) *time.Time { return &t }

var t0 = time.Date(2026, time.February, 1, 8, 0, 0, 0, time.UTC)

func TestFunnelStageDerivedFromTimestamps(t *testing.T) {
	cases := []struct {
		name   string
		target model.Target
		want   model.FunnelStage
	}{
		{"untouched", model.Target{}, model.StagePending},
		{"sent only", model.Target{EmailSentAt: tp(t0)}, model.StageSent},
		{"opened", model.Target{EmailSentAt: tp(t0), EmailOpenedAt: tp(t0)}, model.StageOpened},
		{"clicked", model.Target{EmailSentAt: tp(t0), EmailOpenedAt: tp(t0), LinkClickedAt: tp(t0)}, model.StageClicked},
		{"submitted", model.Target{EmailSentAt: tp(t0), LinkClickedAt: tp(t0), DataSubmittedAt: tp(t0)}, model.StageSubmitted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.target.FunnelStage())
		})
	}
}

func TestReportingDoesNotAdvanceFunnel(t *testing.T) {
	// An employee can report suspicion without ever opening the mail.
	target := model.Target{EmailSentAt: tp(t0), ReportedAt: tp(t0.Add(time.Minute))}

	assert.Equal(t, model.StageSent, target.FunnelStage())
	assert.True(t, target.DidReport())
	assert.False(t, target.DidClick())
}

func TestTargetLastActivity(t *testing.T) {
	assert.Nil(t, (&model.Target{}).LastActivity())

	latest := t0.Add(3 * time.Hour)
	target := model.Target{
		EmailSentAt:   tp(t0),
		EmailOpenedAt: tp(t0.Add(time.Hour)),
		ReportedAt:    tp(latest),
	}

	got := target.LastActivity()
	require.NotNil(t, got)
	assert.True(t, got.Equal(latest))
}
