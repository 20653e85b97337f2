package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phishguard/phishsim-backend/internal/model"
)

func TestCampaignStatusTransitions(t *testing.T) {
	cases := []struct {
		from    model.CampaignStatus
		to      model.CampaignStatus
		allowed bool
	}{
		{model.StatusDraft, model.StatusActive, true},
		{model.StatusDraft, model.StatusPaused, false},
		{model.StatusDraft, model.StatusCompleted, false},
		{model.StatusDraft, model.StatusDraft, false},

		{model.StatusActive, model.StatusPaused, true},
		{model.StatusActive, model.StatusCompleted, true},
		{model.StatusActive, model.StatusActive, false},
		{model.StatusActive, model.StatusDraft, false},

		{model.StatusPaused, model.StatusActive, true},
		{model.StatusPaused, model.StatusCompleted, true},
		{model.StatusPaused, model.StatusDraft, false},
		{model.StatusPaused, model.StatusPaused, false},

		// completed is terminal
		{model.StatusCompleted, model.StatusDraft, false},
		{model.StatusCompleted, model.StatusActive, false},
		{model.StatusCompleted, model.StatusPaused, false},
		{model.StatusCompleted, model.StatusCompleted, false},
	}

	for _, tc := range cases {
		got := tc.from.CanTransitionTo(tc.to)
		assert.Equalf(t, tc.allowed, got, "%s -> %s", tc.from, tc.to)
	}
}

func TestCampaignStatusValid(t *testing.T) {
	assert.True(t, model.StatusDraft.Valid())
	assert.True(t, model.StatusActive.Valid())
	assert.True(t, model.StatusPaused.Valid())
	assert.True(t, model.StatusCompleted.Valid())
	assert.False(t, model.CampaignStatus("archived").Valid())
	assert.False(t, model.CampaignStatus("").Valid())
}
