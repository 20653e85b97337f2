package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishguard/phishsim-backend/internal/model"
	"github.com/phishguard/phishsim-backend/internal/repository"
)

func TestListCampaignsPagination(t *testing.T) {
	companyID := uuid.New()
	targets := newMockTargetRepo()
	campaigns := newMockCampaignRepo(targets)
	for i := 0; i < 25; i++ {
		c := draftCampaign(companyID)
		campaigns.campaigns[c.ID] = c
	}
	svc := newService(campaigns, targets, &mockEmployeeRepo{}, nil, nil)

	page1, pagination, err := svc.ListCampaigns(companyID, 1, 10, "")
	require.NoError(t, err)

	assert.Len(t, page1, 10)
	assert.Equal(t, 25, pagination["total_count"])
	assert.Equal(t, 3, pagination["total_pages"])

	page3, pagination3, err := svc.ListCampaigns(companyID, 3, 10, "")
	require.NoError(t, err)
	assert.Len(t, page3, 5)
	assert.Equal(t, 3, pagination3["page"])
}

func TestListCampaignsClampsPageSize(t *testing.T) {
	companyID := uuid.New()
	targets := newMockTargetRepo()
	campaigns := newMockCampaignRepo(targets)
	svc := newService(campaigns, targets, &mockEmployeeRepo{}, nil, nil)

	_, pagination, err := svc.ListCampaigns(companyID, 0, 500, "")
	require.NoError(t, err)

	assert.Equal(t, 1, pagination["page"])
	assert.Equal(t, 100, pagination["page_size"])
}

func TestListCampaignsStatusFilter(t *testing.T) {
	companyID := uuid.New()
	targets := newMockTargetRepo()
	campaigns := newMockCampaignRepo(targets)
	active := draftCampaign(companyID)
	active.Status = model.StatusActive
	campaigns.campaigns[active.ID] = active
	d := draftCampaign(companyID)
	campaigns.campaigns[d.ID] = d
	svc := newService(campaigns, targets, &mockEmployeeRepo{}, nil, nil)

	got, pagination, err := svc.ListCampaigns(companyID, 1, 20, "active")
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, model.StatusActive, got[0].Status)
	assert.Equal(t, 1, pagination["total_count"])
}

func TestGetCampaignDetailsWithStats(t *testing.T) {
	companyID := uuid.New()
	campaign := draftCampaign(companyID)
	campaign.Status = model.StatusActive
	targets := newMockTargetRepo()
	campaigns := newMockCampaignRepo(targets, campaign)

	created, err := targets.CreateBatch(campaign.ID, []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()})
	require.NoError(t, err)
	now := time.Now()
	for _, tr := range created {
		require.NoError(t, targets.RecordEvent(tr.ID, repository.EventSent, now))
	}
	require.NoError(t, targets.RecordEvent(created[0].ID, repository.EventClicked, now))

	svc := newService(campaigns, targets, &mockEmployeeRepo{}, nil, nil)

	details, err := svc.GetCampaignDetailsWithStats(campaign.ID)
	require.NoError(t, err)

	assert.Equal(t, campaign.Name, details.Name)
	assert.Equal(t, 4, details.Metrics.Total)
	assert.Equal(t, 4, details.Metrics.Sent)
	assert.Equal(t, 25, details.Metrics.ClickRate)
}
