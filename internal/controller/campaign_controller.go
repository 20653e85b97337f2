// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	appErrors "github.com/phishguard/phishsim-backend/internal/errors"
	"github.com/phishguard/phishsim-backend/internal/repository"
	"github.com/phishguard/phishsim-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
}

func parseID(r *http.Request, param string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, param))
}

// writeServiceError maps service errors onto status codes. Validation errors
// become 4xx with the message; everything else is a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var notFound *appErrors.ErrCampaignNotFound
	var badTransition *appErrors.ErrInvalidTransition
	var targetNotFound *appErrors.ErrTargetNotFound
	switch {
	case errors.As(err, &notFound), errors.As(err, &targetNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &badTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "something went wrong, please try again", http.StatusInternalServerError)
	}
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CompanyID    string `json:"company_id"`
		Name         string `json:"name"`
		Description  string `json:"description"`
		Subject      string `json:"subject"`
		BodyTemplate string `json:"body_template"`
		SenderName   string `json:"sender_name"`
		SenderEmail  string `json:"sender_email"`
		LandingURL   string `json:"landing_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	companyID, err := uuid.Parse(body.CompanyID)
	if err != nil {
		http.Error(w, "invalid company_id", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(companyID, body.Name, body.Description,
		body.Subject, body.BodyTemplate, body.SenderName, body.SenderEmail, body.LandingURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	companyID, err := uuid.Parse(r.URL.Query().Get("company_id"))
	if err != nil {
		http.Error(w, "invalid company_id", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	campaigns, pagination, err := c.CampaignService.ListCampaigns(companyID, page, pageSize, status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (c *CampaignController) StartCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		EmployeeIDs []string `json:"employee_ids"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
	}

	employeeIDs := make([]uuid.UUID, 0, len(body.EmployeeIDs))
	for _, raw := range body.EmployeeIDs {
		eid, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid employee id: "+raw, http.StatusBadRequest)
			return
		}
		employeeIDs = append(employeeIDs, eid)
	}

	result, err := c.CampaignService.StartCampaign(id, employeeIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id":    result.CampaignID,
		"targets_queued": result.TargetsQueued,
		"status":         result.Status,
	})
}

func (c *CampaignController) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.PauseCampaign(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ResumeCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.ResumeCampaign(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

// StopCampaign is terminal, so the client has to confirm explicitly.
func (c *CampaignController) StopCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Confirm {
		http.Error(w, "stopping a campaign is irreversible, pass confirm=true", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.StopCampaign(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		Confirm bool `json:"confirm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !body.Confirm {
		http.Error(w, "deleting a campaign removes all of its targets, pass confirm=true", http.StatusBadRequest)
		return
	}

	if err := c.CampaignService.DeleteCampaign(id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *CampaignController) PersonalizedPreview(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		EmployeeID   string  `json:"employee_id"`
		OverrideBody *string `json:"override_body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	employeeID, err := uuid.Parse(body.EmployeeID)
	if err != nil {
		http.Error(w, "invalid employee_id", http.StatusBadRequest)
		return
	}

	preview, err := c.CampaignService.RenderPreview(id, employeeID, body.OverrideBody)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"rendered_subject": preview.Subject,
		"rendered_body":    preview.Body,
		"employee_id":      body.EmployeeID,
	})
}

// RecordTargetEvent ingests a simulated engagement event (opened, clicked,
// submitted, reported) for a target.
func (c *CampaignController) RecordTargetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid target id", http.StatusBadRequest)
		return
	}

	var body struct {
		Event string `json:"event"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	event := repository.TargetEvent(body.Event)
	switch event {
	case repository.EventOpened, repository.EventClicked, repository.EventSubmitted, repository.EventReported:
	default:
		http.Error(w, "unknown event: "+body.Event, http.StatusBadRequest)
		return
	}

	if err := c.CampaignService.RecordTargetEvent(id, event); err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"target_id": id,
		"event":     body.Event,
	})
}
