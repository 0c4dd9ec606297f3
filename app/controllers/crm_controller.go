package controllers

import (
	"net/http"

	"taskdesk/app/models"
	"taskdesk/app/services"
)

// CRMController serves the CRM endpoints that go beyond plain CRUD.
type CRMController struct {
	Contacts  *services.ContactService
	Deals     *services.DealService
	Leads     *services.LeadService
	Dashboard *services.Dashboard
}

// Pipeline handles GET /deals/pipeline.
func (c *CRMController) Pipeline(w http.ResponseWriter, r *http.Request) {
	stages, err := c.Deals.Pipeline(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stages)
}

// AddActivity handles POST /deals/{id}/activities.
func (c *CRMController) AddActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var activity models.Activity
	if !decode(w, r, &activity) {
		return
	}
	deal, err := c.Deals.AddActivity(r.Context(), id, activity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, deal)
}

// LeadStats handles GET /leads/stats.
func (c *CRMController) LeadStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.Leads.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ConvertLead handles POST /leads/{id}/convert. The body may carry contact
// fields that override the ones derived from the lead.
func (c *CRMController) ConvertLead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var overrides models.ContactPatch
	if !decodeOptional(w, r, &overrides) {
		return
	}
	contact, err := c.Leads.ConvertToContact(r.Context(), id, overrides, c.Contacts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, contact)
}

type scoreRequest struct {
	Score *int `json:"score"`
}

// UpdateScore handles PUT /leads/{id}/score.
func (c *CRMController) UpdateScore(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req scoreRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Score == nil {
		writeMessage(w, http.StatusBadRequest, "score is required")
		return
	}
	lead, err := c.Leads.UpdateScore(r.Context(), id, *req.Score)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Summary handles GET /crm/summary.
func (c *CRMController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.Dashboard.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Healthz handles GET /healthz.
func Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
