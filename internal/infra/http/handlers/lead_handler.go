package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/roi-leads/internal/entity"
	"github.com/xavierca1/roi-leads/internal/infra/http/middleware"
	"github.com/xavierca1/roi-leads/internal/usecase"
)

type LeadHandler struct {
	SubmitUC *usecase.SubmitLeadUseCase
	ListUC   *usecase.ListLeadsUseCase
	LeadRepo entity.LeadRepositoryInterface
}

func NewLeadHandler(
	submitUC *usecase.SubmitLeadUseCase,
	listUC *usecase.ListLeadsUseCase,
	leadRepo entity.LeadRepositoryInterface,
) *LeadHandler {
	return &LeadHandler{
		SubmitUC: submitUC,
		ListUC:   listUC,
		LeadRepo: leadRepo,
	}
}

type SubmitLeadResponse struct {
	Message string       `json:"message"`
	Lead    *entity.Lead `json:"lead"`
}

// SubmitLead handles POST /api/leads. The response echoes the stored record
// so the caller sees the authoritative post-merge values, not what it sent.
func (h *LeadHandler) SubmitLead(w http.ResponseWriter, r *http.Request) {
	var input usecase.SubmitLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lead, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		var domainErr *usecase.DomainError
		if errors.As(err, &domainErr) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":   "Missing required fields",
				"details": domainErr.Fields,
			})
			return
		}

		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := "merged"
	if lead.FirstSeen() {
		result = "created"
	}
	middleware.RecordLeadCaptured(result)

	writeJSON(w, http.StatusOK, SubmitLeadResponse{
		Message: "Lead saved successfully",
		Lead:    lead,
	})
}

// ListLeads handles GET /api/leads, most recent activity first.
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.ListUC.Execute(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch leads")
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// GetLeadByEmail handles GET /api/leads/{email}. Exact match; a miss is 404,
// never 500.
func (h *LeadHandler) GetLeadByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		writeError(w, http.StatusBadRequest, "Missing email")
		return
	}

	lead, err := h.LeadRepo.FindByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeError(w, http.StatusNotFound, "Lead not found")
			return
		}

		writeError(w, http.StatusInternalServerError, "Failed to fetch lead")
		return
	}

	writeJSON(w, http.StatusOK, lead)
}
