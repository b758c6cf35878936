/**
 * @description
 * This file defines the HTTP handlers for the onboarding-service's API
 * endpoints. Handlers are responsible for parsing requests, calling the
 * appropriate service method, and writing the response.
 *
 * @dependencies
 * - Standard Go libraries for HTTP, JSON, etc.
 * - The service's internal packages for app logic, storage, and middleware.
 */
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vayva/onboarding-service/internal/app"
	"github.com/vayva/onboarding-service/internal/domain"
	"github.com/vayva/onboarding-service/internal/store"
	"github.com/vayva/onboarding-service/internal/templates"
	"github.com/vayva/onboarding-service/pkg/billingclient"
	"github.com/vayva/onboarding-service/pkg/middleware"
)

// OnboardingHandler holds the dependencies for onboarding sync handlers.
type OnboardingHandler struct {
	service *app.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(service *app.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{service: service}
}

// SyncOnboarding applies a wizard snapshot for the authenticated store.
func (h *OnboardingHandler) SyncOnboarding(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.GetStoreIDFromContext(r.Context())
	if storeID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var state domain.OnboardingState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SyncOnboarding(r.Context(), storeID, &state); err != nil {
		switch {
		case errors.Is(err, store.ErrSlugTaken):
			http.Error(w, "This store link is already taken", http.StatusConflict)
		case errors.Is(err, store.ErrStoreNotFound):
			http.Error(w, "Store not found", http.StatusNotFound)
		default:
			http.Error(w, "Could not save your progress", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TemplateHandler holds the dependencies for template catalog handlers.
type TemplateHandler struct {
	billing *billingclient.Client
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(billing *billingclient.Client) *TemplateHandler {
	return &TemplateHandler{billing: billing}
}

// templateListing is one catalog entry with the caller's access resolved.
type templateListing struct {
	templates.Definition
	Locked bool `json:"locked"`
}

// ListTemplates returns the active catalog with each template flagged as
// locked or unlocked for the merchant's plan. Billing lookup failures fall
// back to the free tier rather than failing the catalog.
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.GetStoreIDFromContext(r.Context())
	if storeID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	tier := templates.PlanFree
	if h.billing != nil {
		if plan, err := h.billing.GetStorePlan(r.Context(), storeID); err != nil {
			log.Printf("WARN: falling back to free tier for store %s: %v", storeID, err)
		} else {
			tier = templates.PlanTier(plan.Plan)
		}
	}

	var listings []templateListing
	for _, def := range templates.Active() {
		listings = append(listings, templateListing{
			Definition: def,
			Locked:     !templates.IsTierAccessible(tier, def.RequiredPlan),
		})
	}
	writeJSON(w, http.StatusOK, listings)
}

// RecommendTemplate maps an industry signal to a category and best-fit
// template. A null recommendation tells the client to show the generic
// catalog.
func (h *TemplateHandler) RecommendTemplate(w http.ResponseWriter, r *http.Request) {
	industry := r.URL.Query().Get("industry")
	writeJSON(w, http.StatusOK, map[string]*app.TemplateRecommendation{
		"recommendation": app.RecommendTemplate(industry),
	})
}

// BankHandler holds the dependencies for bank directory handlers.
type BankHandler struct {
	banks store.BankRepository
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(banks store.BankRepository) *BankHandler {
	return &BankHandler{banks: banks}
}

// ListBanks returns the supported-banks directory for the payments step.
func (h *BankHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	banks, err := h.banks.ListBanks(r.Context())
	if err != nil {
		http.Error(w, "Could not load banks", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, banks)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}
