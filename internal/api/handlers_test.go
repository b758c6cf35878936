package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vayva/onboarding-service/internal/app"
	"github.com/vayva/onboarding-service/internal/domain"
	"github.com/vayva/onboarding-service/internal/store"
	"github.com/vayva/onboarding-service/pkg/billingclient"
	"github.com/vayva/onboarding-service/pkg/middleware"
)

// errOnboardingStore short-circuits the unit of work with a fixed error,
// which is all the handler mapping tests need.
type errOnboardingStore struct {
	err error
}

func (s errOnboardingStore) InTx(ctx context.Context, fn func(tx store.OnboardingTx) error) error {
	return s.err
}

type bankRepoStub struct {
	banks []domain.Bank
	err   error
}

func (s bankRepoStub) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	return s.banks, s.err
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := context.WithValue(req.Context(), middleware.StoreIDKey, "store-1")
	return req.WithContext(ctx)
}

func TestSyncOnboardingHandler_StatusMapping(t *testing.T) {
	testCases := []struct {
		name       string
		storeErr   error
		wantStatus int
	}{
		{"success", nil, http.StatusNoContent},
		{"slug conflict", store.ErrSlugTaken, http.StatusConflict},
		{"unknown store", store.ErrStoreNotFound, http.StatusNotFound},
		{"storage failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service := app.NewOnboardingService(errOnboardingStore{err: tc.storeErr}, nil)
			handler := NewOnboardingHandler(service)

			req := authedRequest(http.MethodPost, "/onboarding/sync", `{"schemaVersion":1}`)
			rec := httptest.NewRecorder()
			handler.SyncOnboarding(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestSyncOnboardingHandler_RejectsBadInput(t *testing.T) {
	service := app.NewOnboardingService(errOnboardingStore{}, nil)
	handler := NewOnboardingHandler(service)

	req := authedRequest(http.MethodPost, "/onboarding/sync", "{not json")
	rec := httptest.NewRecorder()
	handler.SyncOnboarding(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	// No authenticated store id on the context.
	req = httptest.NewRequest(http.MethodPost, "/onboarding/sync", strings.NewReader("{}"))
	rec = httptest.NewRecorder()
	handler.SyncOnboarding(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %d", rec.Code)
	}
}

func TestListTemplates_LocksByPlan(t *testing.T) {
	billingSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(billingclient.PlanInfo{Plan: "growth", Status: "active"})
	}))
	defer billingSrv.Close()

	handler := NewTemplateHandler(billingclient.NewClient(billingSrv.URL))

	req := authedRequest(http.MethodGet, "/templates", "")
	rec := httptest.NewRecorder()
	handler.ListTemplates(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var listings []struct {
		ID           string `json:"id"`
		RequiredPlan string `json:"required_plan"`
		Locked       bool   `json:"locked"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listings); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(listings) == 0 {
		t.Fatal("expected a non-empty catalog")
	}
	for _, l := range listings {
		wantLocked := l.RequiredPlan == "pro"
		if l.Locked != wantLocked {
			t.Fatalf("template %s (plan %s): locked = %v, want %v", l.ID, l.RequiredPlan, l.Locked, wantLocked)
		}
	}
}

func TestListTemplates_BillingFailureFallsBackToFree(t *testing.T) {
	billingSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer billingSrv.Close()

	handler := NewTemplateHandler(billingclient.NewClient(billingSrv.URL))

	req := authedRequest(http.MethodGet, "/templates", "")
	rec := httptest.NewRecorder()
	handler.ListTemplates(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected the catalog to load despite billing failure, got %d", rec.Code)
	}

	var listings []struct {
		RequiredPlan string `json:"required_plan"`
		Locked       bool   `json:"locked"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listings); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, l := range listings {
		if l.RequiredPlan != "free" && !l.Locked {
			t.Fatalf("expected paid template to be locked on the free fallback, got %+v", l)
		}
	}
}

func TestRecommendTemplateHandler(t *testing.T) {
	handler := NewTemplateHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/templates/recommend?industry=bakery", nil)
	rec := httptest.NewRecorder()
	handler.RecommendTemplate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Recommendation *app.TemplateRecommendation `json:"recommendation"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Recommendation == nil || resp.Recommendation.CategorySlug != "food" {
		t.Fatalf("unexpected recommendation: %+v", resp.Recommendation)
	}

	// Unmatched industries return an explicit null.
	req = httptest.NewRequest(http.MethodGet, "/templates/recommend?industry=quantum", nil)
	rec = httptest.NewRecorder()
	handler.RecommendTemplate(rec, req)
	resp.Recommendation = nil
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Recommendation != nil {
		t.Fatalf("expected null recommendation, got %+v", resp.Recommendation)
	}
}

func TestListBanksHandler(t *testing.T) {
	handler := NewBankHandler(bankRepoStub{banks: []domain.Bank{
		{Name: "Access Bank", Code: "044"},
		{Name: "GTBank", Code: "058"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	rec := httptest.NewRecorder()
	handler.ListBanks(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var banks []domain.Bank
	if err := json.NewDecoder(rec.Body).Decode(&banks); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(banks) != 2 || banks[0].Code != "044" {
		t.Fatalf("unexpected banks: %+v", banks)
	}
}

func TestListBanksHandler_StorageError(t *testing.T) {
	handler := NewBankHandler(bankRepoStub{err: errors.New("connection reset")})

	req := httptest.NewRequest(http.MethodGet, "/banks", nil)
	rec := httptest.NewRecorder()
	handler.ListBanks(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
