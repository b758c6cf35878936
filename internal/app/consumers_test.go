package app

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vayva/onboarding-service/internal/domain"
)

type kycStoreStub struct {
	upsertCalled bool
	storeID      string
	status       domain.KycStatus
	err          error
}

func (s *kycStoreStub) UpsertKycRecord(ctx context.Context, storeID string, status domain.KycStatus) error {
	s.upsertCalled = true
	s.storeID = storeID
	s.status = status
	return s.err
}

func TestHandleKycDecisionEvent_PersistsDecision(t *testing.T) {
	st := &kycStoreStub{}
	handler := NewKycEventHandler(st)

	body := []byte(`{"store_id":"store-1","status":"approved"}`)
	if !handler.HandleKycDecisionEvent(body) {
		t.Fatal("expected message to be acknowledged")
	}
	if !st.upsertCalled {
		t.Fatal("expected decision to be persisted")
	}
	if st.storeID != "store-1" || st.status != domain.KycVerified {
		t.Fatalf("unexpected upsert: %s %s", st.storeID, st.status)
	}
}

func TestHandleKycDecisionEvent_PersistsRejection(t *testing.T) {
	st := &kycStoreStub{}
	handler := NewKycEventHandler(st)

	body := []byte(`{"store_id":"store-1","status":"REJECTED","reason":"document mismatch"}`)
	if !handler.HandleKycDecisionEvent(body) {
		t.Fatal("expected message to be acknowledged")
	}
	if st.status != domain.KycRejected {
		t.Fatalf("expected rejection to be persisted, got %s", st.status)
	}
}

func TestHandleKycDecisionEvent_AcksMalformedMessage(t *testing.T) {
	st := &kycStoreStub{}
	handler := NewKycEventHandler(st)

	if !handler.HandleKycDecisionEvent([]byte("not json")) {
		t.Fatal("expected malformed message to be acknowledged")
	}
	if st.upsertCalled {
		t.Fatal("did not expect a write for a malformed message")
	}
}

func TestHandleKycDecisionEvent_AcksMissingStoreID(t *testing.T) {
	st := &kycStoreStub{}
	handler := NewKycEventHandler(st)

	if !handler.HandleKycDecisionEvent([]byte(`{"status":"verified"}`)) {
		t.Fatal("expected message without store_id to be acknowledged")
	}
	if st.upsertCalled {
		t.Fatal("did not expect a write without a store_id")
	}
}

func TestHandleKycDecisionEvent_AcksUnknownStatus(t *testing.T) {
	st := &kycStoreStub{}
	handler := NewKycEventHandler(st)

	if !handler.HandleKycDecisionEvent([]byte(`{"store_id":"store-1","status":"escalated"}`)) {
		t.Fatal("expected unknown status to be acknowledged")
	}
	if st.upsertCalled {
		t.Fatal("did not expect a write for an unknown status")
	}
}

func TestHandleKycDecisionEvent_NacksStorageError(t *testing.T) {
	st := &kycStoreStub{err: errors.New("connection reset")}
	handler := NewKycEventHandler(st)

	if handler.HandleKycDecisionEvent([]byte(`{"store_id":"store-1","status":"verified"}`)) {
		t.Fatal("expected a retryable storage error to be nacked")
	}
}

func TestHandleKycDecisionEvent_AcksUnknownStoreViolation(t *testing.T) {
	st := &kycStoreStub{err: &pgconn.PgError{Code: "23503"}}
	handler := NewKycEventHandler(st)

	if !handler.HandleKycDecisionEvent([]byte(`{"store_id":"ghost","status":"verified"}`)) {
		t.Fatal("expected a foreign key violation to be acknowledged, not requeued")
	}
}
