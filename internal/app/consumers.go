/**
 * @description
 * This file contains the event handler that processes KYC decision messages
 * from RabbitMQ. Decisions originate from the verification provider's
 * webhook bridge and update the store's KycRecord outside the wizard path.
 *
 * @dependencies
 * - context, encoding/json, log: Standard Go libraries.
 * - github.com/jackc/pgx/v5/pgconn: Postgres error codes for poison-message detection.
 * - The service's internal packages for domain models and storage.
 */
package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vayva/onboarding-service/internal/domain"
)

// KycRecordStore is the slice of storage the KYC handler needs.
type KycRecordStore interface {
	UpsertKycRecord(ctx context.Context, storeID string, status domain.KycStatus) error
}

// KycEventHandler handles the processing of KYC decision events.
type KycEventHandler struct {
	store KycRecordStore
}

// NewKycEventHandler creates a new instance of KycEventHandler.
func NewKycEventHandler(st KycRecordStore) *KycEventHandler {
	return &KycEventHandler{store: st}
}

// HandleKycDecisionEvent processes one provider decision. The return value
// follows the consumer contract: true acknowledges the message, false
// rejects it for redelivery.
func (h *KycEventHandler) HandleKycDecisionEvent(body []byte) bool {
	var event domain.KycDecisionEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("Error unmarshaling kyc decision event: %v", err)
		return true // Acknowledge malformed message.
	}

	if event.StoreID == "" {
		log.Printf("kyc decision event missing store_id; acking")
		return true
	}

	status, ok := domain.KycStatusFromDecision(event.Status)
	if !ok {
		log.Printf("kyc decision event for store %s carries unknown status %q; acking", event.StoreID, event.Status)
		return true
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.store.UpsertKycRecord(ctx, event.StoreID, status); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			log.Printf("CRITICAL: kyc decision for unknown store %s. Acknowledging to avoid requeue loop.", event.StoreID)
			return true
		}
		log.Printf("ERROR: failed to persist kyc decision for store %s: %v", event.StoreID, err)
		return false // Retryable storage error.
	}

	log.Printf("Persisted kyc decision %s for store %s", status, event.StoreID)
	return true
}
