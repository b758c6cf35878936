/**
 * @description
 * This file defines the domain models for events published and consumed by
 * the onboarding-service over the message broker (RabbitMQ).
 *
 * @notes
 * - Having a clear, versioned contract for events is crucial for maintaining
 *   a stable and scalable microservices architecture.
 */
package domain

// OnboardingSyncedEvent is published after a wizard snapshot has been
// committed, so downstream services (storefront cache, analytics) can react.
type OnboardingSyncedEvent struct {
	StoreID       string   `json:"store_id"`
	SchemaVersion int      `json:"schema_version,omitempty"`
	Sections      []string `json:"sections"`
	IsLive        bool     `json:"is_live"`
}

// KycDecisionEvent is the payload received when the verification provider
// reaches a decision for a store's KYC submission.
type KycDecisionEvent struct {
	StoreID string  `json:"store_id"`
	Status  string  `json:"status"`
	Reason  *string `json:"reason,omitempty"`
}
