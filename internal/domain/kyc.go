/**
 * @description
 * This file defines the KYC verification record kept per store and the
 * status vocabulary accepted from the wizard and from provider decisions.
 *
 * @notes
 * - Only `verified` and `pending` wizard inputs ever trigger a write; every
 *   other value is ignored rather than stored, so a stale or garbled client
 *   can never reset a verification.
 */
package domain

import "time"

// KycStatus is the verification state of a store's KYC record.
type KycStatus string

const (
	KycNotStarted KycStatus = "NOT_STARTED"
	KycPending    KycStatus = "PENDING"
	KycVerified   KycStatus = "VERIFIED"
	KycRejected   KycStatus = "REJECTED"
)

// KycRecord is the zero-or-one verification record of a store.
type KycRecord struct {
	StoreID   string    `json:"store_id"`
	Status    KycStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KycStatusFromWizard maps a wizard-supplied status string to a persistable
// status. The second return value is false for anything that must not be
// written, including an absent value.
func KycStatusFromWizard(raw string) (KycStatus, bool) {
	switch raw {
	case "verified":
		return KycVerified, true
	case "pending":
		return KycPending, true
	default:
		return "", false
	}
}

// KycStatusFromDecision maps a provider decision event status to a
// persistable status. Unlike the wizard path, provider decisions may also
// reject.
func KycStatusFromDecision(raw string) (KycStatus, bool) {
	switch raw {
	case "VERIFIED", "verified", "approved":
		return KycVerified, true
	case "PENDING", "pending":
		return KycPending, true
	case "REJECTED", "rejected":
		return KycRejected, true
	default:
		return "", false
	}
}
