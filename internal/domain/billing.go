/**
 * @description
 * This file defines the billing-side domain models: the legal billing
 * profile and the settlement bank beneficiaries of a store.
 *
 * @notes
 * - A store keeps every settlement account it has ever configured as its own
 *   beneficiary row; exactly one row per store is flagged `is_default` at any
 *   committed state. Replacing the default demotes the previous rows rather
 *   than rewriting them, so the payout history stays intact.
 */
package domain

import "time"

// BillingProfile holds the legal identity a store is billed under.
type BillingProfile struct {
	StoreID      string    `json:"store_id"`
	LegalName    string    `json:"legal_name"`
	BillingEmail *string   `json:"billing_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BankBeneficiary is a settlement bank account owned by a store.
type BankBeneficiary struct {
	ID            string    `json:"id"`
	StoreID       string    `json:"store_id"`
	BankName      string    `json:"bank_name"`
	BankCode      string    `json:"bank_code"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	IsDefault     bool      `json:"is_default"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SameAccount reports whether two beneficiaries describe the same external
// bank account, ignoring row identity and the default flag.
func (b BankBeneficiary) SameAccount(other BankBeneficiary) bool {
	return b.BankName == other.BankName &&
		b.AccountNumber == other.AccountNumber &&
		b.AccountName == other.AccountName
}

// Bank is an entry in the supported-banks directory shown during the
// payments step of onboarding.
type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
}
