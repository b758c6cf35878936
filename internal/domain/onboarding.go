/**
 * @description
 * This file defines the onboarding wizard state document: the accumulated,
 * partially-complete answers of the multi-step merchant setup flow. The
 * client owns this document and posts snapshots of it on step transitions
 * and on final submission; every section and field is optional until the
 * final step.
 *
 * @notes
 * - Field names mirror the client's JSON document, hence the camelCase tags.
 * - `SchemaVersion` tags the shape of the document. A mismatch against
 *   ExpectedSchemaVersion is tolerated with a drift warning; the fields we
 *   still recognize are applied best-effort.
 */
package domain

// ExpectedSchemaVersion is the wizard document version this service was
// built against.
const ExpectedSchemaVersion = 1

// OnboardingState is a snapshot of the setup wizard.
type OnboardingState struct {
	SchemaVersion int                  `json:"schemaVersion,omitempty"`
	Business      *BusinessSection     `json:"business,omitempty"`
	StoreDetails  *StoreDetailsSection `json:"storeDetails,omitempty"`
	Identity      *IdentitySection     `json:"identity,omitempty"`
	Payments      *PaymentsSection     `json:"payments,omitempty"`
	Delivery      *DeliverySection     `json:"delivery,omitempty"`
	KycStatus     string               `json:"kycStatus,omitempty"`
}

// BusinessSection captures the "about your business" step.
type BusinessSection struct {
	Name      string            `json:"name,omitempty"`
	LegalName string            `json:"legalName,omitempty"`
	Category  string            `json:"category,omitempty"`
	Email     string            `json:"email,omitempty"`
	Location  *BusinessLocation `json:"location,omitempty"`
}

// BusinessLocation is the merchant's physical location.
type BusinessLocation struct {
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Address string `json:"address,omitempty"`
	Country string `json:"country,omitempty"`
}

// StoreDetailsSection captures the storefront identity step.
type StoreDetailsSection struct {
	StoreName        string `json:"storeName,omitempty"`
	Slug             string `json:"slug,omitempty"`
	DomainPreference string `json:"domainPreference,omitempty"`
	PublishStatus    string `json:"publishStatus,omitempty"` // "draft" | "published"
}

// IdentitySection captures the owner's personal details.
type IdentitySection struct {
	Phone string `json:"phone,omitempty"`
}

// PaymentsSection captures the payout configuration step. The
// acknowledgement is a pointer so an omitted field is distinguishable from
// an explicit false and never clobbers a stored value.
type PaymentsSection struct {
	Currency                   string          `json:"currency,omitempty"`
	SettlementBank             *SettlementBank `json:"settlementBank,omitempty"`
	PayoutScheduleAcknowledged *bool           `json:"payoutScheduleAcknowledged,omitempty"`
}

// SettlementBank is the bank account payouts settle to.
type SettlementBank struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
}

// DeliverySection captures the fulfilment step. Policy is either one of the
// sentinel values ("pickup_only", "required") or free text describing the
// merchant's own arrangement.
type DeliverySection struct {
	Policy          string `json:"policy,omitempty"`
	DefaultProvider string `json:"defaultProvider,omitempty"`
	PickupAddress   string `json:"pickupAddress,omitempty"`
}
