/**
 * @description
 * This file defines the interfaces for the data access layer (repositories).
 * Defining interfaces allows for dependency injection and easy mocking in tests,
 * promoting a loosely coupled architecture.
 *
 * @notes
 * - Any component that needs to interact with the database should depend on these
 *   interfaces, not on the concrete PostgreSQL implementation.
 * - The onboarding synchronizer executes as a single all-or-nothing unit of
 *   work: `InTx` opens the transaction and every step method on OnboardingTx
 *   runs inside it. Returning an error from the callback rolls everything back.
 */
package store

import (
	"context"
	"errors"

	"github.com/vayva/onboarding-service/internal/domain"
)

var (
	// ErrStoreNotFound is returned when a store id references no tenant.
	ErrStoreNotFound = errors.New("store not found")
	// ErrSlugTaken is returned when a slug collides with another tenant's.
	ErrSlugTaken = errors.New("slug is already taken")
)

// OnboardingStore is the transactional store the synchronizer writes through.
type OnboardingStore interface {
	InTx(ctx context.Context, fn func(tx OnboardingTx) error) error
}

// OnboardingTx is one open unit of work. Each method is a single sync step;
// none of them commit.
type OnboardingTx interface {
	UpdateStoreCore(ctx context.Context, storeID string, update domain.StoreCoreUpdate) error
	GetStoreSlug(ctx context.Context, storeID string) (string, error)

	GetProfile(ctx context.Context, storeID string) (*domain.StoreProfile, error)
	CreateProfile(ctx context.Context, profile *domain.StoreProfile) error
	UpdateProfile(ctx context.Context, storeID string, update domain.StoreProfileUpdate) error
	UpdateProfileDelivery(ctx context.Context, storeID string, update domain.ProfileDeliveryUpdate) error

	UpsertWhatsappChannel(ctx context.Context, storeID, phoneNumber string) error
	UpsertBillingProfile(ctx context.Context, storeID, legalName string, billingEmail *string) error

	GetDefaultBeneficiary(ctx context.Context, storeID string) (*domain.BankBeneficiary, error)
	DemoteDefaultBeneficiaries(ctx context.Context, storeID string) error
	CreateBeneficiary(ctx context.Context, beneficiary *domain.BankBeneficiary) error
	LookupBankCode(ctx context.Context, bankName string) (string, error)

	UpsertDeliveryPolicy(ctx context.Context, policy *domain.MerchantPolicy) error
	UpsertKycRecord(ctx context.Context, storeID string, status domain.KycStatus) error
}

// BankRepository defines the contract for the supported-banks directory.
type BankRepository interface {
	ListBanks(ctx context.Context) ([]domain.Bank, error)
}
