/**
 * @description
 * This file implements the PostgreSQL data access layer for the onboarding
 * synchronizer. All writes for one sync call happen on a single pgx
 * transaction obtained through `InTx`; any step error rolls the whole unit
 * of work back so no partial state is ever visible.
 *
 * @dependencies
 * - context: For managing request-scoped deadlines and cancellations.
 * - github.com/jackc/pgx/v5: The PostgreSQL driver, pgconn for error codes.
 * - github.com/google/uuid: Row ids for beneficiaries and policies.
 * - The service's internal domain package for the persisted models.
 */
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vayva/onboarding-service/internal/domain"
)

// PostgresOnboardingStore is the PostgreSQL implementation of OnboardingStore.
type PostgresOnboardingStore struct {
	db *pgxpool.Pool
}

// NewPostgresOnboardingStore creates a new instance of PostgresOnboardingStore.
func NewPostgresOnboardingStore(db *pgxpool.Pool) *PostgresOnboardingStore {
	return &PostgresOnboardingStore{db: db}
}

// InTx runs fn inside a single database transaction. The transaction commits
// only when fn returns nil; otherwise it is rolled back and the error is
// returned unchanged.
func (s *PostgresOnboardingStore) InTx(ctx context.Context, fn func(tx OnboardingTx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgxOnboardingTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpsertKycRecord applies a single KYC status change outside the wizard
// path (used by the provider decision consumer). It runs in its own small
// transaction.
func (s *PostgresOnboardingStore) UpsertKycRecord(ctx context.Context, storeID string, status domain.KycStatus) error {
	return s.InTx(ctx, func(tx OnboardingTx) error {
		return tx.UpsertKycRecord(ctx, storeID, status)
	})
}

// pgxOnboardingTx implements OnboardingTx on top of an open pgx.Tx.
type pgxOnboardingTx struct {
	tx pgx.Tx
}

// mapConstraintError converts a unique-violation into the ErrSlugTaken
// sentinel so callers can distinguish a taken slug from storage failures.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w (constraint %s)", ErrSlugTaken, pgErr.ConstraintName)
	}
	return err
}

// UpdateStoreCore patches the store row. Nil fields are left untouched and
// the settings blob is merged key-by-key rather than replaced: first-write
// defaults sit underneath the stored blob, supplied keys win over it
// (defaults || stored || patch). The row's updated_at always advances, even
// for an empty patch.
func (t *pgxOnboardingTx) UpdateStoreCore(ctx context.Context, storeID string, update domain.StoreCoreUpdate) error {
	marshalSettings := func(s *domain.StoreSettings) ([]byte, error) {
		if s == nil {
			return nil, nil
		}
		return json.Marshal(s)
	}
	patchJSON, err := marshalSettings(update.Settings)
	if err != nil {
		return fmt.Errorf("failed to marshal store settings: %w", err)
	}
	defaultsJSON, err := marshalSettings(update.SettingsDefaults)
	if err != nil {
		return fmt.Errorf("failed to marshal store settings defaults: %w", err)
	}

	query := `
        UPDATE stores
        SET name       = COALESCE($1, name),
            slug       = COALESCE($2, slug),
            category   = COALESCE($3, category),
            settings   = CASE WHEN $4::jsonb IS NULL AND $5::jsonb IS NULL THEN settings
                              ELSE COALESCE($5::jsonb, '{}'::jsonb)
                                   || COALESCE(settings, '{}'::jsonb)
                                   || COALESCE($4::jsonb, '{}'::jsonb) END,
            is_live    = COALESCE($6, is_live),
            updated_at = NOW()
        WHERE id = $7
    `
	commandTag, err := t.tx.Exec(ctx, query,
		update.Name,
		update.Slug,
		update.Category,
		patchJSON,
		defaultsJSON,
		update.IsLive,
		storeID,
	)
	if err != nil {
		return mapConstraintError(err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrStoreNotFound, storeID)
	}
	return nil
}

// GetStoreSlug returns the current public slug of a store.
func (t *pgxOnboardingTx) GetStoreSlug(ctx context.Context, storeID string) (string, error) {
	var slug string
	err := t.tx.QueryRow(ctx, `SELECT slug FROM stores WHERE id = $1`, storeID).Scan(&slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrStoreNotFound, storeID)
		}
		return "", fmt.Errorf("failed to fetch store slug: %w", err)
	}
	return slug, nil
}

// GetProfile returns the store's profile, or (nil, nil) when none exists yet.
func (t *pgxOnboardingTx) GetProfile(ctx context.Context, storeID string) (*domain.StoreProfile, error) {
	query := `
        SELECT store_id, slug, display_name, state, city, whatsapp_number,
               pickup_available, delivery_methods, created_at, updated_at
        FROM store_profiles
        WHERE store_id = $1
    `
	var p domain.StoreProfile
	err := t.tx.QueryRow(ctx, query, storeID).Scan(
		&p.StoreID, &p.Slug, &p.DisplayName, &p.State, &p.City, &p.WhatsappNumber,
		&p.PickupAvailable, &p.DeliveryMethods, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch store profile: %w", err)
	}
	return &p, nil
}

// CreateProfile inserts a new store profile.
func (t *pgxOnboardingTx) CreateProfile(ctx context.Context, profile *domain.StoreProfile) error {
	query := `
        INSERT INTO store_profiles (store_id, slug, display_name, state, city, whatsapp_number, pickup_available)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at
    `
	err := t.tx.QueryRow(ctx, query,
		profile.StoreID,
		profile.Slug,
		profile.DisplayName,
		profile.State,
		profile.City,
		profile.WhatsappNumber,
		profile.PickupAvailable,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// UpdateProfile patches only the supplied fields of an existing profile.
func (t *pgxOnboardingTx) UpdateProfile(ctx context.Context, storeID string, update domain.StoreProfileUpdate) error {
	query := `
        UPDATE store_profiles
        SET display_name    = COALESCE($1, display_name),
            state           = COALESCE($2, state),
            city            = COALESCE($3, city),
            whatsapp_number = COALESCE($4, whatsapp_number),
            updated_at      = NOW()
        WHERE store_id = $5
    `
	_, err := t.tx.Exec(ctx, query,
		update.DisplayName,
		update.State,
		update.City,
		update.WhatsappNumber,
		storeID,
	)
	if err != nil {
		return mapConstraintError(err)
	}
	return nil
}

// UpdateProfileDelivery writes the delivery-derived profile fields.
func (t *pgxOnboardingTx) UpdateProfileDelivery(ctx context.Context, storeID string, update domain.ProfileDeliveryUpdate) error {
	query := `
        UPDATE store_profiles
        SET pickup_available = $1,
            delivery_methods = $2,
            updated_at       = NOW()
        WHERE store_id = $3
    `
	methods := update.DeliveryMethods
	if methods == nil {
		// Pickup-only clears the methods; an empty array, not NULL.
		methods = []string{}
	}
	_, err := t.tx.Exec(ctx, query, update.PickupAvailable, methods, storeID)
	if err != nil {
		return fmt.Errorf("failed to update delivery settings: %w", err)
	}
	return nil
}

// UpsertWhatsappChannel creates or reconnects the store's WhatsApp channel.
func (t *pgxOnboardingTx) UpsertWhatsappChannel(ctx context.Context, storeID, phoneNumber string) error {
	query := `
        INSERT INTO whatsapp_channels (store_id, display_phone_number, status)
        VALUES ($1, $2, $3)
        ON CONFLICT (store_id) DO UPDATE
        SET display_phone_number = EXCLUDED.display_phone_number,
            status               = EXCLUDED.status,
            updated_at           = NOW()
    `
	_, err := t.tx.Exec(ctx, query, storeID, phoneNumber, domain.ChannelConnected)
	if err != nil {
		return fmt.Errorf("failed to upsert whatsapp channel: %w", err)
	}
	return nil
}

// UpsertBillingProfile creates or updates the store's billing profile. A nil
// billing email never clears a stored one.
func (t *pgxOnboardingTx) UpsertBillingProfile(ctx context.Context, storeID, legalName string, billingEmail *string) error {
	query := `
        INSERT INTO billing_profiles (store_id, legal_name, billing_email)
        VALUES ($1, $2, $3)
        ON CONFLICT (store_id) DO UPDATE
        SET legal_name    = EXCLUDED.legal_name,
            billing_email = COALESCE(EXCLUDED.billing_email, billing_profiles.billing_email),
            updated_at    = NOW()
    `
	_, err := t.tx.Exec(ctx, query, storeID, legalName, billingEmail)
	if err != nil {
		return fmt.Errorf("failed to upsert billing profile: %w", err)
	}
	return nil
}

// GetDefaultBeneficiary returns the store's current default settlement
// account, or (nil, nil) when none is configured.
func (t *pgxOnboardingTx) GetDefaultBeneficiary(ctx context.Context, storeID string) (*domain.BankBeneficiary, error) {
	query := `
        SELECT id, store_id, bank_name, bank_code, account_number, account_name, is_default, created_at, updated_at
        FROM bank_beneficiaries
        WHERE store_id = $1 AND is_default = TRUE
        LIMIT 1
    `
	var b domain.BankBeneficiary
	err := t.tx.QueryRow(ctx, query, storeID).Scan(
		&b.ID, &b.StoreID, &b.BankName, &b.BankCode, &b.AccountNumber, &b.AccountName,
		&b.IsDefault, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch default beneficiary: %w", err)
	}
	return &b, nil
}

// DemoteDefaultBeneficiaries clears the default flag on every beneficiary of
// the store.
func (t *pgxOnboardingTx) DemoteDefaultBeneficiaries(ctx context.Context, storeID string) error {
	query := `
        UPDATE bank_beneficiaries
        SET is_default = FALSE, updated_at = NOW()
        WHERE store_id = $1 AND is_default = TRUE
    `
	if _, err := t.tx.Exec(ctx, query, storeID); err != nil {
		return fmt.Errorf("failed to demote default beneficiaries: %w", err)
	}
	return nil
}

// CreateBeneficiary inserts a new beneficiary row.
func (t *pgxOnboardingTx) CreateBeneficiary(ctx context.Context, beneficiary *domain.BankBeneficiary) error {
	if beneficiary.ID == "" {
		beneficiary.ID = uuid.NewString()
	}
	query := `
        INSERT INTO bank_beneficiaries (id, store_id, bank_name, bank_code, account_number, account_name, is_default)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING created_at, updated_at
    `
	err := t.tx.QueryRow(ctx, query,
		beneficiary.ID,
		beneficiary.StoreID,
		beneficiary.BankName,
		beneficiary.BankCode,
		beneficiary.AccountNumber,
		beneficiary.AccountName,
		beneficiary.IsDefault,
	).Scan(&beneficiary.CreatedAt, &beneficiary.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create beneficiary: %w", err)
	}
	return nil
}

// LookupBankCode resolves a bank's transfer code from the directory by name.
// Returns an empty string when the bank is unknown.
func (t *pgxOnboardingTx) LookupBankCode(ctx context.Context, bankName string) (string, error) {
	var code string
	err := t.tx.QueryRow(ctx, `SELECT code FROM banks WHERE LOWER(name) = LOWER($1)`, bankName).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to look up bank code: %w", err)
	}
	return code, nil
}

// UpsertDeliveryPolicy creates or refreshes the policy document for the
// policy's (store, type) slot.
func (t *pgxOnboardingTx) UpsertDeliveryPolicy(ctx context.Context, policy *domain.MerchantPolicy) error {
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}
	query := `
        INSERT INTO merchant_policies (id, store_id, store_slug, type, title, content_md, content_html, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (store_id, type) DO UPDATE
        SET content_md   = EXCLUDED.content_md,
            content_html = EXCLUDED.content_html,
            status       = EXCLUDED.status,
            updated_at   = NOW()
    `
	_, err := t.tx.Exec(ctx, query,
		policy.ID,
		policy.StoreID,
		policy.StoreSlug,
		policy.Type,
		policy.Title,
		policy.ContentMd,
		policy.ContentHTML,
		policy.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert delivery policy: %w", err)
	}
	return nil
}

// UpsertKycRecord creates or updates the store's verification record.
func (t *pgxOnboardingTx) UpsertKycRecord(ctx context.Context, storeID string, status domain.KycStatus) error {
	query := `
        INSERT INTO kyc_records (store_id, status)
        VALUES ($1, $2)
        ON CONFLICT (store_id) DO UPDATE
        SET status     = EXCLUDED.status,
            updated_at = NOW()
    `
	_, err := t.tx.Exec(ctx, query, storeID, status)
	if err != nil {
		return fmt.Errorf("failed to upsert kyc record: %w", err)
	}
	return nil
}
