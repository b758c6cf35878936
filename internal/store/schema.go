/**
 * @description
 * This file bootstraps the database schema on startup. Statements are
 * idempotent (IF NOT EXISTS) so repeated boots are safe.
 *
 * @notes
 * - The stores table is owned by the signup flow upstream; it is included
 *   here so a fresh local database can run the service end to end.
 * - The partial unique index on bank_beneficiaries enforces the at-most-one
 *   default invariant at the storage layer as well as in application logic.
 */
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes the service relies on.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			slug TEXT NOT NULL,
			category TEXT,
			settings JSONB,
			is_live BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_stores_slug ON stores (slug)`,
		`CREATE TABLE IF NOT EXISTS store_profiles (
			store_id TEXT PRIMARY KEY REFERENCES stores(id),
			slug TEXT NOT NULL,
			display_name TEXT NOT NULL,
			state TEXT,
			city TEXT,
			whatsapp_number TEXT,
			pickup_available BOOLEAN NOT NULL DEFAULT TRUE,
			delivery_methods TEXT[],
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_store_profiles_slug ON store_profiles (slug)`,
		`CREATE TABLE IF NOT EXISTS whatsapp_channels (
			store_id TEXT PRIMARY KEY REFERENCES stores(id),
			display_phone_number TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'DISCONNECTED',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS billing_profiles (
			store_id TEXT PRIMARY KEY REFERENCES stores(id),
			legal_name TEXT NOT NULL,
			billing_email TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS bank_beneficiaries (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL REFERENCES stores(id),
			bank_name TEXT NOT NULL,
			bank_code TEXT NOT NULL DEFAULT '000',
			account_number TEXT NOT NULL,
			account_name TEXT NOT NULL,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_beneficiaries_one_default
			ON bank_beneficiaries (store_id) WHERE is_default`,
		`CREATE TABLE IF NOT EXISTS merchant_policies (
			id TEXT PRIMARY KEY,
			store_id TEXT NOT NULL REFERENCES stores(id),
			store_slug TEXT NOT NULL,
			type TEXT NOT NULL,
			title TEXT NOT NULL,
			content_md TEXT NOT NULL,
			content_html TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'DRAFT',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_merchant_policies_store_type
			ON merchant_policies (store_id, type)`,
		`CREATE TABLE IF NOT EXISTS kyc_records (
			store_id TEXT PRIMARY KEY REFERENCES stores(id),
			status TEXT NOT NULL DEFAULT 'NOT_STARTED',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS banks (
			code TEXT PRIMARY KEY,
			name TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
