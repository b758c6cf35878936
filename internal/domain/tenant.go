/**
 * @description
 * This file defines the core domain model for a Store, the tenant aggregate
 * root of the platform. A store is created upstream (at signup) and is then
 * mutated repeatedly by the onboarding synchronizer as the merchant works
 * through the setup wizard.
 *
 * @notes
 * - `Settings` is a free-form JSON blob on the stores table. Only the keys
 *   the wizard actually supplies are merged in; existing keys survive.
 * - `Slug` is globally unique across tenants and backed by a unique index.
 */
package domain

import "time"

// Store represents a single merchant tenant.
type Store struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Slug      string        `json:"slug"`
	Category  string        `json:"category,omitempty"`
	Settings  StoreSettings `json:"settings"`
	IsLive    bool          `json:"is_live"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// StoreSettings is the merchant-level settings blob carried on the store row.
type StoreSettings struct {
	DomainPreference           string `json:"domain_preference,omitempty"`
	Currency                   string `json:"currency,omitempty"`
	PayoutScheduleAcknowledged *bool  `json:"payout_schedule_acknowledged,omitempty"`
}

// StoreCoreUpdate is a partial update of the store row. Nil pointer fields
// mean "leave the stored value alone", never "clear it".
//
// Settings carries only the keys the wizard actually supplied and wins over
// the stored blob. SettingsDefaults carries first-write defaults for the
// touched sections and is merged underneath the stored blob, so it never
// overrides a previously stored key.
type StoreCoreUpdate struct {
	Name             *string
	Slug             *string
	Category         *string
	Settings         *StoreSettings
	SettingsDefaults *StoreSettings
	IsLive           *bool
}

// IsEmpty reports whether the update would touch nothing beyond updated_at.
func (u StoreCoreUpdate) IsEmpty() bool {
	return u.Name == nil && u.Slug == nil && u.Category == nil &&
		u.Settings == nil && u.SettingsDefaults == nil && u.IsLive == nil
}
