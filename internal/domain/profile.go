/**
 * @description
 * This file defines the public storefront profile attached to a store. The
 * profile carries everything the storefront renderer needs that is not part
 * of the core store row: display name, location, contact availability, and
 * the delivery options shown at checkout.
 */
package domain

import "time"

// StoreProfile is the zero-or-one public profile of a store.
type StoreProfile struct {
	StoreID           string    `json:"store_id"`
	Slug              string    `json:"slug"`
	DisplayName       string    `json:"display_name"`
	State             *string   `json:"state,omitempty"`
	City              *string   `json:"city,omitempty"`
	WhatsappNumber    *string   `json:"whatsapp_number,omitempty"`
	PickupAvailable   bool      `json:"pickup_available"`
	DeliveryMethods   []string  `json:"delivery_methods,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// StoreProfileUpdate is a partial update of an existing profile. Nil fields
// are not written.
type StoreProfileUpdate struct {
	DisplayName    *string
	State          *string
	City           *string
	WhatsappNumber *string
}

// ProfileDeliveryUpdate carries the delivery-derived profile fields, written
// together when the wizard's delivery section is present.
type ProfileDeliveryUpdate struct {
	PickupAvailable bool
	DeliveryMethods []string
}
