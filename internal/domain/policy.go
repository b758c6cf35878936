/**
 * @description
 * This file defines merchant policy documents: the customer-facing policy
 * pages (delivery, returns, ...) rendered on the storefront. Onboarding only
 * ever writes the shipping/delivery policy; other types are managed from the
 * dashboard.
 */
package domain

import (
	"fmt"
	"time"
)

// PolicyType identifies a policy document slot. One document per type per store.
type PolicyType string

const (
	PolicyShippingDelivery PolicyType = "SHIPPING_DELIVERY"
	PolicyReturns          PolicyType = "RETURNS"
	PolicyPrivacy          PolicyType = "PRIVACY"
)

// PolicyStatus is the publication state of a policy document.
type PolicyStatus string

const (
	PolicyDraft     PolicyStatus = "DRAFT"
	PolicyPublished PolicyStatus = "PUBLISHED"
)

// MerchantPolicy is a storefront policy document.
type MerchantPolicy struct {
	ID          string       `json:"id"`
	StoreID     string       `json:"store_id"`
	StoreSlug   string       `json:"store_slug"`
	Type        PolicyType   `json:"type"`
	Title       string       `json:"title"`
	ContentMd   string       `json:"content_md"`
	ContentHTML string       `json:"content_html"`
	Status      PolicyStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// pickupOnlyPolicyText is the canned delivery policy used when a merchant
// opts out of delivery entirely.
const pickupOnlyPolicyText = "Orders are only available for pickup at our physical location."

// DeliveryPolicyContent renders the markdown and HTML bodies of the
// shipping/delivery policy for a raw wizard policy value.
func DeliveryPolicyContent(policy string) (md, html string) {
	if policy == "pickup_only" {
		md = pickupOnlyPolicyText
	} else {
		md = policy
	}
	return md, fmt.Sprintf("<p>%s</p>", md)
}
