/**
 * @description
 * This file defines the WhatsApp channel binding of a store: the phone
 * number customers reach the merchant on, plus its connection status.
 */
package domain

import "time"

// ChannelStatus is the connection state of a messaging channel.
type ChannelStatus string

const (
	ChannelConnected    ChannelStatus = "CONNECTED"
	ChannelDisconnected ChannelStatus = "DISCONNECTED"
)

// WhatsappChannel is the zero-or-one messaging channel of a store.
type WhatsappChannel struct {
	StoreID            string        `json:"store_id"`
	DisplayPhoneNumber string        `json:"display_phone_number"`
	Status             ChannelStatus `json:"status"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
