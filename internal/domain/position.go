// Package domain contains the core data types for the check-in list exporter.
// It is imported by every other internal package (checkin, repo, service, handler)
// and carries no persistence or transport concerns of its own.
package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the payment state of the order a position belongs to.
// Only paid and pending orders ever reach the exporter.
type OrderStatus string

const (
	StatusPaid    OrderStatus = "p"
	StatusPending OrderStatus = "n"
)

// Address holds the attendee address fields of a position.
// All fields are empty strings when the event does not ask for an address.
type Address struct {
	Company string
	Street  string
	Zipcode string
	City    string
	Country string
}

// TicketPosition is one purchased ticket or addon line of an order.
//
// AddonTo is nil for regular tickets. For addons it points at the parent
// position; only the parent's attendee, address and voucher fields are read.
type TicketPosition struct {
	ID                uuid.UUID
	OrderCode         string
	OrderStatus       OrderStatus
	OrderEmail        string // billing email of the order
	AttendeeName      string
	AttendeeNameParts map[string]string
	AttendeeEmail     string
	ProductName       string
	VariationLabel    string // empty when the product has no variations
	UnitPrice         decimal.Decimal
	Answers           map[uuid.UUID]string // rendered answer per question ID
	AddonTo           *TicketPosition
	VoucherCode       string
	SubeventLabel     string
	Secret            string
	Address           Address
}

// IsAddon reports whether the position is attached to a parent position.
func (p TicketPosition) IsAddon() bool {
	return p.AddonTo != nil
}

// Paid reports whether the position's order has been paid.
func (p TicketPosition) Paid() bool {
	return p.OrderStatus == StatusPaid
}
