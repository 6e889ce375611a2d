// Package checkin pivots ticket positions into a per-attendee check-in list.
//
// Build walks positions once and groups them by resolved attendee, discovering
// product and question columns in first-seen order. Layout optionally reorders
// the product columns, Render turns the dataset into a table of cells and
// CSVWriter encodes that table. Nothing in this package keeps state between
// calls; every export works on its own Dataset.
package checkin

import (
	"github.com/shopspring/decimal"

	"github.com/netways/checkinlist-export/internal/domain"
)

// variationSeparator joins a product name and its variation label.
const variationSeparator = " – "

// Marker computes the value stored in a product column for a position.
type Marker func(p *domain.TicketPosition) any

// PaidMarker marks paid positions with 1 and pending ones with 0.
func PaidMarker(p *domain.TicketPosition) any {
	if p.Paid() {
		return 1
	}
	return 0
}

// ConstMarker marks every position with v.
func ConstMarker(v string) Marker {
	return func(*domain.TicketPosition) any { return v }
}

// Row is the pivoted data of one attendee.
type Row struct {
	Attendee    string
	OrderCode   string
	Email       string
	NameParts   map[string]string
	Address     domain.Address
	VoucherCode string
	Subevent    string
	Secret      string
	Total       decimal.Decimal

	// Products maps a product label to its presence marker.
	Products map[string]any
	// Answers maps a question label to the first non-empty answer seen.
	Answers map[string]string
}

// Dataset is the result of Build: rows in order of first appearance plus the
// product and question column registries.
type Dataset struct {
	Rows      []*Row
	Products  *OrderedSet
	Questions *OrderedSet

	byAttendee map[string]*Row
}

// Row returns the row for the given resolved attendee name.
func (d *Dataset) Row(attendee string) (*Row, bool) {
	r, ok := d.byAttendee[attendee]
	return r, ok
}

// ProductLabel returns the column label for p's product, including the
// variation when there is one.
func ProductLabel(p *domain.TicketPosition) string {
	if p.VariationLabel == "" {
		return p.ProductName
	}
	return p.ProductName + variationSeparator + p.VariationLabel
}

// Build pivots positions into one row per resolved attendee.
//
// Positions are consumed in the given order, which therefore decides both the
// row order and the column order. Fixed fields are overwritten by every
// position of an attendee, while answers keep the first non-empty value.
// A nil mark falls back to PaidMarker.
func Build(positions []domain.TicketPosition, questions []domain.Question, mark Marker) *Dataset {
	if mark == nil {
		mark = PaidMarker
	}
	ds := &Dataset{
		Products:   &OrderedSet{},
		Questions:  &OrderedSet{},
		byAttendee: make(map[string]*Row),
	}

	for i := range positions {
		p := &positions[i]
		attendee, email := ResolveAttendee(p)
		label := ProductLabel(p)
		ds.Products.Add(label)

		row, ok := ds.byAttendee[attendee]
		if !ok {
			row = &Row{
				Attendee: attendee,
				Products: make(map[string]any),
				Answers:  make(map[string]string),
			}
			ds.byAttendee[attendee] = row
			ds.Rows = append(ds.Rows, row)
		}

		owner := Owner(p)
		row.OrderCode = p.OrderCode
		row.Email = email
		if row.Email == "" {
			row.Email = p.OrderEmail
		}
		row.NameParts = owner.AttendeeNameParts
		row.Address = owner.Address
		row.VoucherCode = owner.VoucherCode
		row.Subevent = p.SubeventLabel
		row.Secret = owner.Secret
		row.Total = row.Total.Add(p.UnitPrice)
		row.Products[label] = mark(p)

		for _, q := range questions {
			if row.Answers[q.Label] != "" {
				continue
			}
			row.Answers[q.Label] = p.Answers[q.ID]
			ds.Questions.Add(q.Label)
		}
	}
	return ds
}
