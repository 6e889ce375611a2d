package checkin

import (
	"github.com/netways/checkinlist-export/internal/domain"
)

// Fixed column labels.
const (
	ColOrderCode    = "Order code"
	ColAttendeeName = "Attendee name"
	ColCompany      = "Company"
	ColStreet       = "Address"
	ColZipcode      = "ZIP code"
	ColCity         = "City"
	ColCountry      = "Country"
	ColEmail        = "E-Mail"
	ColVoucher      = "Voucher code"
	ColSubevent     = "Subevent"
	ColSecret       = "Secret"
	ColTotal        = "Total"
)

// RenderOptions selects the optional fixed columns.
type RenderOptions struct {
	NameScheme domain.NameScheme
	Columns    domain.ExportColumns
	Secrets    bool
}

// Table is a rendered check-in list. Cells are string, int or decimal.Decimal.
type Table struct {
	Header []string
	Rows   [][]any
}

// Render lays out ds as a table: fixed columns first, then the product
// registry, then the question registry. Rows keep the dataset's order.
func Render(ds *Dataset, opts RenderOptions) Table {
	parts := nameParts(opts.NameScheme)
	products := ds.Products.Values()
	questions := ds.Questions.Values()

	header := []string{ColOrderCode, ColAttendeeName}
	for _, f := range parts {
		header = append(header, ColAttendeeName+": "+f.Label)
	}
	if opts.Columns.Address {
		header = append(header, ColCompany, ColStreet, ColZipcode, ColCity, ColCountry)
	}
	if opts.Columns.Email {
		header = append(header, ColEmail)
	}
	if opts.Columns.Voucher {
		header = append(header, ColVoucher)
	}
	if opts.Columns.Subevent {
		header = append(header, ColSubevent)
	}
	if opts.Secrets {
		header = append(header, ColSecret)
	}
	if opts.Columns.Total {
		header = append(header, ColTotal)
	}
	header = append(header, products...)
	header = append(header, questions...)

	rows := make([][]any, 0, len(ds.Rows))
	for _, r := range ds.Rows {
		row := make([]any, 0, len(header))
		row = append(row, r.OrderCode, r.Attendee)
		for _, f := range parts {
			row = append(row, r.NameParts[f.Key])
		}
		if opts.Columns.Address {
			row = append(row, r.Address.Company, r.Address.Street, r.Address.Zipcode, r.Address.City, r.Address.Country)
		}
		if opts.Columns.Email {
			row = append(row, r.Email)
		}
		if opts.Columns.Voucher {
			row = append(row, r.VoucherCode)
		}
		if opts.Columns.Subevent {
			row = append(row, r.Subevent)
		}
		if opts.Secrets {
			row = append(row, r.Secret)
		}
		if opts.Columns.Total {
			row = append(row, r.Total)
		}
		for _, label := range products {
			if v, ok := r.Products[label]; ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		for _, label := range questions {
			row = append(row, r.Answers[label])
		}
		rows = append(rows, row)
	}

	return Table{Header: header, Rows: rows}
}

// nameParts returns the per-part columns of scheme, or nil when the scheme
// has a single part that the "Attendee name" column already covers.
func nameParts(scheme domain.NameScheme) []domain.NameField {
	if len(scheme.Fields) <= 1 {
		return nil
	}
	return scheme.Fields
}
