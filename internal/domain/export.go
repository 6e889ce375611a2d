package domain

import "github.com/google/uuid"

// Sort keys accepted by ExportOptions.Sort.
const (
	SortByName = "name"
	SortByCode = "code"
)

// ExportColumns toggles the optional fixed columns of the check-in list.
type ExportColumns struct {
	Email    bool
	Address  bool
	Voucher  bool
	Subevent bool
	Total    bool
}

// ExportOptions is the configuration submitted with an export request.
// Only ListID and QuestionIDs influence the pivot itself; the rest narrow the
// position query or add fixed columns.
type ExportOptions struct {
	ListID      uuid.UUID   `validate:"required"`
	QuestionIDs []uuid.UUID `validate:"unique"`
	PaidOnly    bool
	Secrets     bool
	Sort        string `validate:"omitempty,oneof=name code"`
	Columns     ExportColumns
}

// DefaultExportOptions returns the options preselected in the export form.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{
		PaidOnly: true,
		Sort:     SortByName,
		Columns:  ExportColumns{Email: true},
	}
}

// ExportFile is a rendered export ready to be sent to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportForm carries the choices offered by the export configuration form.
// DefaultListID is the first check-in list of the event, or nil if none exist.
type ExportForm struct {
	Lists         []CheckinList
	Questions     []Question
	DefaultListID *uuid.UUID
	Defaults      ExportOptions
}

// PositionFilter narrows the position query to what one check-in list admits.
type PositionFilter struct {
	EventID    uuid.UUID
	ProductIDs []uuid.UUID // nil means every product
	SubeventID *uuid.UUID
	PaidOnly   bool
	Sort       string
}
