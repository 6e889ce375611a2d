package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/netways/checkinlist-export/internal/domain"
)

// CheckinList is the JSON representation of a check-in list choice.
type CheckinList struct {
	Id          openapi_types.UUID  `json:"id"`
	Name        string              `json:"name"`
	AllProducts bool                `json:"all_products"`
	Subevent    *openapi_types.UUID `json:"subevent,omitempty"`
}

// Question is the JSON representation of a question choice.
type Question struct {
	Id    openapi_types.UUID `json:"id"`
	Label string             `json:"label"`
}

// ExportDefaults are the preselected form values.
type ExportDefaults struct {
	List      *openapi_types.UUID  `json:"list,omitempty"`
	PaidOnly  bool                 `json:"paid_only"`
	Secrets   bool                 `json:"secrets"`
	Sort      string               `json:"sort"`
	Email     bool                 `json:"email"`
	Address   bool                 `json:"address"`
	Voucher   bool                 `json:"voucher"`
	Subevent  bool                 `json:"subevent"`
	Total     bool                 `json:"total"`
	Questions []openapi_types.UUID `json:"questions"`
}

// ExportForm is the body of GET /events/{event}/exports/checkinlist/form.
type ExportForm struct {
	Lists     []CheckinList  `json:"lists"`
	Questions []Question     `json:"questions"`
	Defaults  ExportDefaults `json:"defaults"`
}

// GetExportForm handles GET /events/{event}/exports/checkinlist/form.
func (s *Server) GetExportForm(w http.ResponseWriter, r *http.Request) {
	event, err := bindEvent(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	form, err := s.form.Form(r.Context(), event)
	if err != nil {
		writeServiceError(w, r, err, "event not found")
		return
	}
	writeJSON(w, http.StatusOK, formToResponse(form))
}

func formToResponse(f domain.ExportForm) ExportForm {
	out := ExportForm{
		Lists:     make([]CheckinList, len(f.Lists)),
		Questions: make([]Question, len(f.Questions)),
	}
	for i, l := range f.Lists {
		out.Lists[i] = CheckinList{Id: l.ID, Name: l.Name, AllProducts: l.AllProducts, Subevent: l.SubeventID}
	}
	for i, q := range f.Questions {
		out.Questions[i] = Question{Id: q.ID, Label: q.Label}
	}

	d := f.Defaults
	out.Defaults = ExportDefaults{
		List:      f.DefaultListID,
		PaidOnly:  d.PaidOnly,
		Secrets:   d.Secrets,
		Sort:      d.Sort,
		Email:     d.Columns.Email,
		Address:   d.Columns.Address,
		Voucher:   d.Columns.Voucher,
		Subevent:  d.Columns.Subevent,
		Total:     d.Columns.Total,
		Questions: append([]openapi_types.UUID{}, d.QuestionIDs...),
	}
	return out
}
