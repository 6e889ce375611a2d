package handler

import (
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/netways/checkinlist-export/internal/domain"
)

// ExportParams are the query parameters of GET /events/{event}/exports/checkinlist.
// Optional parameters are pointers so an absent value keeps the form default.
type ExportParams struct {
	List      openapi_types.UUID    `json:"list"`
	Questions *[]openapi_types.UUID `json:"questions,omitempty"`
	PaidOnly  *bool                 `json:"paid_only,omitempty"`
	Secrets   *bool                 `json:"secrets,omitempty"`
	Sort      *string               `json:"sort,omitempty"`
	Email     *bool                 `json:"email,omitempty"`
	Address   *bool                 `json:"address,omitempty"`
	Voucher   *bool                 `json:"voucher,omitempty"`
	Subevent  *bool                 `json:"subevent,omitempty"`
	Total     *bool                 `json:"total,omitempty"`
}

// ExportCheckinList handles GET /events/{event}/exports/checkinlist.
// The response is the CSV file as an attachment.
func (s *Server) ExportCheckinList(w http.ResponseWriter, r *http.Request) {
	event, err := bindEvent(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	params, err := bindExportParams(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	file, err := s.export.Export(r.Context(), event, params.options())
	if err != nil {
		writeServiceError(w, r, err, "event or check-in list not found")
		return
	}

	w.Header().Set("Content-Type", mime.FormatMediaType(file.ContentType, map[string]string{"charset": "utf-8"}))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": file.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Payload)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Payload)
}

// bindEvent binds the {event} path parameter.
func bindEvent(r *http.Request) (string, error) {
	var event string
	err := runtime.BindStyledParameterWithOptions("simple", "event", chi.URLParam(r, "event"), &event,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return event, err
}

func bindExportParams(query url.Values) (ExportParams, error) {
	var p ExportParams
	if err := runtime.BindQueryParameter("form", true, true, "list", query, &p.List); err != nil {
		return p, err
	}
	optional := []struct {
		name string
		dest any
	}{
		{"questions", &p.Questions},
		{"paid_only", &p.PaidOnly},
		{"secrets", &p.Secrets},
		{"sort", &p.Sort},
		{"email", &p.Email},
		{"address", &p.Address},
		{"voucher", &p.Voucher},
		{"subevent", &p.Subevent},
		{"total", &p.Total},
	}
	for _, o := range optional {
		if err := runtime.BindQueryParameter("form", true, false, o.name, query, o.dest); err != nil {
			return p, err
		}
	}
	return p, nil
}

// options overlays the bound parameters on the form defaults.
func (p ExportParams) options() domain.ExportOptions {
	opts := domain.DefaultExportOptions()
	opts.ListID = p.List
	if p.Questions != nil {
		opts.QuestionIDs = *p.Questions
	}
	if p.Sort != nil {
		opts.Sort = *p.Sort
	}
	setBool(&opts.PaidOnly, p.PaidOnly)
	setBool(&opts.Secrets, p.Secrets)
	setBool(&opts.Columns.Email, p.Email)
	setBool(&opts.Columns.Address, p.Address)
	setBool(&opts.Columns.Voucher, p.Voucher)
	setBool(&opts.Columns.Subevent, p.Subevent)
	setBool(&opts.Columns.Total, p.Total)
	return opts
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
