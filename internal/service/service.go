// Package service contains the business logic of the check-in list exporter.
// Services validate inputs, orchestrate repo calls and hand the loaded data to
// the checkin package. No SQL lives here; services depend on repo interfaces.
package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/netways/checkinlist-export/internal/domain"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validationError converts validator failures into a domain.ErrValidation
// error naming every offending field.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := fieldNames[fe.Field()]
	if name == "" {
		name = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "unique":
		return name + " must not contain duplicates"
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

// fieldNames maps struct fields to the names clients submit.
var fieldNames = map[string]string{
	"ListID":      "list",
	"QuestionIDs": "questions",
	"Sort":        "sort",
}
