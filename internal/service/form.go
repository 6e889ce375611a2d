package service

import (
	"context"
	"fmt"

	"github.com/netways/checkinlist-export/internal/domain"
	"github.com/netways/checkinlist-export/internal/repo"
)

// FormService assembles the choices of the export configuration form.
type FormService struct {
	events    repo.EventRepo
	lists     repo.CheckinListRepo
	questions repo.QuestionRepo
}

// NewFormService constructs a FormService backed by the provided repos.
func NewFormService(events repo.EventRepo, lists repo.CheckinListRepo, questions repo.QuestionRepo) *FormService {
	return &FormService{events: events, lists: lists, questions: questions}
}

// Form returns the check-in lists and questions of an event together with
// the preselected options. The first check-in list is the default choice.
// Returns domain.ErrNotFound if the event does not exist.
func (s *FormService) Form(ctx context.Context, eventSlug string) (domain.ExportForm, error) {
	event, err := s.events.GetBySlug(ctx, eventSlug)
	if err != nil {
		return domain.ExportForm{}, fmt.Errorf("service.FormService.Form: %w", err)
	}
	lists, err := s.lists.ListByEvent(ctx, event.ID)
	if err != nil {
		return domain.ExportForm{}, fmt.Errorf("service.FormService.Form: %w", err)
	}
	questions, err := s.questions.ListByEvent(ctx, event.ID)
	if err != nil {
		return domain.ExportForm{}, fmt.Errorf("service.FormService.Form: %w", err)
	}

	form := domain.ExportForm{
		Lists:     lists,
		Questions: questions,
		Defaults:  domain.DefaultExportOptions(),
	}
	if len(lists) > 0 {
		id := lists[0].ID
		form.DefaultListID = &id
		form.Defaults.ListID = id
	}
	return form, nil
}
