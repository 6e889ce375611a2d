package service_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/netways/checkinlist-export/internal/domain"
	"github.com/netways/checkinlist-export/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones a test needs.

type mockEventRepo struct {
	getBySlug func(ctx context.Context, slug string) (domain.Event, error)
}

func (m *mockEventRepo) GetBySlug(ctx context.Context, slug string) (domain.Event, error) {
	return m.getBySlug(ctx, slug)
}

type mockCheckinListRepo struct {
	getByID     func(ctx context.Context, eventID, listID uuid.UUID) (domain.CheckinList, error)
	listByEvent func(ctx context.Context, eventID uuid.UUID) ([]domain.CheckinList, error)
}

func (m *mockCheckinListRepo) GetByID(ctx context.Context, eventID, listID uuid.UUID) (domain.CheckinList, error) {
	return m.getByID(ctx, eventID, listID)
}
func (m *mockCheckinListRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.CheckinList, error) {
	return m.listByEvent(ctx, eventID)
}

type mockQuestionRepo struct {
	listByEvent func(ctx context.Context, eventID uuid.UUID) ([]domain.Question, error)
	listByIDs   func(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) ([]domain.Question, error)
}

func (m *mockQuestionRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Question, error) {
	return m.listByEvent(ctx, eventID)
}
func (m *mockQuestionRepo) ListByIDs(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) ([]domain.Question, error) {
	return m.listByIDs(ctx, eventID, ids)
}

type mockPositionRepo struct {
	listForExport func(ctx context.Context, filter domain.PositionFilter, questionIDs []uuid.UUID) ([]domain.TicketPosition, error)
}

func (m *mockPositionRepo) ListForExport(ctx context.Context, filter domain.PositionFilter, questionIDs []uuid.UUID) ([]domain.TicketPosition, error) {
	return m.listForExport(ctx, filter, questionIDs)
}

// compile-time checks: mocks must satisfy the repo interfaces.
var (
	_ repo.EventRepo       = (*mockEventRepo)(nil)
	_ repo.CheckinListRepo = (*mockCheckinListRepo)(nil)
	_ repo.QuestionRepo    = (*mockQuestionRepo)(nil)
	_ repo.PositionRepo    = (*mockPositionRepo)(nil)
)
