package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/netways/checkinlist-export/internal/domain"
)

// QuestionRepo reads the custom questions of an event.
type QuestionRepo interface {
	// ListByEvent returns all questions of an event ordered by position.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Question, error)

	// ListByIDs returns the questions of an event whose IDs are in ids, ordered
	// by position. IDs that do not belong to the event are silently absent;
	// callers compare lengths to detect them.
	ListByIDs(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) ([]domain.Question, error)
}

type pgQuestionRepo struct {
	db db
}

// NewQuestionRepo constructs a QuestionRepo backed by the provided db connection.
func NewQuestionRepo(db db) QuestionRepo {
	return &pgQuestionRepo{db: db}
}

func (r *pgQuestionRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.Question, error) {
	const q = `
		SELECT id, question, position
		FROM questions
		WHERE event_id = @event_id
		ORDER BY position, id`

	qs, err := r.list(ctx, q, pgx.NamedArgs{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("repo.QuestionRepo.ListByEvent: %w", err)
	}
	return qs, nil
}

func (r *pgQuestionRepo) ListByIDs(ctx context.Context, eventID uuid.UUID, ids []uuid.UUID) ([]domain.Question, error) {
	const q = `
		SELECT id, question, position
		FROM questions
		WHERE event_id = @event_id AND id = ANY(@ids)
		ORDER BY position, id`

	qs, err := r.list(ctx, q, pgx.NamedArgs{"event_id": eventID, "ids": ids})
	if err != nil {
		return nil, fmt.Errorf("repo.QuestionRepo.ListByIDs: %w", err)
	}
	return qs, nil
}

func (r *pgQuestionRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Question, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := []domain.Question{}
	for rows.Next() {
		var (
			question domain.Question
			id       pgtype.UUID
		)
		if err := rows.Scan(&id, &question.Label, &question.Position); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		question.ID = uuid.UUID(id.Bytes)
		questions = append(questions, question)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return questions, nil
}
