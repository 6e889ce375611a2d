package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/netways/checkinlist-export/internal/domain"
)

// EventRepo reads events.
type EventRepo interface {
	// GetBySlug returns the event with the given slug.
	// Returns domain.ErrNotFound if no such event exists.
	GetBySlug(ctx context.Context, slug string) (domain.Event, error)
}

type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

func (r *pgEventRepo) GetBySlug(ctx context.Context, slug string) (domain.Event, error) {
	const q = `
		SELECT id, slug, name, name_scheme
		FROM events
		WHERE slug = @slug`

	var (
		e  domain.Event
		id pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"slug": slug}).Scan(&id, &e.Slug, &e.Name, &e.NameScheme)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, fmt.Errorf("repo.EventRepo.GetBySlug: %w", domain.ErrNotFound)
		}
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetBySlug: %w", err)
	}
	e.ID = uuid.UUID(id.Bytes)
	return e, nil
}
