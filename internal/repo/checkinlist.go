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

// CheckinListRepo reads check-in lists together with their product restriction.
type CheckinListRepo interface {
	// GetByID retrieves a check-in list scoped to the given event.
	// Returns domain.ErrNotFound if the list does not exist for that event.
	GetByID(ctx context.Context, eventID, listID uuid.UUID) (domain.CheckinList, error)

	// ListByEvent returns all check-in lists of an event, oldest first.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.CheckinList, error)
}

type pgCheckinListRepo struct {
	db db
}

// NewCheckinListRepo constructs a CheckinListRepo backed by the provided db connection.
func NewCheckinListRepo(db db) CheckinListRepo {
	return &pgCheckinListRepo{db: db}
}

// checkinListColumns aggregates the limited products into one array so each
// list is a single row.
const checkinListColumns = `
		SELECT cl.id, cl.event_id, cl.name, cl.all_products, cl.subevent_id,
		       COALESCE(array_agg(cli.item_id) FILTER (WHERE cli.item_id IS NOT NULL), '{}')
		FROM checkin_lists cl
		LEFT JOIN checkin_list_items cli ON cli.list_id = cl.id`

func (r *pgCheckinListRepo) GetByID(ctx context.Context, eventID, listID uuid.UUID) (domain.CheckinList, error) {
	const q = checkinListColumns + `
		WHERE cl.id = @id AND cl.event_id = @event_id
		GROUP BY cl.id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": listID, "event_id": eventID})
	cl, err := scanCheckinList(row)
	if err != nil {
		return domain.CheckinList{}, fmt.Errorf("repo.CheckinListRepo.GetByID: %w", err)
	}
	return cl, nil
}

func (r *pgCheckinListRepo) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]domain.CheckinList, error) {
	const q = checkinListColumns + `
		WHERE cl.event_id = @event_id
		GROUP BY cl.id
		ORDER BY cl.created_at, cl.name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"event_id": eventID})
	if err != nil {
		return nil, fmt.Errorf("repo.CheckinListRepo.ListByEvent: %w", err)
	}
	defer rows.Close()

	lists := []domain.CheckinList{}
	for rows.Next() {
		cl, err := scanCheckinList(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.CheckinListRepo.ListByEvent: scan: %w", err)
		}
		lists = append(lists, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.CheckinListRepo.ListByEvent: rows: %w", err)
	}
	return lists, nil
}

func scanCheckinList(s scanner) (domain.CheckinList, error) {
	var (
		cl       domain.CheckinList
		id       pgtype.UUID
		eventID  pgtype.UUID
		subevent pgtype.UUID
		items    []pgtype.UUID
	)
	err := s.Scan(&id, &eventID, &cl.Name, &cl.AllProducts, &subevent, &items)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CheckinList{}, domain.ErrNotFound
		}
		return domain.CheckinList{}, err
	}
	cl.ID = uuid.UUID(id.Bytes)
	cl.EventID = uuid.UUID(eventID.Bytes)
	cl.SubeventID = optionalUUID(subevent)
	cl.ProductIDs = make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		cl.ProductIDs = append(cl.ProductIDs, uuid.UUID(item.Bytes))
	}
	return cl, nil
}
