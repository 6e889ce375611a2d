package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/netways/checkinlist-export/internal/domain"
)

// PositionRepo loads the order positions that make up a check-in list.
type PositionRepo interface {
	// ListForExport returns the positions matching filter in export order,
	// with the parent of every addon and the answers to questionIDs attached.
	// Positions are never deduplicated; pivoting is the caller's job.
	ListForExport(ctx context.Context, filter domain.PositionFilter, questionIDs []uuid.UUID) ([]domain.TicketPosition, error)
}

type pgPositionRepo struct {
	db db
}

// NewPositionRepo constructs a PositionRepo backed by the provided db connection.
func NewPositionRepo(db db) PositionRepo {
	return &pgPositionRepo{db: db}
}

const positionsQuery = `
		SELECT op.id, o.code, o.status, o.email,
		       op.attendee_name, op.attendee_name_parts, op.attendee_email,
		       i.name, COALESCE(v.value, ''), op.price::text,
		       COALESCE(vc.code, ''), COALESCE(se.name, ''), op.secret,
		       op.company, op.street, op.zipcode, op.city, op.country,
		       p.id,
		       COALESCE(p.attendee_name, ''), COALESCE(p.attendee_name_parts, '{}'::jsonb),
		       COALESCE(p.attendee_email, ''), COALESCE(pvc.code, ''), COALESCE(p.secret, ''),
		       COALESCE(p.company, ''), COALESCE(p.street, ''), COALESCE(p.zipcode, ''),
		       COALESCE(p.city, ''), COALESCE(p.country, '')
		FROM order_positions op
		JOIN orders o ON o.id = op.order_id
		JOIN items i ON i.id = op.item_id
		LEFT JOIN item_variations v ON v.id = op.variation_id
		LEFT JOIN vouchers vc ON vc.id = op.voucher_id
		LEFT JOIN subevents se ON se.id = op.subevent_id
		LEFT JOIN order_positions p ON p.id = op.addon_to_id
		LEFT JOIN vouchers pvc ON pvc.id = p.voucher_id
		WHERE o.event_id = @event_id
		  AND o.status = ANY(@statuses)
		  AND (@all_products OR op.item_id = ANY(@item_ids))
		  AND (@subevent_id::uuid IS NULL OR op.subevent_id = @subevent_id)`

// positionOrder maps the export sort keys to ORDER BY clauses. The position
// id is the final tie-breaker so repeated exports list rows identically.
var positionOrder = map[string]string{
	domain.SortByName: `
		ORDER BY COALESCE(NULLIF(op.attendee_name, ''), p.attendee_name, ''), o.code, op.id`,
	domain.SortByCode: `
		ORDER BY o.code, op.id`,
}

func (r *pgPositionRepo) ListForExport(ctx context.Context, filter domain.PositionFilter, questionIDs []uuid.UUID) ([]domain.TicketPosition, error) {
	order, ok := positionOrder[filter.Sort]
	if !ok {
		order = positionOrder[domain.SortByName]
	}

	statuses := []string{string(domain.StatusPaid)}
	if !filter.PaidOnly {
		statuses = append(statuses, string(domain.StatusPending))
	}
	itemIDs := filter.ProductIDs
	if itemIDs == nil {
		itemIDs = []uuid.UUID{}
	}

	args := pgx.NamedArgs{
		"event_id":     filter.EventID,
		"statuses":     statuses,
		"all_products": filter.ProductIDs == nil,
		"item_ids":     itemIDs,
		"subevent_id":  filter.SubeventID,
	}

	rows, err := r.db.Query(ctx, positionsQuery+order, args)
	if err != nil {
		return nil, fmt.Errorf("repo.PositionRepo.ListForExport: %w", err)
	}
	defer rows.Close()

	positions := []domain.TicketPosition{}
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PositionRepo.ListForExport: scan: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PositionRepo.ListForExport: rows: %w", err)
	}

	if len(positions) == 0 || len(questionIDs) == 0 {
		return positions, nil
	}
	if err := r.attachAnswers(ctx, positions, questionIDs); err != nil {
		return nil, fmt.Errorf("repo.PositionRepo.ListForExport: %w", err)
	}
	return positions, nil
}

// attachAnswers loads the answers of all positions in one query and stores
// them on the matching position.
func (r *pgPositionRepo) attachAnswers(ctx context.Context, positions []domain.TicketPosition, questionIDs []uuid.UUID) error {
	const q = `
		SELECT order_position_id, question_id, answer
		FROM question_answers
		WHERE order_position_id = ANY(@position_ids)
		  AND question_id = ANY(@question_ids)`

	byID := make(map[uuid.UUID]*domain.TicketPosition, len(positions))
	ids := make([]uuid.UUID, len(positions))
	for i := range positions {
		byID[positions[i].ID] = &positions[i]
		ids[i] = positions[i].ID
	}

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"position_ids": ids, "question_ids": questionIDs})
	if err != nil {
		return fmt.Errorf("answers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			positionID pgtype.UUID
			questionID pgtype.UUID
			answer     string
		)
		if err := rows.Scan(&positionID, &questionID, &answer); err != nil {
			return fmt.Errorf("answers: scan: %w", err)
		}
		p := byID[uuid.UUID(positionID.Bytes)]
		if p.Answers == nil {
			p.Answers = make(map[uuid.UUID]string)
		}
		p.Answers[uuid.UUID(questionID.Bytes)] = answer
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("answers: rows: %w", err)
	}
	return nil
}

// scanPosition maps one row of positionsQuery into a domain.TicketPosition,
// building the parent position for addons.
func scanPosition(s scanner) (domain.TicketPosition, error) {
	var (
		p        domain.TicketPosition
		parent   domain.TicketPosition
		id       pgtype.UUID
		parentID pgtype.UUID
		status   string
		price    string
	)
	err := s.Scan(
		&id, &p.OrderCode, &status, &p.OrderEmail,
		&p.AttendeeName, &p.AttendeeNameParts, &p.AttendeeEmail,
		&p.ProductName, &p.VariationLabel, &price,
		&p.VoucherCode, &p.SubeventLabel, &p.Secret,
		&p.Address.Company, &p.Address.Street, &p.Address.Zipcode, &p.Address.City, &p.Address.Country,
		&parentID,
		&parent.AttendeeName, &parent.AttendeeNameParts,
		&parent.AttendeeEmail, &parent.VoucherCode, &parent.Secret,
		&parent.Address.Company, &parent.Address.Street, &parent.Address.Zipcode,
		&parent.Address.City, &parent.Address.Country,
	)
	if err != nil {
		return domain.TicketPosition{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.OrderStatus = domain.OrderStatus(status)
	p.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return domain.TicketPosition{}, fmt.Errorf("price %q: %w", price, err)
	}
	if parentID.Valid {
		parent.ID = uuid.UUID(parentID.Bytes)
		parent.OrderCode = p.OrderCode
		parent.OrderStatus = p.OrderStatus
		parent.OrderEmail = p.OrderEmail
		p.AddonTo = &parent
	}
	return p, nil
}
