package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Seeder inserts rows for integration tests through a transaction.
// Every method fails the test on error and returns the new row's ID.
type Seeder struct {
	t  *testing.T
	tx pgx.Tx
}

// NewSeeder returns a Seeder writing through tx.
func NewSeeder(t *testing.T, tx pgx.Tx) *Seeder {
	return &Seeder{t: t, tx: tx}
}

func (s *Seeder) insert(q string, args pgx.NamedArgs) uuid.UUID {
	s.t.Helper()
	var id uuid.UUID
	if err := s.tx.QueryRow(context.Background(), q+" RETURNING id", args).Scan(&id); err != nil {
		s.t.Fatalf("testutil.Seeder: %v", err)
	}
	return id
}

// Event inserts an event with the given slug and name scheme.
func (s *Seeder) Event(slug, nameScheme string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO events (slug, name, name_scheme) VALUES (@slug, @slug, @scheme)`,
		pgx.NamedArgs{"slug": slug, "scheme": nameScheme})
}

// Item inserts a product.
func (s *Seeder) Item(eventID uuid.UUID, name string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO items (event_id, name) VALUES (@event_id, @name)`,
		pgx.NamedArgs{"event_id": eventID, "name": name})
}

// Variation inserts a product variation.
func (s *Seeder) Variation(itemID uuid.UUID, value string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO item_variations (item_id, value) VALUES (@item_id, @value)`,
		pgx.NamedArgs{"item_id": itemID, "value": value})
}

// Subevent inserts a subevent (event date).
func (s *Seeder) Subevent(eventID uuid.UUID, name string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO subevents (event_id, name) VALUES (@event_id, @name)`,
		pgx.NamedArgs{"event_id": eventID, "name": name})
}

// Voucher inserts a voucher code.
func (s *Seeder) Voucher(eventID uuid.UUID, code string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO vouchers (event_id, code) VALUES (@event_id, @code)`,
		pgx.NamedArgs{"event_id": eventID, "code": code})
}

// Order inserts an order; status is "p" (paid), "n" (pending), "e" or "c".
func (s *Seeder) Order(eventID uuid.UUID, code, status, email string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO orders (event_id, code, status, email) VALUES (@event_id, @code, @status, @email)`,
		pgx.NamedArgs{"event_id": eventID, "code": code, "status": status, "email": email})
}

// PositionSpec describes an order position to insert.
type PositionSpec struct {
	OrderID      uuid.UUID
	ItemID       uuid.UUID
	VariationID  *uuid.UUID
	Price        string
	AttendeeName string
	NameParts    map[string]string
	Email        string
	AddonTo      *uuid.UUID
	VoucherID    *uuid.UUID
	SubeventID   *uuid.UUID
	Secret       string
	City         string
}

// Position inserts an order position.
func (s *Seeder) Position(p PositionSpec) uuid.UUID {
	s.t.Helper()
	if p.Price == "" {
		p.Price = "0"
	}
	if p.NameParts == nil {
		p.NameParts = map[string]string{}
	}
	return s.insert(`
		INSERT INTO order_positions (order_id, item_id, variation_id, price, attendee_name, attendee_name_parts,
		                             attendee_email, addon_to_id, voucher_id, subevent_id, secret, city)
		VALUES (@order_id, @item_id, @variation_id, @price::numeric, @attendee_name, @name_parts,
		        @email, @addon_to, @voucher_id, @subevent_id, @secret, @city)`,
		pgx.NamedArgs{
			"order_id":      p.OrderID,
			"item_id":       p.ItemID,
			"variation_id":  p.VariationID,
			"price":         p.Price,
			"attendee_name": p.AttendeeName,
			"name_parts":    p.NameParts,
			"email":         p.Email,
			"addon_to":      p.AddonTo,
			"voucher_id":    p.VoucherID,
			"subevent_id":   p.SubeventID,
			"secret":        p.Secret,
			"city":          p.City,
		})
}

// Question inserts a question at the given position.
func (s *Seeder) Question(eventID uuid.UUID, label string, position int) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO questions (event_id, question, position) VALUES (@event_id, @label, @position)`,
		pgx.NamedArgs{"event_id": eventID, "label": label, "position": position})
}

// Answer stores an answer for a position.
func (s *Seeder) Answer(positionID, questionID uuid.UUID, answer string) uuid.UUID {
	s.t.Helper()
	return s.insert(`INSERT INTO question_answers (order_position_id, question_id, answer) VALUES (@position_id, @question_id, @answer)`,
		pgx.NamedArgs{"position_id": positionID, "question_id": questionID, "answer": answer})
}

// CheckinList inserts a check-in list. A nil items slice means all products.
func (s *Seeder) CheckinList(eventID uuid.UUID, name string, items []uuid.UUID, subeventID *uuid.UUID) uuid.UUID {
	s.t.Helper()
	id := s.insert(`INSERT INTO checkin_lists (event_id, name, all_products, subevent_id) VALUES (@event_id, @name, @all, @subevent_id)`,
		pgx.NamedArgs{"event_id": eventID, "name": name, "all": items == nil, "subevent_id": subeventID})
	for _, item := range items {
		_, err := s.tx.Exec(context.Background(),
			`INSERT INTO checkin_list_items (list_id, item_id) VALUES (@list_id, @item_id)`,
			pgx.NamedArgs{"list_id": id, "item_id": item})
		if err != nil {
			s.t.Fatalf("testutil.Seeder.CheckinList: %v", err)
		}
	}
	return id
}
