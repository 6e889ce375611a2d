package domain

import "github.com/google/uuid"

// Question is a custom attribute collected from buyers during checkout.
// Label is the already-resolved display string; Position orders questions
// the way the event organiser arranged them.
type Question struct {
	ID       uuid.UUID
	Label    string
	Position int
}
