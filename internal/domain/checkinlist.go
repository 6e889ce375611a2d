package domain

import "github.com/google/uuid"

// CheckinList is a named subset of an event's products (and optionally one
// subevent) that is admitted at a particular entrance.
type CheckinList struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	Name        string
	AllProducts bool
	ProductIDs  []uuid.UUID // only meaningful when AllProducts is false
	SubeventID  *uuid.UUID  // nil when the list covers every subevent
}
