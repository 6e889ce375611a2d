package checkin

import "github.com/netways/checkinlist-export/internal/domain"

// Owner returns the position whose attendee data describes p's row: the
// parent for addons without an attendee name, p itself otherwise.
func Owner(p *domain.TicketPosition) *domain.TicketPosition {
	if p.AttendeeName == "" && p.AddonTo != nil {
		return p.AddonTo
	}
	return p
}

// ResolveAttendee returns the display name and email p is grouped under.
// Name and email fall back to the parent position independently, so an addon
// carrying only an email still inherits the parent's name.
//
// Positions without any attendee name resolve to "" and therefore share one
// row, even when they belong to unrelated orders.
func ResolveAttendee(p *domain.TicketPosition) (name, email string) {
	name, email = p.AttendeeName, p.AttendeeEmail
	if p.AddonTo != nil {
		if name == "" {
			name = p.AddonTo.AttendeeName
		}
		if email == "" {
			email = p.AddonTo.AttendeeEmail
		}
	}
	return name, email
}
