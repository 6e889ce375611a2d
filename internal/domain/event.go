package domain

import "github.com/google/uuid"

// Event is the ticketed event whose positions are exported.
// NameScheme selects how attendee names are split into parts.
type Event struct {
	ID         uuid.UUID
	Slug       string
	Name       string
	NameScheme string
}

// NameField is one part of a structured attendee name.
type NameField struct {
	Key   string
	Label string
}

// NameScheme is the ordered list of name parts collected for an attendee.
type NameScheme struct {
	Key    string
	Fields []NameField
}

// DefaultNameScheme is used for events without an explicit scheme.
const DefaultNameScheme = "full"

var nameSchemes = map[string]NameScheme{
	"full": {Key: "full", Fields: []NameField{
		{Key: "full_name", Label: "Name"},
	}},
	"given_family": {Key: "given_family", Fields: []NameField{
		{Key: "given_name", Label: "Given name"},
		{Key: "family_name", Label: "Family name"},
	}},
	"title_given_family": {Key: "title_given_family", Fields: []NameField{
		{Key: "title", Label: "Title"},
		{Key: "given_name", Label: "Given name"},
		{Key: "family_name", Label: "Family name"},
	}},
	"family_given": {Key: "family_given", Fields: []NameField{
		{Key: "family_name", Label: "Family name"},
		{Key: "given_name", Label: "Given name"},
	}},
}

// LookupNameScheme returns the scheme registered under key.
// Unknown or empty keys fall back to DefaultNameScheme.
func LookupNameScheme(key string) NameScheme {
	if s, ok := nameSchemes[key]; ok {
		return s
	}
	return nameSchemes[DefaultNameScheme]
}
