package model

import "dansebakken_backend/internals/helpers/csvstore"

type MemberType string

const (
	MemberTypeActive    MemberType = "active"
	MemberTypeSupported MemberType = "supported"
)

// NotesKind tags what the Notes column of a row holds.
type NotesKind string

const (
	NotesComment  NotesKind = "comment"  // free-text comments, active members
	NotesRelation NotesKind = "relation" // relation to student, supported members
)

// SheetHeaders is the Registrations tab layout, identical to the CSV fallback.
var SheetHeaders = csvstore.RegistrationHeaders

// RegistrationRecord is one membership sign-up. Write-once: rows are never
// updated or deleted after the append.
type RegistrationRecord struct {
	Timestamp      string
	Name           string
	Email          string
	Phone          string
	DateOfBirth    string // optional for supported members
	MemberType     MemberType
	ClassSelection string // Thursday, Sunday or empty
	SkillLevel     string
	Comments       string // active members
	Relation       string // supported members
	PaymentAmount  string
	PaymentStatus  string
}

func (r RegistrationRecord) NotesKind() NotesKind {
	if r.MemberType == MemberTypeSupported {
		return NotesRelation
	}
	return NotesComment
}

// Notes returns the single notes value for the fixed Notes column. Earlier
// site versions swapped which column held comments vs relation depending on
// member type; the layout is normalized here and only the migration still
// understands the old shape.
func (r RegistrationRecord) Notes() string {
	if r.NotesKind() == NotesRelation {
		return r.Relation
	}
	return r.Comments
}

// Row serializes the record in SheetHeaders order.
func (r RegistrationRecord) Row() []string {
	return []string{
		r.Timestamp,
		r.Name,
		r.Email,
		r.Phone,
		r.DateOfBirth,
		string(r.MemberType),
		r.ClassSelection,
		r.SkillLevel,
		r.Notes(),
		r.PaymentAmount,
		r.PaymentStatus,
	}
}
