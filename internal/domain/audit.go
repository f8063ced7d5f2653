package domain

import "time"

// AuditFields records who created and last modified an entity, and when.
// The persistence layer stamps these from the ambient principal on every
// write; callers never set them directly.
type AuditFields struct {
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedBy string    `json:"modifiedBy"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// StampCreate returns the fields for a freshly created entity: creation and
// modification attribution both point at the acting principal.
func StampCreate(by string, at time.Time) AuditFields {
	return AuditFields{
		CreatedBy:  by,
		CreatedAt:  at,
		ModifiedBy: by,
		ModifiedAt: at,
	}
}

// StampModify returns a copy with modification attribution updated. Creation
// attribution is never touched after the fact.
func (a AuditFields) StampModify(by string, at time.Time) AuditFields {
	a.ModifiedBy = by
	a.ModifiedAt = at
	return a
}
