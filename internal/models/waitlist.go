package models

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

// WaitlistDocument is the relational form of the single subscriber document:
// one row per (collection, document id) holding the whole email list.
type WaitlistDocument struct {
	Collection string    `gorm:"type:text;primaryKey" json:"collection"`
	DocumentID string    `gorm:"type:text;primaryKey" json:"document_id"`
	Emails     EmailSet  `gorm:"type:text;not null" json:"emails"`
	Version    int64     `gorm:"not null;default:0" json:"version"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (WaitlistDocument) TableName() string {
	return "waitlist_documents"
}

// EmailSet is an ordered list of emails persisted as a JSON array.
type EmailSet = datatypes.JSONSlice[string]

// ContainsEmail reports exact, case-sensitive membership.
func ContainsEmail(set EmailSet, email string) bool {
	return slices.Contains(set, email)
}

// UnionEmails returns set followed by every email in others that set does not already hold.
// The result is never nil so it persists as "[]" rather than "null".
func UnionEmails(set EmailSet, others ...string) EmailSet {
	out := make(EmailSet, 0, len(set)+len(others))
	out = append(out, set...)

	for _, email := range others {
		if !ContainsEmail(out, email) {
			out = append(out, email)
		}
	}

	return out
}
