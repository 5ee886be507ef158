package waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/akeren/referrly/pkg/constants"
)

var (
	// ErrDocumentExists is returned by a backend insert that lost the race to create the document.
	ErrDocumentExists = errors.New("waitlist document already exists")
	// ErrVersionConflict means another writer updated the document between our read and write.
	ErrVersionConflict = errors.New("waitlist document version conflict")
)

// DocumentRef addresses the single document holding the email set.
type DocumentRef struct {
	Collection string
	ID         string
}

func DefaultDocumentRef() DocumentRef {
	return DocumentRef{
		Collection: constants.WaitlistCollection,
		ID:         constants.WaitlistDocumentID,
	}
}

func (r DocumentRef) String() string {
	return fmt.Sprintf("%s/%s", r.Collection, r.ID)
}

type Document struct {
	Ref    DocumentRef
	Emails []string
}

// Contains is an exact, case-sensitive match.
func (d *Document) Contains(email string) bool {
	if d == nil {
		return false
	}
	for _, existing := range d.Emails {
		if existing == email {
			return true
		}
	}
	return false
}

//go:generate mockgen -source=store.go -destination=mock_store.go -package=waitlist

// WaitlistStore is the remote document store holding the subscriber set.
type WaitlistStore interface {
	// GetDocument returns found=false with a nil error when the document does not exist.
	GetDocument(ctx context.Context, ref DocumentRef) (*Document, bool, error)
	// CreateDocument creates the document with the given emails. If another writer
	// created it first, the emails are merged into the existing set.
	CreateDocument(ctx context.Context, ref DocumentRef, emails []string) error
	// AppendEmail adds email to the set unless it is already present.
	AppendEmail(ctx context.Context, ref DocumentRef, email string) error
	Ping(ctx context.Context) error
}
