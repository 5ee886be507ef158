package waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/akeren/referrly/internal/models"
	apperrors "github.com/akeren/referrly/pkg/errors"
	"github.com/akeren/referrly/pkg/retry"
	"gorm.io/gorm"
)

// DefaultConflictRetryConfig bounds optimistic retries on a contended document.
func DefaultConflictRetryConfig() *retry.Config {
	return &retry.Config{
		MaxAttempts: 10,
		BaseDelay:   10 * time.Millisecond,
		MaxDelay:    200 * time.Millisecond,
		Multiplier:  2,
		Jitter:      0.5,
		RetryIf:     isVersionConflict,
	}
}

func isVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

type gormWaitlistStore struct {
	db     *gorm.DB
	policy retry.RetryPolicy
}

// NewGormWaitlistStore keeps the email set in one versioned row. Set-union is
// emulated with optimistic read-modify-write, retried on version conflicts.
func NewGormWaitlistStore(db *gorm.DB, policy retry.RetryPolicy) WaitlistStore {
	if policy == nil {
		policy = retry.NewExponentialBackoff(DefaultConflictRetryConfig())
	}
	return &gormWaitlistStore{db: db, policy: policy}
}

func (s *gormWaitlistStore) GetDocument(ctx context.Context, ref DocumentRef) (*Document, bool, error) {
	row, err := s.findRow(s.db.WithContext(ctx), ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, apperrors.NewDatabaseError("failed to fetch waitlist document", err)
	}

	return &Document{Ref: ref, Emails: []string(row.Emails)}, true, nil
}

func (s *gormWaitlistStore) CreateDocument(ctx context.Context, ref DocumentRef, emails []string) error {
	err := s.insertRow(s.db.WithContext(ctx), ref, models.UnionEmails(nil, emails...))
	if errors.Is(err, ErrDocumentExists) {
		return s.appendEmails(ctx, ref, emails)
	}
	return err
}

func (s *gormWaitlistStore) AppendEmail(ctx context.Context, ref DocumentRef, email string) error {
	return s.appendEmails(ctx, ref, []string{email})
}

func (s *gormWaitlistStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormWaitlistStore) appendEmails(ctx context.Context, ref DocumentRef, emails []string) error {
	err := s.policy.Execute(ctx, func(ctx context.Context) error {
		db := s.db.WithContext(ctx)

		row, err := s.findRow(db, ref)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The row vanished or was never created; an insert racing another
			// creator is just another conflict.
			err = s.insertRow(db, ref, models.UnionEmails(nil, emails...))
			if errors.Is(err, ErrDocumentExists) {
				return ErrVersionConflict
			}
			return err
		}
		if err != nil {
			return apperrors.NewDatabaseError("failed to fetch waitlist document", err)
		}

		merged := models.UnionEmails(row.Emails, emails...)
		if len(merged) == len(row.Emails) {
			return nil
		}

		result := db.Model(&models.WaitlistDocument{}).
			Where("collection = ? AND document_id = ? AND version = ?", ref.Collection, ref.ID, row.Version).
			Updates(map[string]any{
				"emails":     merged,
				"version":    row.Version + 1,
				"updated_at": time.Now().UTC(),
			})

		if result.Error != nil {
			return apperrors.NewDatabaseError("unable to update waitlist document", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}

		return nil
	})

	if retry.IsMaxRetriesExceeded(err) {
		return fmt.Errorf("append to %s gave up after repeated conflicts: %w", ref, err)
	}
	return err
}

func (s *gormWaitlistStore) findRow(db *gorm.DB, ref DocumentRef) (*models.WaitlistDocument, error) {
	var row models.WaitlistDocument

	err := db.Where("collection = ? AND document_id = ?", ref.Collection, ref.ID).First(&row).Error
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (s *gormWaitlistStore) insertRow(db *gorm.DB, ref DocumentRef, emails models.EmailSet) error {
	row := &models.WaitlistDocument{
		Collection: ref.Collection,
		DocumentID: ref.ID,
		Emails:     emails,
		Version:    1,
	}

	if err := db.Create(row).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDocumentExists
		}
		return apperrors.NewDatabaseError("unable to create waitlist document", err)
	}

	return nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
