package waitlist

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/akeren/referrly/internal/models"
	"github.com/akeren/referrly/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormWaitlistStoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store WaitlistStore
	ref   DocumentRef
}

func (s *GormWaitlistStoreTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)

	sqlDB, err := db.DB()
	s.Require().NoError(err)
	// Every new connection to :memory: is a fresh database.
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(models.ModelRegistry...))

	s.db = db
	s.ref = DefaultDocumentRef()
	s.store = NewGormWaitlistStore(db, retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: 20,
		BaseDelay:   time.Millisecond,
		MaxDelay:    5 * time.Millisecond,
		Multiplier:  2,
		RetryIf:     isVersionConflict,
	}))
}

func (s *GormWaitlistStoreTestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func (s *GormWaitlistStoreTestSuite) TestMissingDocument() {
	doc, found, err := s.store.GetDocument(context.Background(), s.ref)

	s.NoError(err)
	s.False(found)
	s.Nil(doc)
}

func (s *GormWaitlistStoreTestSuite) TestCreateThenAppend() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateDocument(ctx, s.ref, []string{"a@x.com"}))
	s.Require().NoError(s.store.AppendEmail(ctx, s.ref, "b@y.com"))

	doc, found, err := s.store.GetDocument(ctx, s.ref)
	s.Require().NoError(err)
	s.True(found)
	s.Equal([]string{"a@x.com", "b@y.com"}, doc.Emails)
}

func (s *GormWaitlistStoreTestSuite) TestAppendIsIdempotent() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateDocument(ctx, s.ref, []string{"a@x.com"}))
	s.Require().NoError(s.store.AppendEmail(ctx, s.ref, "a@x.com"))

	var row models.WaitlistDocument
	s.Require().NoError(s.db.First(&row, "collection = ? AND document_id = ?", s.ref.Collection, s.ref.ID).Error)
	s.Equal(models.EmailSet{"a@x.com"}, row.Emails)
	s.Equal(int64(1), row.Version, "a no-op append must not bump the version")
}

func (s *GormWaitlistStoreTestSuite) TestCreateOnExistingDocumentMerges() {
	ctx := context.Background()

	s.Require().NoError(s.store.CreateDocument(ctx, s.ref, []string{"a@x.com"}))
	s.Require().NoError(s.store.CreateDocument(ctx, s.ref, []string{"b@y.com", "a@x.com"}))

	doc, _, err := s.store.GetDocument(ctx, s.ref)
	s.Require().NoError(err)
	s.Equal([]string{"a@x.com", "b@y.com"}, doc.Emails)
}

func (s *GormWaitlistStoreTestSuite) TestAppendWithoutDocumentCreatesIt() {
	ctx := context.Background()

	s.Require().NoError(s.store.AppendEmail(ctx, s.ref, "a@x.com"))

	doc, found, err := s.store.GetDocument(ctx, s.ref)
	s.Require().NoError(err)
	s.True(found)
	s.Equal([]string{"a@x.com"}, doc.Emails)
}

func (s *GormWaitlistStoreTestSuite) TestDocumentsAreAddressedIndependently() {
	ctx := context.Background()
	other := DocumentRef{Collection: "emails", ID: "partners"}

	s.Require().NoError(s.store.CreateDocument(ctx, s.ref, []string{"a@x.com"}))
	s.Require().NoError(s.store.CreateDocument(ctx, other, []string{"p@x.com"}))

	doc, _, err := s.store.GetDocument(ctx, other)
	s.Require().NoError(err)
	s.Equal([]string{"p@x.com"}, doc.Emails)
}

func (s *GormWaitlistStoreTestSuite) TestConcurrentAppendsKeepEveryEmail() {
	ctx := context.Background()
	s.Require().NoError(s.store.CreateDocument(ctx, s.ref, []string{"seed@x.com"}))

	const writers = 5
	var wg sync.WaitGroup
	errs := make(chan error, writers*2)

	for i := 0; i < writers; i++ {
		email := fmt.Sprintf("user%d@x.com", i)
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- s.store.AppendEmail(ctx, s.ref, email)
			}()
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.NoError(err)
	}

	doc, _, err := s.store.GetDocument(ctx, s.ref)
	s.Require().NoError(err)
	s.Len(doc.Emails, writers+1)
}

func (s *GormWaitlistStoreTestSuite) TestPing() {
	s.NoError(s.store.Ping(context.Background()))
}

func TestGormWaitlistStoreTestSuite(t *testing.T) {
	suite.Run(t, new(GormWaitlistStoreTestSuite))
}

type conflictingPolicy struct {
	attempts int
}

func (p *conflictingPolicy) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: p.attempts,
		BaseDelay:   time.Microsecond,
		RetryIf:     isVersionConflict,
	}).Execute(ctx, func(context.Context) error { return ErrVersionConflict })
}

func TestGormWaitlistStore_ConflictExhaustionIsAnError(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()
	require.NoError(t, db.AutoMigrate(models.ModelRegistry...))

	store := NewGormWaitlistStore(db, &conflictingPolicy{attempts: 3})

	err = store.AppendEmail(context.Background(), DefaultDocumentRef(), "a@x.com")

	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.True(t, retry.IsMaxRetriesExceeded(err))
}
