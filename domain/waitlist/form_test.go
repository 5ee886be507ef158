package waitlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akeren/referrly/internal/log"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestForm(store WaitlistStore) (*Form, *fakeScheduler) {
	scheduler := &fakeScheduler{}
	service := NewWaitlistService(log.NewLoggerWithJSONOutput(), store, DefaultDocumentRef(), nil)
	return NewForm(service, NewStatusMessage(5*time.Second, scheduler.Schedule)), scheduler
}

func TestForm_SubscribedClearsInput(t *testing.T) {
	form, _ := newTestForm(NewMemoryWaitlistStore())

	form.SetInput("a@x.com")
	outcome, err := form.Submit(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, OutcomeSubscribed, outcome)
	assert.Empty(t, form.Input())
	assert.True(t, form.Status().Success)
}

func TestForm_AlreadySubscribedKeepsInput(t *testing.T) {
	store := NewMemoryWaitlistStore()
	_ = store.CreateDocument(context.Background(), DefaultDocumentRef(), []string{"a@x.com"})
	form, _ := newTestForm(store)

	outcome, err := form.SubmitInput(context.Background(), "a@x.com")

	assert.NoError(t, err)
	assert.Equal(t, OutcomeAlreadySubscribed, outcome)
	assert.Equal(t, "a@x.com", form.Input())
	assert.Equal(t, "This email is already subscribed!", form.Status().Message)
}

func TestForm_InvalidInputShowsMessage(t *testing.T) {
	form, scheduler := newTestForm(NewMemoryWaitlistStore())

	outcome, err := form.SubmitInput(context.Background(), "  ")

	assert.Error(t, err)
	assert.Equal(t, OutcomeInvalidInput, outcome)
	assert.Equal(t, "Please enter a valid email.", form.Status().Message)
	assert.Equal(t, "  ", form.Input())
	assert.Len(t, scheduler.timers, 1)
}

func TestForm_StoreErrorShowsRetryMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := NewMockWaitlistStore(ctrl)
	mockStore.EXPECT().GetDocument(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("connection reset"))

	form, scheduler := newTestForm(mockStore)

	outcome, err := form.SubmitInput(context.Background(), "a@x.com")

	assert.Error(t, err)
	assert.Equal(t, OutcomeStoreError, outcome)
	assert.Equal(t, "Something went wrong. Please try again.", form.Status().Message)
	assert.Equal(t, "a@x.com", form.Input())

	scheduler.last().fn()
	assert.True(t, form.Status().IsEmpty())
}
