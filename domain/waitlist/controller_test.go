package waitlist

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akeren/referrly/config/router"
	"github.com/akeren/referrly/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, store WaitlistStore) *router.RouterService {
	t.Helper()

	logger := log.NewLoggerWithJSONOutput()
	rs := router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})

	factory := NewWaitlistServiceFactory(store, logger, Options{Metrics: rs.MetricsRegisterer()})
	t.Cleanup(factory.Close)
	rs.MountController(factory.CreateController())

	return rs
}

func postSubscription(t *testing.T, rs *router.RouterService, sessionID, body string) (*httptest.ResponseRecorder, envelope, SubmissionResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/waitlist/subscriptions", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(router.SessionHeader, sessionID)
	}

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))

	var data SubmissionResponse
	if len(env.Data) > 0 && string(env.Data) != "null" {
		_ = json.Unmarshal(env.Data, &data)
	}

	return w, env, data
}

func TestWaitlistController_SubmitOutcomes(t *testing.T) {
	rs := newTestRouter(t, NewMemoryWaitlistStore())

	w, env, data := postSubscription(t, rs, "", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "You've been successfully subscribed!", env.Message)
	assert.Equal(t, OutcomeSubscribed, data.Outcome)
	assert.True(t, data.Success)
	assert.Equal(t, 5.0, data.MessageTTLSeconds)
	assert.NotEmpty(t, data.SessionID)
	assert.Equal(t, data.SessionID, w.Header().Get(router.SessionHeader))

	w, env, data = postSubscription(t, rs, data.SessionID, `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "This email is already subscribed!", env.Message)
	assert.Equal(t, OutcomeAlreadySubscribed, data.Outcome)
	assert.False(t, data.Success)

	w, env, data = postSubscription(t, rs, data.SessionID, `{"email":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please enter a valid email.", env.Message)
	assert.Equal(t, OutcomeInvalidInput, data.Outcome)
}

func TestWaitlistController_StoreErrorIs503(t *testing.T) {
	rs := newTestRouter(t, failingStore{})

	w, env, data := postSubscription(t, rs, "", `{"email":"a@x.com"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "Something went wrong. Please try again.", env.Message)
	assert.Equal(t, OutcomeStoreError, data.Outcome)
	assert.NotContains(t, w.Body.String(), "backend down")
}

func TestWaitlistController_MalformedBody(t *testing.T) {
	rs := newTestRouter(t, NewMemoryWaitlistStore())

	w, env, _ := postSubscription(t, rs, "", `{"email":`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", env.Message)
}

func TestWaitlistController_LongEmailIsSubscribedAsIs(t *testing.T) {
	store := NewMemoryWaitlistStore()
	rs := newTestRouter(t, store)
	email := strings.Repeat("a", 330) + "@x.com"

	w, _, data := postSubscription(t, rs, "", `{"email":"`+email+`"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, OutcomeSubscribed, data.Outcome)

	doc, found, err := store.GetDocument(context.Background(), DefaultDocumentRef())
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{email}, doc.Emails)
}

func TestWaitlistController_WrongEmailTypeNamesField(t *testing.T) {
	rs := newTestRouter(t, NewMemoryWaitlistStore())

	w, env, _ := postSubscription(t, rs, "", `{"email":42}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", env.Message)
	assert.Contains(t, string(env.Data), "email")
}

func TestWaitlistController_StatusFollowsSession(t *testing.T) {
	rs := newTestRouter(t, NewMemoryWaitlistStore())

	_, _, data := postSubscription(t, rs, "", `{"email":"a@x.com"}`)

	req := httptest.NewRequest(http.MethodGet, "/v1/waitlist/status", nil)
	req.Header.Set(router.SessionHeader, data.SessionID)
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var status StatusResponse
	require.NoError(t, json.Unmarshal(env.Data, &status))

	assert.Equal(t, "You've been successfully subscribed!", status.Message)
	assert.True(t, status.Success)
	assert.Empty(t, status.Input)
}

func TestWaitlistController_StatusRequiresKnownSession(t *testing.T) {
	rs := newTestRouter(t, NewMemoryWaitlistStore())

	req := httptest.NewRequest(http.MethodGet, "/v1/waitlist/status", nil)
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/waitlist/status", nil)
	req.Header.Set(router.SessionHeader, "3f1c2b1e-0000-4000-8000-000000000000")
	w = httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWaitlistController_SubscriberCount(t *testing.T) {
	store := NewMemoryWaitlistStore()
	_ = store.CreateDocument(context.Background(), DefaultDocumentRef(), []string{"a@x.com", "b@y.com"})
	rs := newTestRouter(t, store)

	req := httptest.NewRequest(http.MethodGet, "/v1/waitlist/subscribers/count", nil)
	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var count SubscriberCountResponse
	require.NoError(t, json.Unmarshal(env.Data, &count))
	assert.Equal(t, 2, count.Count)
}

type failingStore struct{}

var errBackendDown = errBackend("backend down")

type errBackend string

func (e errBackend) Error() string { return string(e) }

func (failingStore) GetDocument(context.Context, DocumentRef) (*Document, bool, error) {
	return nil, false, errBackendDown
}

func (failingStore) CreateDocument(context.Context, DocumentRef, []string) error {
	return errBackendDown
}

func (failingStore) AppendEmail(context.Context, DocumentRef, string) error {
	return errBackendDown
}

func (failingStore) Ping(context.Context) error {
	return errBackendDown
}
