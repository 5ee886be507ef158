package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/akeren/referrly/domain/waitlist"
	"github.com/akeren/referrly/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *log.Logger {
	return &log.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func newMemoryService() waitlist.WaitlistService {
	return waitlist.NewWaitlistService(discardLogger(), waitlist.NewMemoryWaitlistStore(), waitlist.DefaultDocumentRef(), nil)
}

func TestRunSubscribe_ExitCodes(t *testing.T) {
	service := newMemoryService()
	ctx := context.Background()

	var out bytes.Buffer
	assert.Equal(t, 0, runSubscribe(ctx, discardLogger(), service, "a@x.io", &out))
	assert.Equal(t, "You've been successfully subscribed!\n", out.String())

	out.Reset()
	assert.Equal(t, 0, runSubscribe(ctx, discardLogger(), service, "a@x.io", &out))
	assert.Equal(t, "This email is already subscribed!\n", out.String())

	out.Reset()
	assert.Equal(t, 1, runSubscribe(ctx, discardLogger(), service, "   ", &out))
	assert.Equal(t, "Please enter a valid email.\n", out.String())
}

func TestRunSubscribe_StoreErrorIsLoggedAtDebug(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := waitlist.NewMockWaitlistStore(ctrl)
	store.EXPECT().GetDocument(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("connection refused"))

	service := waitlist.NewWaitlistService(discardLogger(), store, waitlist.DefaultDocumentRef(), nil)

	var logs bytes.Buffer
	logger := &log.Logger{Logger: slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	var out bytes.Buffer
	assert.Equal(t, 1, runSubscribe(context.Background(), logger, service, "a@x.io", &out))
	assert.Equal(t, "Something went wrong. Please try again.\n", out.String())
	assert.Contains(t, logs.String(), `"level":"DEBUG"`)
	assert.Contains(t, logs.String(), "connection refused")
}

func TestRunExport_PrintsSortedEmails(t *testing.T) {
	service := newMemoryService()
	ctx := context.Background()

	for _, email := range []string{"c@x.io", "a@x.io", "b@x.io"} {
		_, err := service.Submit(ctx, email)
		require.NoError(t, err)
	}

	var out bytes.Buffer
	require.NoError(t, runExport(ctx, service, &out))
	assert.Equal(t, "a@x.io\nb@x.io\nc@x.io\n", out.String())
}

func TestRunExport_EmptyWaitlist(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runExport(context.Background(), newMemoryService(), &out))
	assert.Empty(t, out.String())
}
