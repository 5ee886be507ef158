package waitlist

import (
	"context"
	"sort"
	"strings"

	"github.com/akeren/referrly/internal/log"
	apperrors "github.com/akeren/referrly/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/akeren/referrly/domain/waitlist"

type WaitlistService interface {
	// Submit records emailInput in the waitlist document. The error is nil for
	// Subscribed and AlreadySubscribed.
	Submit(ctx context.Context, emailInput string) (Outcome, error)

	// SubscriberCount returns the size of the email set (0 before the first subscription).
	SubscriberCount(ctx context.Context) (int, error)

	// ExportEmails returns every subscribed email, sorted.
	ExportEmails(ctx context.Context) ([]string, error)
}

type waitlistService struct {
	logger   *log.Logger
	store    WaitlistStore
	ref      DocumentRef
	recorder OutcomeRecorder
}

func NewWaitlistService(logger *log.Logger, store WaitlistStore, ref DocumentRef, recorder OutcomeRecorder) WaitlistService {
	if recorder == nil {
		recorder = noopOutcomeRecorder{}
	}
	return &waitlistService{logger: logger, store: store, ref: ref, recorder: recorder}
}

func (s *waitlistService) Submit(ctx context.Context, emailInput string) (Outcome, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "waitlist.Submit")
	defer span.End()

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	outcome, err := s.submit(ctx, emailInput)

	span.SetAttributes(attribute.String("waitlist.outcome", string(outcome)))
	s.recorder.Record(outcome)

	switch outcome {
	case OutcomeInvalidInput:
		logger.Warn("Waitlist submit rejected empty email")
	case OutcomeAlreadySubscribed:
		logger.Info("Waitlist email already subscribed", "document", s.ref.String())
	case OutcomeSubscribed:
		logger.Info("Waitlist email subscribed", "document", s.ref.String())
	case OutcomeStoreError:
		span.RecordError(err)
		span.SetStatus(codes.Error, "waitlist store failure")
		logger.Error("Waitlist store failure", "document", s.ref.String(), "error", err)
	}

	return outcome, err
}

func (s *waitlistService) submit(ctx context.Context, emailInput string) (Outcome, error) {
	if strings.TrimSpace(emailInput) == "" {
		return OutcomeInvalidInput, apperrors.NewInvalidRequestError(OutcomeInvalidInput.Message(), nil)
	}

	doc, found, err := s.store.GetDocument(ctx, s.ref)
	if err != nil {
		return storeFailure(err)
	}

	if !found {
		if err := s.store.CreateDocument(ctx, s.ref, []string{emailInput}); err != nil {
			return storeFailure(err)
		}
		return OutcomeSubscribed, nil
	}

	if doc.Contains(emailInput) {
		return OutcomeAlreadySubscribed, nil
	}

	if err := s.store.AppendEmail(ctx, s.ref, emailInput); err != nil {
		return storeFailure(err)
	}

	return OutcomeSubscribed, nil
}

func storeFailure(err error) (Outcome, error) {
	return OutcomeStoreError, apperrors.NewServiceUnavailableError(OutcomeStoreError.Message(), err)
}

func (s *waitlistService) SubscriberCount(ctx context.Context) (int, error) {
	emails, err := s.emails(ctx)
	if err != nil {
		return 0, err
	}
	return len(emails), nil
}

func (s *waitlistService) ExportEmails(ctx context.Context) ([]string, error) {
	emails, err := s.emails(ctx)
	if err != nil {
		return nil, err
	}

	sorted := append([]string(nil), emails...)
	sort.Strings(sorted)
	return sorted, nil
}

func (s *waitlistService) emails(ctx context.Context) ([]string, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	doc, found, err := s.store.GetDocument(ctx, s.ref)
	if err != nil {
		logger.Error("Failed to read waitlist document", "document", s.ref.String(), "error", err)
		return nil, apperrors.NewServiceUnavailableError("waitlist store is unavailable", err)
	}
	if !found {
		return []string{}, nil
	}

	return doc.Emails, nil
}
