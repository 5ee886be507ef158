package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/akeren/referrly/config"
	"github.com/akeren/referrly/domain"
	"github.com/akeren/referrly/domain/waitlist"
	"github.com/akeren/referrly/internal/log"
)

const commandTimeout = 30 * time.Second

func newWaitlistService(logger *log.Logger) (waitlist.WaitlistService, func(), error) {
	appConfig, err := config.LoadStoreConfiguration(logger)
	if err != nil {
		return nil, nil, err
	}

	store, err := domain.NewWaitlistStore(appConfig)
	if err != nil {
		appConfig.Cleanup()
		return nil, nil, err
	}

	wc := appConfig.Config.Waitlist
	ref := waitlist.DocumentRef{Collection: wc.Collection, ID: wc.DocumentID}

	return waitlist.NewWaitlistService(logger, store, ref, nil), appConfig.Cleanup, nil
}

// runSubscribe prints the outcome message and returns the process exit code.
func runSubscribe(ctx context.Context, logger *log.Logger, service waitlist.WaitlistService, email string, out io.Writer) int {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	// The service already logged store failures; the outcome carries the user message.
	outcome, err := service.Submit(ctx, email)
	if err != nil {
		logger.Debug("Subscribe failed", "outcome", string(outcome), "error", err.Error())
	}
	fmt.Fprintln(out, outcome.Message())

	switch outcome {
	case waitlist.OutcomeSubscribed, waitlist.OutcomeAlreadySubscribed:
		return 0
	default:
		return 1
	}
}

func runExport(ctx context.Context, service waitlist.WaitlistService, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	emails, err := service.ExportEmails(ctx)
	if err != nil {
		return err
	}

	for _, email := range emails {
		if _, err := fmt.Fprintln(out, email); err != nil {
			return err
		}
	}
	return nil
}
