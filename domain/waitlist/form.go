package waitlist

import (
	"context"
	"sync"
	"time"
)

// Form is the per-session subscription form: the typed email and the status line.
type Form struct {
	mu      sync.Mutex
	input   string
	service WaitlistService
	status  *StatusMessage
}

func NewForm(service WaitlistService, status *StatusMessage) *Form {
	return &Form{service: service, status: status}
}

func (f *Form) SetInput(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.input = value
}

func (f *Form) Input() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

func (f *Form) Status() Status {
	return f.status.Current()
}

func (f *Form) StatusTTL() time.Duration {
	return f.status.TTL()
}

// Submit sends whatever is currently typed.
func (f *Form) Submit(ctx context.Context) (Outcome, error) {
	return f.submit(ctx, f.Input())
}

// SubmitInput types value into the form and submits it.
func (f *Form) SubmitInput(ctx context.Context, value string) (Outcome, error) {
	f.SetInput(value)
	return f.submit(ctx, value)
}

// The form lock is not held while the service talks to the store, so
// overlapping submits from one session run independently.
func (f *Form) submit(ctx context.Context, value string) (Outcome, error) {
	outcome, err := f.service.Submit(ctx, value)

	f.status.Show(outcome)
	if outcome == OutcomeSubscribed {
		f.SetInput("")
	}

	return outcome, err
}

func (f *Form) Close() {
	f.status.Close()
}
