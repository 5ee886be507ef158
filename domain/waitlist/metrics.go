package waitlist

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeRecorder counts submit outcomes.
type OutcomeRecorder interface {
	Record(outcome Outcome)
}

type noopOutcomeRecorder struct{}

func (noopOutcomeRecorder) Record(Outcome) {}

type prometheusOutcomeRecorder struct {
	submissions *prometheus.CounterVec
}

// NewOutcomeRecorder registers waitlist_submissions_total on reg. A nil
// registerer yields a recorder that discards everything.
func NewOutcomeRecorder(reg prometheus.Registerer) OutcomeRecorder {
	if reg == nil {
		return noopOutcomeRecorder{}
	}

	submissions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "waitlist_submissions_total",
			Help: "Waitlist submit attempts by outcome.",
		},
		[]string{"outcome"},
	)

	if err := reg.Register(submissions); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
		submissions = already.ExistingCollector.(*prometheus.CounterVec)
	}

	for _, outcome := range AllOutcomes() {
		submissions.WithLabelValues(string(outcome))
	}

	return &prometheusOutcomeRecorder{submissions: submissions}
}

func (r *prometheusOutcomeRecorder) Record(outcome Outcome) {
	r.submissions.WithLabelValues(string(outcome)).Inc()
}
