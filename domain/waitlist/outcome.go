package waitlist

// Outcome is the result of one submit attempt.
type Outcome string

const (
	OutcomeInvalidInput      Outcome = "invalid_input"
	OutcomeAlreadySubscribed Outcome = "already_subscribed"
	OutcomeSubscribed        Outcome = "subscribed"
	OutcomeStoreError        Outcome = "store_error"
)

var outcomeMessages = map[Outcome]string{
	OutcomeInvalidInput:      "Please enter a valid email.",
	OutcomeAlreadySubscribed: "This email is already subscribed!",
	OutcomeSubscribed:        "You've been successfully subscribed!",
	OutcomeStoreError:        "Something went wrong. Please try again.",
}

// AllOutcomes lists every outcome in a stable order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeInvalidInput,
		OutcomeAlreadySubscribed,
		OutcomeSubscribed,
		OutcomeStoreError,
	}
}

// Message is the user-facing text for the outcome.
func (o Outcome) Message() string {
	if msg, ok := outcomeMessages[o]; ok {
		return msg
	}
	return outcomeMessages[OutcomeStoreError]
}

// IsSuccess reports whether the message gets the success treatment. Only a new
// subscription does; an already-subscribed email is not an error but is not a success either.
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSubscribed
}
