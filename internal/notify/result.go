// internal/notify/result.go
package notify

// Outcome is the discriminated delivery result. Callers can branch on it
// instead of parsing logs.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Skip reasons.
const (
	ReasonUnsubscribed = "recipient_unsubscribed"
	ReasonDisabled     = "email_type_disabled"
)

// Result reports what happened to one email.
type Result struct {
	Outcome   Outcome `json:"outcome"`
	Reason    string  `json:"reason,omitempty"`     // set when skipped
	MessageID string  `json:"message_id,omitempty"` // set when sent
	Err       error   `json:"-"`                    // set when failed
}

func sent(messageID string) Result {
	return Result{Outcome: OutcomeSent, MessageID: messageID}
}

func skipped(reason string) Result {
	return Result{Outcome: OutcomeSkipped, Reason: reason}
}

func failed(err error) Result {
	return Result{Outcome: OutcomeFailed, Err: err}
}
