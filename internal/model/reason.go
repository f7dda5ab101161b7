package model

// SubmitReason tags why a submission occurred. The set is closed; the
// submit endpoints reject anything outside it.
type SubmitReason string

const (
	ReasonUserSubmit       SubmitReason = "user_submit"
	ReasonTimeout          SubmitReason = "timeout"
	ReasonProctorViolation SubmitReason = "proctor_violation"
)

func (r SubmitReason) Valid() bool {
	switch r {
	case ReasonUserSubmit, ReasonTimeout, ReasonProctorViolation:
		return true
	}
	return false
}

// FinalStatus maps a submit reason onto the terminal session status:
// a proctoring violation autofails the attempt, everything else submits it.
func (r SubmitReason) FinalStatus() SessionStatus {
	if r == ReasonProctorViolation {
		return StatusAutofailed
	}
	return StatusSubmitted
}
