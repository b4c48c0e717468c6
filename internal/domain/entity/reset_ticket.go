package entity

// ResetTicket is a short-lived login-reset challenge. At most one ticket
// is active per user; MaxResetAttempts verification attempts are allowed
// before the ticket is invalidated.
type ResetTicket struct {
	Code     string
	Attempts int
}

const MaxResetAttempts = 3
