package auth

// Principal is the authenticated caller, reconstructed per request from
// verified token claims. It is never persisted as a session.
type Principal struct {
	SubjectID int64  `json:"sub"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}
