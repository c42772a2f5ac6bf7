package models

// Request types

type SendOTPRequest struct {
	Identifier string `json:"identifier"`
}

type VerifyOTPRequest struct {
	Identifier string `json:"identifier"`
	OTP        string `json:"otp"`
}

type CastBallotRequest struct {
	CandidateIDs []string `json:"candidateIds"`
}

// Response types

type SendOTPResponse struct {
	Success       bool   `json:"success"`
	MaskedContact string `json:"maskedContact"`
	// Set when the code was persisted but delivery failed; the code is
	// still valid and the voter can re-request after the cooldown.
	Warning string `json:"warning,omitempty"`
}

type VerifyOTPResponse struct {
	Success bool `json:"success"`
}

type CastBallotResponse struct {
	Success bool   `json:"success"`
	Receipt string `json:"receipt"`
}

type EndSessionResponse struct {
	Success bool `json:"success"`
}

// Domain types

type Candidate struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Position string `db:"position" json:"position,omitempty"`
}

// CandidateTally is what the results aggregator exposes: tallies only,
// never voter identity.
type CandidateTally struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Votes int64  `db:"votes" json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
