package models

// Submission statuses. pending is the only non-terminal state; a rejected
// submission may be replaced by a fresh one for the same challenge.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// ChallengeSubmission is a resident's proof-of-completion for one challenge.
type ChallengeSubmission struct {
	ID             string `json:"id" db:"id"`
	ChallengeID    string `json:"challenge_id" db:"challenge_id"`
	ChallengeTitle string `json:"challenge_title" db:"challenge_title"`
	UserID         string `json:"user_id" db:"user_id"`
	UserName       string `json:"user_name" db:"user_name"`
	ProofText      string `json:"proof_text" db:"proof_text"`
	Status         string `json:"status" db:"status"`
	AdminFeedback  string `json:"admin_feedback" db:"admin_feedback"`
	CreatedAt      int64  `json:"created_at" db:"created_at"`
}

// SubmitProofRequest is the request body for submitting challenge proof.
type SubmitProofRequest struct {
	ProofText string `json:"proof_text"`
}

// ReviewSubmissionRequest is the admin review body.
type ReviewSubmissionRequest struct {
	Status   string `json:"status"` // approved or rejected
	Feedback string `json:"feedback"`
}
