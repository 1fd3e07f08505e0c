package models

// Challenge types.
const (
	ChallengeDaily   = "daily"
	ChallengeWeekly  = "weekly"
	ChallengeSpecial = "special"
)

// Challenge is an admin-authored task with a fixed point reward.
type Challenge struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description" db:"description"`
	XPReward    int    `json:"xp_reward" db:"xp_reward"`
	Type        string `json:"type" db:"type"` // daily, weekly or special
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// CreateChallengeRequest is the request body for POST /api/challenges
type CreateChallengeRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
	Type        string `json:"type"`
}

// UpdateChallengeRequest enumerates the editable challenge fields.
type UpdateChallengeRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	XPReward    *int    `json:"xp_reward,omitempty"`
}
