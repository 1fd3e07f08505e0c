package models

// Reward is an admin-authored catalog item redeemable for points.
// Stock never goes negative; the redemption workflow re-checks it at
// approval time.
type Reward struct {
	ID          string `json:"id" db:"id"`
	Title       string `json:"title" db:"title"`
	Cost        int    `json:"cost" db:"cost"`
	Description string `json:"description" db:"description"`
	Stock       int    `json:"stock" db:"stock"`
	Available   bool   `json:"available" db:"available"`
	CreatedAt   int64  `json:"created_at" db:"created_at"`
}

// CreateRewardRequest is the request body for POST /api/rewards
type CreateRewardRequest struct {
	Title       string `json:"title"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
}

// UpdateRewardRequest enumerates the editable reward fields.
type UpdateRewardRequest struct {
	Title       *string `json:"title,omitempty"`
	Cost        *int    `json:"cost,omitempty"`
	Description *string `json:"description,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}
