package models

// Redemption statuses. delivered is the approval outcome and the only
// transition with financial side effects.
const (
	RedemptionPending   = "pending"
	RedemptionDelivered = "delivered"
	RedemptionRejected  = "rejected"
)

// RedemptionRequest is a resident's request to redeem a reward. Cost is
// snapshotted from the reward at request time; the live balance and stock
// are re-validated when an admin approves.
type RedemptionRequest struct {
	ID            string `json:"id" db:"id"`
	UserID        string `json:"user_id" db:"user_id"`
	UserName      string `json:"user_name" db:"user_name"`
	RewardID      string `json:"reward_id" db:"reward_id"`
	RewardTitle   string `json:"reward_title" db:"reward_title"`
	Cost          int    `json:"cost" db:"cost"`
	Status        string `json:"status" db:"status"`
	AdminFeedback string `json:"admin_feedback" db:"admin_feedback"`
	CreatedAt     int64  `json:"created_at" db:"created_at"`
}

// RedeemRewardRequest is the request body for filing a redemption.
// CurrentPoints is what the client believes the balance is; the server
// never trusts it and re-reads the ledger.
type RedeemRewardRequest struct {
	CurrentPoints int `json:"current_points"`
}

// ProcessRedemptionRequest is the admin processing body.
type ProcessRedemptionRequest struct {
	Status   string `json:"status"` // delivered or rejected
	Feedback string `json:"feedback"`
}
