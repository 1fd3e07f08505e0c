package models

import "time"

// Collection request lifecycle. Statuses move forward in normal use:
// created -> queued -> in_route -> collected, with cancelled as an exit.
const (
	RequestStatusCreated   = "created"
	RequestStatusQueued    = "queued"
	RequestStatusInRoute   = "in_route"
	RequestStatusCollected = "collected"
	RequestStatusCancelled = "cancelled"
)

// Item categories (wire values match the product's Portuguese labels).
const (
	CategoryElectronic = "Eletrônico"
	CategoryFurniture  = "Móvel"
	CategoryRecyclable = "Reciclável"
	CategoryOil        = "Óleo"
	CategoryOther      = "Outro"
)

// Action types for a pickup request.
const (
	ActionDonate  = "Doar"
	ActionSell    = "Vender"
	ActionDiscard = "Descartar"
)

// CollectionRequest is one resident's request to have an item picked up.
// CommunityID is stamped from the owner's region at creation time and is
// immutable afterwards; moving regions does not migrate past requests.
type CollectionRequest struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	UserName    string `json:"user_name" db:"user_name"`
	CommunityID string `json:"community_id" db:"community_id"`
	PhotoURL    string `json:"photo_url" db:"photo_url"`
	Category    string `json:"category" db:"category"`
	ActionType  string `json:"action_type" db:"action_type"`
	Address     string `json:"address" db:"address"`
	Description string `json:"description" db:"description"`
	ScheduledAt *int64 `json:"scheduled_at,omitempty" db:"scheduled_at"` // Unix timestamp
	Status      string `json:"status" db:"status"`
	CreatedAt   int64  `json:"created_at" db:"created_at"` // Unix timestamp
}

// CollectionRequestResponse is what we send to the client with ISO timestamps
type CollectionRequestResponse struct {
	ID             string  `json:"id"`
	UserID         string  `json:"user_id"`
	UserName       string  `json:"user_name"`
	CommunityID    string  `json:"community_id"`
	PhotoURL       string  `json:"photo_url"`
	Category       string  `json:"category"`
	ActionType     string  `json:"action_type"`
	Address        string  `json:"address"`
	Description    string  `json:"description"`
	ScheduledAtIso *string `json:"scheduledAtIso,omitempty"`
	Status         string  `json:"status"`
	CreatedAtIso   string  `json:"createdAtIso"`
}

func (r *CollectionRequest) ToResponse() CollectionRequestResponse {
	resp := CollectionRequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		UserName:     r.UserName,
		CommunityID:  r.CommunityID,
		PhotoURL:     r.PhotoURL,
		Category:     r.Category,
		ActionType:   r.ActionType,
		Address:      r.Address,
		Description:  r.Description,
		Status:       r.Status,
		CreatedAtIso: time.Unix(r.CreatedAt, 0).UTC().Format(time.RFC3339),
	}

	if r.ScheduledAt != nil {
		iso := time.Unix(*r.ScheduledAt, 0).UTC().Format(time.RFC3339)
		resp.ScheduledAtIso = &iso
	}

	return resp
}

// CreateRequestPayload is the request body for POST /api/requests
type CreateRequestPayload struct {
	Category     string  `json:"category"`
	ActionType   string  `json:"action_type"`
	Description  string  `json:"description"`
	PhotoURL     string  `json:"photo_url"`
	Address      string  `json:"address"`
	ScheduledAt  *string `json:"scheduled_at,omitempty"` // RFC3339
}

// RequestPatch enumerates the fields legally mutable after creation.
// Status changes go through the dedicated status operation, owner and
// community stamps are immutable.
type RequestPatch struct {
	Category    *string `json:"category,omitempty"`
	ActionType  *string `json:"action_type,omitempty"`
	Description *string `json:"description,omitempty"`
	PhotoURL    *string `json:"photo_url,omitempty"`
	Address     *string `json:"address,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"` // RFC3339
}

// ValidRequestStatus reports whether s is a known lifecycle status.
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestStatusCreated, RequestStatusQueued, RequestStatusInRoute,
		RequestStatusCollected, RequestStatusCancelled:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known item category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryElectronic, CategoryFurniture, CategoryRecyclable, CategoryOil, CategoryOther:
		return true
	}
	return false
}

// ValidActionType reports whether a is a known action type.
func ValidActionType(a string) bool {
	switch a {
	case ActionDonate, ActionSell, ActionDiscard:
		return true
	}
	return false
}
