package services

import (
	"fmt"
	"sort"
	"time"

	"recoleta-backend/internal/models"

	"github.com/google/uuid"
)

// RequestService owns the collection-request lifecycle. Permission and
// region checks live here, inside the operations, so no HTTP call site
// can skip them.
type RequestService struct {
	store RequestStore
}

func NewRequestService(store RequestStore) *RequestService {
	return &RequestService{store: store}
}

// ownerCanEdit reports whether the owning resident may still mutate the
// request. Once an admin has moved it into the route pipeline the record
// belongs to the collection process.
func ownerCanEdit(status string) bool {
	return status == models.RequestStatusCreated || status == models.RequestStatusQueued
}

// canMutate applies the shared update/delete rule: the owner while the
// request is still editable, or an organization whose region matches the
// request's community. The region is re-verified on every mutation, not
// only on listing.
func canMutate(req *models.CollectionRequest, user *models.User) bool {
	if user.Role == models.RoleOrganization {
		return req.CommunityID == user.Region
	}
	return req.UserID == user.ID && ownerCanEdit(req.Status)
}

// List returns the requests visible to user. Residents see their own,
// newest first. Organizations see their region's, with actionable
// statuses (created, queued) ahead of the rest and newest first within
// each band.
func (s *RequestService) List(user *models.User) ([]models.CollectionRequest, error) {
	if user.Role == models.RoleOrganization {
		requests, err := s.store.ListByRegion(user.Region)
		if err != nil {
			return nil, err
		}
		sort.SliceStable(requests, func(i, j int) bool {
			iPending := ownerCanEdit(requests[i].Status)
			jPending := ownerCanEdit(requests[j].Status)
			if iPending != jPending {
				return iPending
			}
			return requests[i].CreatedAt > requests[j].CreatedAt
		})
		return requests, nil
	}

	requests, err := s.store.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(requests, func(i, j int) bool {
		return requests[i].CreatedAt > requests[j].CreatedAt
	})
	return requests, nil
}

// Create stamps a new request with the owner's identity and region.
// The community id is frozen at creation time: changing the user's
// region later does not migrate old requests.
func (s *RequestService) Create(payload models.CreateRequestPayload, user *models.User) (*models.CollectionRequest, error) {
	if !models.ValidCategory(payload.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, payload.Category)
	}
	if !models.ValidActionType(payload.ActionType) {
		return nil, fmt.Errorf("%w: unknown action type %q", ErrValidation, payload.ActionType)
	}

	req := &models.CollectionRequest{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		UserName:    user.Name,
		CommunityID: user.Region,
		PhotoURL:    payload.PhotoURL,
		Category:    payload.Category,
		ActionType:  payload.ActionType,
		Address:     payload.Address,
		Description: payload.Description,
		Status:      models.RequestStatusCreated,
		CreatedAt:   time.Now().Unix(),
	}

	if payload.ScheduledAt != nil && *payload.ScheduledAt != "" {
		t, err := time.Parse(time.RFC3339, *payload.ScheduledAt)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid scheduled_at: %v", ErrValidation, err)
		}
		unix := t.Unix()
		req.ScheduledAt = &unix
	}

	if err := s.store.Insert(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Update merges a typed patch over the stored record.
func (s *RequestService) Update(id string, patch models.RequestPatch, user *models.User) (*models.CollectionRequest, error) {
	req, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, id)
	}
	if !canMutate(req, user) {
		return nil, ErrPermissionDenied
	}

	if patch.Category != nil {
		if !models.ValidCategory(*patch.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidation, *patch.Category)
		}
		req.Category = *patch.Category
	}
	if patch.ActionType != nil {
		if !models.ValidActionType(*patch.ActionType) {
			return nil, fmt.Errorf("%w: unknown action type %q", ErrValidation, *patch.ActionType)
		}
		req.ActionType = *patch.ActionType
	}
	if patch.Description != nil {
		req.Description = *patch.Description
	}
	if patch.PhotoURL != nil {
		req.PhotoURL = *patch.PhotoURL
	}
	if patch.Address != nil {
		req.Address = *patch.Address
	}
	if patch.ScheduledAt != nil {
		if *patch.ScheduledAt == "" {
			req.ScheduledAt = nil
		} else {
			t, err := time.Parse(time.RFC3339, *patch.ScheduledAt)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid scheduled_at: %v", ErrValidation, err)
			}
			unix := t.Unix()
			req.ScheduledAt = &unix
		}
	}

	if err := s.store.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Delete physically removes the request.
func (s *RequestService) Delete(id string, user *models.User) error {
	req, err := s.store.Get(id)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("%w: request %s", ErrNotFound, id)
	}
	if !canMutate(req, user) {
		return ErrPermissionDenied
	}
	return s.store.Delete(id)
}

// SetStatus moves a request through its lifecycle. Only organizations
// may call it, and only for requests in their own region; the role gate
// is part of the operation rather than trusted to the caller.
func (s *RequestService) SetStatus(id, status string, user *models.User) (*models.CollectionRequest, error) {
	if user.Role != models.RoleOrganization {
		return nil, ErrPermissionDenied
	}
	if !models.ValidRequestStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	req, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, fmt.Errorf("%w: request %s", ErrNotFound, id)
	}
	if req.CommunityID != user.Region {
		return nil, ErrPermissionDenied
	}

	req.Status = status
	if err := s.store.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}
