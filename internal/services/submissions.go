package services

import (
	"fmt"
	"strings"
	"time"

	"recoleta-backend/internal/models"

	"github.com/google/uuid"
)

// SubmissionService runs the challenge-proof workflow:
// submit (pending) -> review (approved | rejected). Approval is the only
// path that awards challenge points, and it awards them exactly once.
type SubmissionService struct {
	store GamificationStore
}

func NewSubmissionService(store GamificationStore) *SubmissionService {
	return &SubmissionService{store: store}
}

// Submit files proof for a challenge. A resident may hold at most one
// non-rejected submission per challenge; a rejected one is replaced by
// the new attempt.
func (s *SubmissionService) Submit(challengeID, proofText string, user *models.User) (*models.ChallengeSubmission, error) {
	if strings.TrimSpace(proofText) == "" {
		return nil, fmt.Errorf("%w: proof text is required", ErrValidation)
	}

	var created *models.ChallengeSubmission
	err := s.store.WithTx(func(tx GamificationStore) error {
		challenge, err := tx.GetChallenge(challengeID)
		if err != nil {
			return err
		}
		if challenge == nil {
			return fmt.Errorf("%w: challenge %s", ErrNotFound, challengeID)
		}

		existing, err := tx.FindSubmission(user.ID, challengeID)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status != models.SubmissionRejected {
				return ErrDuplicateSubmission
			}
			// Resubmission after rejection replaces the old record.
			if err := tx.DeleteSubmission(existing.ID); err != nil {
				return err
			}
		}

		sub := &models.ChallengeSubmission{
			ID:             uuid.New().String(),
			ChallengeID:    challenge.ID,
			ChallengeTitle: challenge.Title,
			UserID:         user.ID,
			UserName:       user.Name,
			ProofText:      proofText,
			Status:         models.SubmissionPending,
			CreatedAt:      time.Now().Unix(),
		}
		if err := tx.InsertSubmission(sub); err != nil {
			return err
		}
		created = sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Review settles a pending submission. Rejections require feedback;
// approvals credit the challenge's reward to the submitter in the same
// transaction as the status write. Terminal submissions cannot be
// reviewed again, so a double approval can never double-award.
func (s *SubmissionService) Review(submissionID, outcome, feedback string) (xpAwarded int, err error) {
	if outcome != models.SubmissionApproved && outcome != models.SubmissionRejected {
		return 0, fmt.Errorf("%w: unknown review outcome %q", ErrValidation, outcome)
	}
	if outcome == models.SubmissionRejected && strings.TrimSpace(feedback) == "" {
		return 0, fmt.Errorf("%w: feedback is required when rejecting", ErrValidation)
	}

	err = s.store.WithTx(func(tx GamificationStore) error {
		sub, err := tx.GetSubmission(submissionID)
		if err != nil {
			return err
		}
		if sub == nil {
			return fmt.Errorf("%w: submission %s", ErrNotFound, submissionID)
		}
		if sub.Status != models.SubmissionPending {
			return ErrAlreadyReviewed
		}

		sub.Status = outcome
		sub.AdminFeedback = feedback
		if err := tx.UpdateSubmission(sub); err != nil {
			return err
		}

		if outcome == models.SubmissionApproved {
			challenge, err := tx.GetChallenge(sub.ChallengeID)
			if err != nil {
				return err
			}
			// A challenge deleted after submission awards nothing.
			if challenge != nil && challenge.XPReward > 0 {
				if _, err := addPoints(tx, sub.UserID, challenge.XPReward); err != nil {
					return err
				}
				xpAwarded = challenge.XPReward
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return xpAwarded, nil
}
