package services

import (
	"fmt"
	"time"

	"recoleta-backend/internal/models"

	"github.com/google/uuid"
)

// RedemptionService runs the reward-redemption workflow:
// request (pending) -> process (delivered | rejected). Filing a request
// has no financial side effects; points and stock move only on delivery,
// and only after both are re-validated inside one transaction.
type RedemptionService struct {
	store GamificationStore
}

func NewRedemptionService(store GamificationStore) *RedemptionService {
	return &RedemptionService{store: store}
}

// Request files a pending redemption. claimedBalance comes from the
// client and is ignored for the check; the ledger is authoritative.
func (s *RedemptionService) Request(rewardID string, claimedBalance int, user *models.User) (*models.RedemptionRequest, error) {
	_ = claimedBalance

	var created *models.RedemptionRequest
	err := s.store.WithTx(func(tx GamificationStore) error {
		reward, err := tx.GetReward(rewardID)
		if err != nil {
			return err
		}
		if reward == nil {
			return fmt.Errorf("%w: reward %s", ErrNotFound, rewardID)
		}
		if reward.Stock <= 0 {
			return fmt.Errorf("%w: reward %q is out of stock", ErrInsufficientStock, reward.Title)
		}

		balance, err := readBalance(tx, user.ID)
		if err != nil {
			return err
		}
		if balance < reward.Cost {
			return fmt.Errorf("%w: need %d points, have %d", ErrInsufficientPoints, reward.Cost, balance)
		}

		red := &models.RedemptionRequest{
			ID:          uuid.New().String(),
			UserID:      user.ID,
			UserName:    user.Name,
			RewardID:    reward.ID,
			RewardTitle: reward.Title,
			Cost:        reward.Cost,
			Status:      models.RedemptionPending,
			CreatedAt:   time.Now().Unix(),
		}
		if err := tx.InsertRedemption(red); err != nil {
			return err
		}
		created = red
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Process settles a pending redemption. Delivery re-checks stock and the
// live balance because either may have drifted since the request was
// filed; a failed check fails the approval instead of silently clamping.
// The points deduction and stock decrement commit together or not at all.
func (s *RedemptionService) Process(redemptionID, outcome, feedback string) error {
	if outcome != models.RedemptionDelivered && outcome != models.RedemptionRejected {
		return fmt.Errorf("%w: unknown redemption outcome %q", ErrValidation, outcome)
	}

	return s.store.WithTx(func(tx GamificationStore) error {
		red, err := tx.GetRedemption(redemptionID)
		if err != nil {
			return err
		}
		if red == nil {
			return fmt.Errorf("%w: redemption %s", ErrNotFound, redemptionID)
		}
		if red.Status != models.RedemptionPending {
			return ErrAlreadyReviewed
		}

		if outcome == models.RedemptionDelivered {
			reward, err := tx.GetReward(red.RewardID)
			if err != nil {
				return err
			}
			if reward == nil || reward.Stock <= 0 {
				return fmt.Errorf("%w: cannot approve, stock exhausted", ErrInsufficientStock)
			}

			balance, err := readBalance(tx, red.UserID)
			if err != nil {
				return err
			}
			if balance < red.Cost {
				return fmt.Errorf("%w: user no longer has %d points", ErrInsufficientPoints, red.Cost)
			}

			if _, err := subtractPoints(tx, red.UserID, red.Cost); err != nil {
				return err
			}
			reward.Stock--
			if err := tx.UpdateReward(reward); err != nil {
				return err
			}
		}

		red.Status = outcome
		red.AdminFeedback = feedback
		return tx.UpdateRedemption(red)
	})
}
