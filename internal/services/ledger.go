package services

// DefaultPointsSeed is the balance every user starts from; it is written
// on first read so repeated reads observe the same value.
const DefaultPointsSeed = 10450

// Ledger is the per-user points balance. The only two call paths that
// mutate it are challenge-approval awards and redemption-approval
// deductions; there is deliberately no exported "set balance" operation.
type Ledger struct {
	store GamificationStore
}

func NewLedger(store GamificationStore) *Ledger {
	return &Ledger{store: store}
}

// Balance returns the user's balance, lazily seeding it on first read.
func (l *Ledger) Balance(userID string) (int, error) {
	return readBalance(l.store, userID)
}

func readBalance(store GamificationStore, userID string) (int, error) {
	points, ok, err := store.Balance(userID)
	if err != nil {
		return 0, err
	}
	if !ok {
		if err := store.SetBalance(userID, DefaultPointsSeed); err != nil {
			return 0, err
		}
		return DefaultPointsSeed, nil
	}
	return points, nil
}

// addPoints credits amount to the user's balance and returns the new value.
func addPoints(store GamificationStore, userID string, amount int) (int, error) {
	points, err := readBalance(store, userID)
	if err != nil {
		return 0, err
	}
	points += amount
	if err := store.SetBalance(userID, points); err != nil {
		return 0, err
	}
	return points, nil
}

// subtractPoints debits amount, flooring the balance at zero.
func subtractPoints(store GamificationStore, userID string, amount int) (int, error) {
	points, err := readBalance(store, userID)
	if err != nil {
		return 0, err
	}
	points -= amount
	if points < 0 {
		points = 0
	}
	if err := store.SetBalance(userID, points); err != nil {
		return 0, err
	}
	return points, nil
}
