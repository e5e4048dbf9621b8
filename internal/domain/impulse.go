package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BetType is the category of the bet a user almost placed
type BetType string

const (
	BetTypeSports       BetType = "Esportes"
	BetTypeOnlineCasino BetType = "Cassino Online"
	BetTypeLottery      BetType = "Loteria"
	BetTypeSportsBook   BetType = "Apostas Esportivas"
	BetTypePoker        BetType = "Poker"
	BetTypeOther        BetType = "Outros"
)

// BetTypes is the fixed label set accepted at registration
var BetTypes = []BetType{
	BetTypeSports,
	BetTypeOnlineCasino,
	BetTypeLottery,
	BetTypeSportsBook,
	BetTypePoker,
	BetTypeOther,
}

// IsValidBetType reports whether t is one of the fixed labels
func IsValidBetType(t BetType) bool {
	for _, b := range BetTypes {
		if b == t {
			return true
		}
	}
	return false
}

// Impulse is a logged instance of money the user considered gambling,
// converted into a savings-potential record. Impulses are registered once
// and never edited or deleted through the API; the account deletion cascade
// is the only path that removes them.
type Impulse struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	BetType     BetType         `json:"betType"`
	IsRecurring bool            `json:"isRecurring"`
	Feeling     string          `json:"feeling"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ImpulseRepository defines the interface for impulse persistence operations
type ImpulseRepository interface {
	GetAllByUser(ctx context.Context, userID uuid.UUID) ([]*Impulse, error)
	Create(ctx context.Context, impulse *Impulse) (*Impulse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}
