package domain

import "github.com/shopspring/decimal"

// Dashboard metric constants. The multipliers are illustrative business
// constants, not market data; behavioral parity requires these exact values.
var (
	// SavingsMultiplier doubles the total impulse amount into "money saved"
	SavingsMultiplier = decimal.NewFromInt(2)
	// ConservativeReturnRate is the simulated fixed-income return on the total
	ConservativeReturnRate = decimal.RequireFromString("1.2")
	// EquityReturnRate is the simulated equity/ETF return on the total
	EquityReturnRate = decimal.RequireFromString("1.5")
)

const (
	// DefaultDaysWithoutBetting is the fixed streak shown on the dashboard
	DefaultDaysWithoutBetting = 30
	// DefaultIntelligenceScore is the fixed financial-intelligence score
	DefaultIntelligenceScore = 75
)

// InvestmentPotential shows what the user's impulse total could have become
type InvestmentPotential struct {
	Spent              decimal.Decimal `json:"spent"`
	ConservativeReturn decimal.Decimal `json:"conservativeReturn"`
	EquityReturn       decimal.Decimal `json:"equityReturn"`
}

// DashboardMetrics contains the derived dashboard figures. Nothing here is
// persisted; every fetch recomputes from the user's impulses.
type DashboardMetrics struct {
	UserName            string              `json:"userName"`
	MoneySaved          decimal.Decimal     `json:"moneySaved"`
	DailySavings        decimal.Decimal     `json:"dailySavings"`
	DaysWithoutBetting  int                 `json:"daysWithoutBetting"`
	IntelligenceScore   int                 `json:"intelligenceScore"`
	InvestmentPotential InvestmentPotential `json:"investmentPotential"`
}

// ComputeDashboardMetrics derives the dashboard figures from the sum of a
// user's impulse amounts.
func ComputeDashboardMetrics(userName string, totalImpulses decimal.Decimal) *DashboardMetrics {
	moneySaved := totalImpulses.Mul(SavingsMultiplier)
	return &DashboardMetrics{
		UserName:           userName,
		MoneySaved:         moneySaved,
		DailySavings:       moneySaved.Div(decimal.NewFromInt(DefaultDaysWithoutBetting)),
		DaysWithoutBetting: DefaultDaysWithoutBetting,
		IntelligenceScore:  DefaultIntelligenceScore,
		InvestmentPotential: InvestmentPotential{
			Spent:              totalImpulses,
			ConservativeReturn: totalImpulses.Mul(ConservativeReturnRate),
			EquityReturn:       totalImpulses.Mul(EquityReturnRate),
		},
	}
}
