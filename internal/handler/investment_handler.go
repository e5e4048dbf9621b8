package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InvestmentHandler serves the static investment education catalog. The
// return figures are illustrative only; no market data is involved.
type InvestmentHandler struct{}

// NewInvestmentHandler creates a new InvestmentHandler
func NewInvestmentHandler() *InvestmentHandler {
	return &InvestmentHandler{}
}

// InvestmentOption describes one simulated investment class
type InvestmentOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Return      string `json:"return"`
	Risk        string `json:"risk"`
	MinValue    string `json:"minValue"`
}

// SimulationTimeframe is one row of the long-term projection table
type SimulationTimeframe struct {
	Years  int    `json:"years"`
	Amount string `json:"amount"`
}

// InvestmentCatalogResponse is the full investments screen payload
type InvestmentCatalogResponse struct {
	Options    []InvestmentOption `json:"options"`
	Simulation SimulationResponse `json:"simulation"`
}

// SimulationResponse is the static projection for a fixed monthly saving
type SimulationResponse struct {
	MonthlyAmount string                `json:"monthlyAmount"`
	Timeframes    []SimulationTimeframe `json:"timeframes"`
}

var investmentOptions = []InvestmentOption{
	{
		ID:          "tesouro",
		Name:        "Renda Fixa",
		Description: "CDB, LCI, LCA e Tesouro Direto. Investimentos seguros com rentabilidade previsível.",
		Return:      "100%",
		Risk:        "Baixo",
		MinValue:    "100",
	},
	{
		ID:          "titulos",
		Name:        "Títulos Públicos",
		Description: "Tesouro Selic, IPCA+ e Prefixado. O investimento mais seguro do Brasil.",
		Return:      "95%",
		Risk:        "Baixo",
		MinValue:    "30",
	},
	{
		ID:          "acoes",
		Name:        "Ações",
		Description: "Ações de empresas listadas na bolsa de valores. Maior potencial de retorno.",
		Return:      "120%",
		Risk:        "Alto",
		MinValue:    "100",
	},
	{
		ID:          "etfs",
		Name:        "Fundos de Índice (ETFs)",
		Description: "Diversificação automática seguindo índices do mercado como Ibovespa.",
		Return:      "110%",
		Risk:        "Médio",
		MinValue:    "50",
	},
	{
		ID:          "crypto",
		Name:        "Criptomoedas",
		Description: "Bitcoin, Ethereum e outras moedas digitais. Alto risco e alta volatilidade.",
		Return:      "180%",
		Risk:        "Muito Alto",
		MinValue:    "25",
	},
}

var investmentSimulation = SimulationResponse{
	MonthlyAmount: "125",
	Timeframes: []SimulationTimeframe{
		{Years: 5, Amount: "9875"},
		{Years: 10, Amount: "22450"},
		{Years: 15, Amount: "38200"},
		{Years: 20, Amount: "58950"},
	},
}

// GetCatalog handles GET /api/v1/investments
func (h *InvestmentHandler) GetCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, InvestmentCatalogResponse{
		Options:    investmentOptions,
		Simulation: investmentSimulation,
	})
}
