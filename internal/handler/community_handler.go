package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CommunityHandler serves the static support resources shown on the
// community screen.
type CommunityHandler struct{}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler() *CommunityHandler {
	return &CommunityHandler{}
}

// SupportResource describes one support offering
type SupportResource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

var supportResources = []SupportResource{
	{
		Title:       "Agendar Terapia Financeira",
		Description: "Sessões especializadas em comportamento financeiro",
		Action:      "Agendar",
	},
	{
		Title:       "Grupo de Apoio",
		Description: "Encontros semanais online com outros usuários",
		Action:      "Participar",
	},
	{
		Title:       "Conteúdo Educacional",
		Description: "Artigos e vídeos sobre educação financeira",
		Action:      "Acessar",
	},
}

// GetResources handles GET /api/v1/community/resources
func (h *CommunityHandler) GetResources(c echo.Context) error {
	return c.JSON(http.StatusOK, supportResources)
}
