package health

import (
	"github.com/gin-gonic/gin"

	"github.com/NutriscanNL/explain-this-backend/internal/config"
	"github.com/NutriscanNL/explain-this-backend/internal/pkg/response"
)

type Handler struct{ cfg *config.AppConfig }

func NewHandler(cfg *config.AppConfig) *Handler { return &Handler{cfg: cfg} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.health)
}

// health reports liveness plus whether a credential is configured. The key
// itself never leaves the process.
func (h *Handler) health(c *gin.Context) {
	response.OK(c, gin.H{
		"ok":         true,
		"keyPresent": h.cfg.AI.KeyPresent(),
		"model":      h.cfg.AI.Model,
	})
}
