// Package contract exposes the response-contract schemas so frontends and
// integration tests can fetch the exact shape the explain endpoints produce.
package contract

import (
	"github.com/gin-gonic/gin"

	"github.com/NutriscanNL/explain-this-backend/internal/modules/explain"
	"github.com/NutriscanNL/explain-this-backend/internal/pkg/response"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/contract")
	g.GET("/standard_v2", h.standard)
	g.GET("/legal_v1", h.legal)
}

func (h *Handler) standard(c *gin.Context) {
	response.OK(c, explain.StandardSchemaMap())
}

func (h *Handler) legal(c *gin.Context) {
	response.OK(c, explain.LegalSchemaMap())
}
