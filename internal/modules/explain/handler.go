package explain

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/NutriscanNL/explain-this-backend/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/explain", h.explain)

	// Deprecated aliases kept for older frontends; both feed the same
	// pipeline and differ only in mode forcing and response envelope.
	rg.POST("/explain_v2", h.explainV2)
	rg.POST("/explain_legal_v1", h.explainLegal)
}

type explainDTO struct {
	Text           string `json:"text"`
	Context        string `json:"context"`
	Mode           string `json:"mode"`
	LegalType      string `json:"legal_type"`
	Tone           string `json:"tone"`
	OutputLanguage string `json:"output_language"`
}

func (dto explainDTO) toRequest() Request {
	mode := ModeDefault
	if dto.Mode == string(ModeLegal) {
		mode = ModeLegal
	}
	return Request{
		Text:           dto.Text,
		Context:        dto.Context,
		Mode:           mode,
		LegalType:      dto.LegalType,
		Tone:           dto.Tone,
		OutputLanguage: dto.OutputLanguage,
	}
}

// POST /explain is the canonical endpoint. Parse failures degrade to the
// deterministic placeholder so the frontend always has something to render.
func (h *Handler) explain(c *gin.Context) {
	var dto explainDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req := dto.toRequest()

	contract, err := h.svc.Explain(c.Request.Context(), req)
	if err != nil {
		var parseErr *ParseFailure
		if errors.As(err, &parseErr) {
			response.Result(c, h.svc.Fallback(req))
			return
		}
		cl := Classify(err)
		response.Error(c, cl.HTTPStatus, cl)
		return
	}
	response.Result(c, contract)
}

// POST /explain_v2 is a deprecated alias: bare contract, hard 502 on parse
// failure, exactly as the variant it replaces behaved.
func (h *Handler) explainV2(c *gin.Context) {
	var dto explainDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	h.runBare(c, dto.toRequest())
}

// POST /explain_legal_v1 is a deprecated alias that forces legal mode.
func (h *Handler) explainLegal(c *gin.Context) {
	var dto explainDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	req := dto.toRequest()
	req.Mode = ModeLegal
	h.runBare(c, req)
}

func (h *Handler) runBare(c *gin.Context, req Request) {
	contract, err := h.svc.Explain(c.Request.Context(), req)
	if err != nil {
		cl := Classify(err)
		response.Error(c, cl.HTTPStatus, cl)
		return
	}
	response.OK(c, contract)
}
