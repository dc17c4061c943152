package lesson

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/edumate/server/internal/utils/errors"
)

// Handler handles HTTP requests for lesson generation.
type Handler struct {
	service *Service
}

// NewHandler creates a new lesson handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers lesson routes.
func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/generate", h.Generate)
	r.POST("/render", h.Render)
}

// Generate handles prompt-to-video generation.
//
//	@Summary		Generate lesson
//	@Description	Ask the model for Manim code, narration and explanation, then render the code to a video
//	@Tags			Lesson
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GenerateRequest	true	"Teaching prompt"
//	@Success		200		{object}	GenerateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrPromptRequired)
		return
	}

	result, err := h.service.Generate(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.ToResponse())
}

// Render handles rendering of caller-supplied code.
//
//	@Summary		Render code
//	@Description	Render Manim code without calling the model, e.g. to retry a failed render
//	@Tags			Lesson
//	@Accept			json
//	@Produce		json
//	@Param			request	body		RenderRequest	true	"Manim code"
//	@Success		200		{object}	RenderResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/render [post]
func (h *Handler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.handleError(c, ErrCodeRequired)
		return
	}

	result, err := h.service.Render(c.Request.Context(), req.Code)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, RenderResponse{
		Code:     result.Code,
		VideoURL: result.VideoURL,
	})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	appErr := ToAppError(err)
	_ = c.Error(err)
	c.JSON(apperrors.GetStatusCode(appErr), appErr.ToResponse())
}
