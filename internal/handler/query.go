package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kube-rca/llm-service/internal/model"
	"github.com/kube-rca/llm-service/internal/service"
)

type QueryHandler struct {
	svc *service.InferenceService
}

func NewQueryHandler(svc *service.InferenceService) *QueryHandler {
	return &QueryHandler{svc: svc}
}

// QueryMessage godoc
// @Summary Classify an incident report
// @Description Returns the model answer, expected to be SŁUŻBY RATUNKOWE or SŁUŻBY MIEJSKIE.
// @Tags query
// @Accept json
// @Produce json
// @Param request body model.QueryRequest true "Incident description"
// @Success 200 {object} model.QueryResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /query_message [post]
func (h *QueryHandler) QueryMessage(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}

	answer, err := h.svc.Query(c.Request.Context(), prompt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.QueryResponse{Response: answer})
}

// Classify godoc
// @Summary Classify an incident report and normalize the label
// @Tags query
// @Accept json
// @Produce json
// @Param request body model.QueryRequest true "Incident description"
// @Success 200 {object} model.ClassifyResponse
// @Failure 422 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /classify [post]
func (h *QueryHandler) Classify(c *gin.Context) {
	prompt, ok := bindPrompt(c)
	if !ok {
		return
	}

	resp, err := h.svc.Classify(c.Request.Context(), prompt)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func bindPrompt(c *gin.Context) (string, bool) {
	var req model.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, err.Error())
		return "", false
	}
	if req.Prompt == nil {
		respondError(c, http.StatusUnprocessableEntity, "prompt: field required")
		return "", false
	}
	return *req.Prompt, true
}

// 모델 미로드와 추론 실패 모두 500, detail에는 원본 메시지
func respondServiceError(c *gin.Context, err error) {
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, err.Error())
}

func respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, model.ErrorResponse{Detail: detail})
}
