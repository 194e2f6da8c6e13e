package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type SessionHandler struct {
	BaseHandler
	runner services.RunnerService
}

func NewSessionHandler(runner services.RunnerService, logger utils.Logger) *SessionHandler {
	return &SessionHandler{
		BaseHandler: NewBaseHandler(logger),
		runner:      runner,
	}
}

// CreateSession opens a session against a catalog assessment
// @Summary Create session
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body models.CreateSessionRequest true "Assessment to run"
// @Success 201 {object} models.State
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	h.LogRequest(c, "Creating session", "assessment_key", req.AssessmentKey)

	state, err := h.runner.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, state)
}

// GetSession returns the current session snapshot
// @Summary Get session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.State
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	h.respondState(c, h.runner.Get)
}

// BeginSession starts a proctored exam
// @Summary Begin session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} models.State
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/begin [post]
func (h *SessionHandler) BeginSession(c *gin.Context) {
	h.respondState(c, h.runner.Begin)
}

// SubmitAnswer records one answer mutation
// @Summary Submit answer
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.AnswerRequest true "Answer"
// @Success 200 {object} models.State
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req models.AnswerRequest
	if !bindJSON(c, &req) {
		return
	}

	state, err := h.runner.SubmitAnswer(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// PlaceItem drops a drag-and-drop item into a zone
// @Summary Place item
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body models.PlacementRequest true "Placement"
// @Success 200 {object} models.State
// @Failure 400 {object} ErrorResponse
// @Router /sessions/{id}/placements [post]
func (h *SessionHandler) PlaceItem(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	var req models.PlacementRequest
	if !bindJSON(c, &req) {
		return
	}

	state, err := h.runner.Place(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// UnplaceItem returns an item to the pool
// @Summary Unplace item
// @Tags sessions
// @Param id path string true "Session ID"
// @Param item_id path string true "Item ID"
// @Success 200 {object} models.State
// @Router /sessions/{id}/placements/{item_id} [delete]
func (h *SessionHandler) UnplaceItem(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}
	itemID := ParseStringIDParam(c, "item_id")
	if itemID == "" {
		return
	}

	state, err := h.runner.Unplace(c.Request.Context(), id, itemID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Next advances to the following question, completing on the last one
// @Summary Next question
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} models.State
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/next [post]
func (h *SessionHandler) Next(c *gin.Context) {
	h.respondState(c, h.runner.Next)
}

// Previous steps back one question
// @Summary Previous question
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} models.State
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/previous [post]
func (h *SessionHandler) Previous(c *gin.Context) {
	h.respondState(c, h.runner.Previous)
}

// Complete submits the session from its last question
// @Summary Complete session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} models.State
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /sessions/{id}/complete [post]
func (h *SessionHandler) Complete(c *gin.Context) {
	h.respondState(c, h.runner.Complete)
}

// Restart discards answers and results
// @Summary Restart session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 200 {object} models.State
// @Router /sessions/{id}/restart [post]
func (h *SessionHandler) Restart(c *gin.Context) {
	h.respondState(c, h.runner.Restart)
}

// GetResult returns the completion snapshot
// @Summary Get result
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.Result
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/result [get]
func (h *SessionHandler) GetResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	result, err := h.runner.Result(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportResult downloads the result as an XLSX workbook
// @Summary Export result
// @Tags sessions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Session ID"
// @Success 200 {file} file
// @Failure 409 {object} ErrorResponse
// @Router /sessions/{id}/result/export [get]
func (h *SessionHandler) ExportResult(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	data, err := h.runner.ExportResult(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="result-%s.xlsx"`, id))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// CloseSession stops the session timer and forgets the session
// @Summary Close session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /sessions/{id} [delete]
func (h *SessionHandler) CloseSession(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	h.LogRequest(c, "Closing session", "session_id", id)

	if err := h.runner.Close(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondState runs a session operation keyed by the :id parameter.
func (h *SessionHandler) respondState(c *gin.Context, op func(ctx context.Context, sessionID string) (*models.State, error)) {
	id := ParseStringIDParam(c, "id")
	if id == "" {
		return
	}

	state, err := op(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}
