package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/models"
	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
)

type AssessmentHandler struct {
	BaseHandler
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService, logger utils.Logger) *AssessmentHandler {
	return &AssessmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assessmentService: assessmentService,
	}
}

// ListAssessments returns the catalog summaries
// @Summary List assessments
// @Tags assessments
// @Produce json
// @Success 200 {array} models.Summary
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *gin.Context) {
	summaries, err := h.assessmentService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assessments": summaries,
		"total":       len(summaries),
	})
}

// GetAssessment retrieves a full definition by key
// @Summary Get assessment
// @Tags assessments
// @Produce json
// @Param key path string true "Assessment key"
// @Success 200 {object} models.Assessment
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{key} [get]
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	assessment, err := h.assessmentService.Get(c.Request.Context(), key)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// PutAssessment creates or replaces the definition stored under key
// @Summary Save assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Param key path string true "Assessment key"
// @Param assessment body models.Assessment true "Assessment definition"
// @Success 200 {object} models.Assessment
// @Failure 400 {object} ErrorResponse
// @Router /assessments/{key} [put]
func (h *AssessmentHandler) PutAssessment(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	var assessment models.Assessment
	if !bindJSON(c, &assessment) {
		return
	}
	if assessment.Key == "" {
		assessment.Key = key
	}
	if assessment.Key != key {
		h.RespondWithError(c, http.StatusBadRequest, "Assessment key does not match path", nil, gin.H{
			"path_key": key,
			"body_key": assessment.Key,
		})
		return
	}

	h.LogRequest(c, "Saving assessment", "assessment_key", key, "kind", assessment.Kind)

	if err := h.assessmentService.Put(c.Request.Context(), &assessment); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// DeleteAssessment removes a definition from the catalog
// @Summary Delete assessment
// @Tags assessments
// @Param key path string true "Assessment key"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /assessments/{key} [delete]
func (h *AssessmentHandler) DeleteAssessment(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	h.LogRequest(c, "Deleting assessment", "assessment_key", key)

	if err := h.assessmentService.Delete(c.Request.Context(), key); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
