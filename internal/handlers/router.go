package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/assessment-engine/internal/services"
	"github.com/SAP-F-2025/assessment-engine/internal/utils"
)

type HandlerManager struct {
	assessmentHandler *AssessmentHandler
	sessionHandler    *SessionHandler
}

func NewHandlerManager(
	assessmentService services.AssessmentService,
	runner services.RunnerService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		assessmentHandler: NewAssessmentHandler(assessmentService, logger),
		sessionHandler:    NewSessionHandler(runner, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		assessments := v1.Group("/assessments")
		{
			assessments.GET("", hm.assessmentHandler.ListAssessments)
			assessments.GET("/:key", hm.assessmentHandler.GetAssessment)
			assessments.PUT("/:key", hm.assessmentHandler.PutAssessment)
			assessments.DELETE("/:key", hm.assessmentHandler.DeleteAssessment)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", hm.sessionHandler.CreateSession)
			sessions.GET("/:id", hm.sessionHandler.GetSession)
			sessions.DELETE("/:id", hm.sessionHandler.CloseSession)
			sessions.POST("/:id/begin", hm.sessionHandler.BeginSession)

			// Answers
			sessions.POST("/:id/answers", hm.sessionHandler.SubmitAnswer)
			sessions.POST("/:id/placements", hm.sessionHandler.PlaceItem)
			sessions.DELETE("/:id/placements/:item_id", hm.sessionHandler.UnplaceItem)

			// Navigation
			sessions.POST("/:id/next", hm.sessionHandler.Next)
			sessions.POST("/:id/previous", hm.sessionHandler.Previous)
			sessions.POST("/:id/complete", hm.sessionHandler.Complete)
			sessions.POST("/:id/restart", hm.sessionHandler.Restart)

			// Results
			sessions.GET("/:id/result", hm.sessionHandler.GetResult)
			sessions.GET("/:id/result/export", hm.sessionHandler.ExportResult)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "assessment-engine",
	})
}
