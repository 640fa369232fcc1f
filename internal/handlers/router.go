package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-class/classroom-service/internal/services"
	"github.com/smart-class/classroom-service/internal/utils"
)

type HandlerManager struct {
	assignmentHandler *AssignmentHandler
	submissionHandler *SubmissionHandler
	studentHandler    *StudentHandler
	classHandler      *ClassHandler
}

type Services struct {
	Assignment services.AssignmentService
	Submission services.SubmissionService
	Student    services.StudentService
	Ledger     services.LedgerService
	Class      services.ClassService
	Report     services.ReportService
	Export     services.ExportService
}

func NewHandlerManager(svcs Services, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		assignmentHandler: NewAssignmentHandler(svcs.Assignment, svcs.Export, logger),
		submissionHandler: NewSubmissionHandler(svcs.Submission, logger),
		studentHandler:    NewStudentHandler(svcs.Student, svcs.Ledger, svcs.Report, svcs.Export, logger),
		classHandler:      NewClassHandler(svcs.Class, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Assignment routes
		assignments := v1.Group("/assignments")
		{
			assignments.POST("", hm.assignmentHandler.CreateAssignment)
			assignments.GET("", hm.assignmentHandler.ListAssignments)
			assignments.GET("/:id", hm.assignmentHandler.GetAssignment)
			assignments.DELETE("/:id", hm.assignmentHandler.DeleteAssignment)
			assignments.POST("/parse-answer-key", hm.assignmentHandler.ParseAnswerKey)

			// Submissions live under their assignment
			assignments.POST("/:id/submissions", hm.submissionHandler.Submit)
			assignments.GET("/:id/submissions/:student_id", hm.submissionHandler.GetResult)
			assignments.GET("/:id/status-board", hm.submissionHandler.StatusBoard)
			assignments.GET("/:id/export", hm.assignmentHandler.ExportStatusBoard)
		}

		// Cross-assignment submission queries
		submissions := v1.Group("/submissions")
		{
			submissions.GET("", hm.submissionHandler.ListSubmissions)
		}

		// Student routes
		students := v1.Group("/students")
		{
			students.POST("", hm.studentHandler.Register)
			students.GET("", hm.studentHandler.ListStudents)
			students.GET("/:id", hm.studentHandler.GetStudent)
			students.DELETE("/:id", hm.studentHandler.DeleteStudent)
			students.POST("/:id/approve", hm.studentHandler.Approve)
			students.PUT("/:id/class", hm.studentHandler.MoveClass)

			// Characters
			students.PUT("/:id/character", hm.studentHandler.SelectCharacter)
			students.GET("/:id/characters", hm.studentHandler.UnlockedCharacters)

			// Point ledger
			students.POST("/:id/points", hm.studentHandler.AdjustPoints)
			students.POST("/penalties/reset", hm.studentHandler.ResetPenalties)

			// Reports and export
			students.GET("/:id/report", hm.studentHandler.StudentReport)
			students.GET("/export", hm.studentHandler.ExportLedger)
		}

		// Class routes
		classes := v1.Group("/classes")
		{
			classes.POST("", hm.classHandler.AddClass)
			classes.GET("", hm.classHandler.ListClasses)
			classes.DELETE("/:name", hm.classHandler.RemoveClass)
		}
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "classroom-service",
	})
}
