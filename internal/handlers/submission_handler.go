package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"github.com/smart-class/classroom-service/internal/services"
	"github.com/smart-class/classroom-service/internal/utils"
)

type SubmissionHandler struct {
	BaseHandler
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService, logger utils.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:       NewBaseHandler(logger),
		submissionService: submissionService,
	}
}

type submitBody struct {
	StudentID string           `json:"student_id" binding:"required"`
	Answers   models.AnswerSet `json:"answers"`
}

// Submit accepts a student's answers for an assignment and returns the graded
// result in the same response.
func (h *SubmissionHandler) Submit(c *gin.Context) {
	assignmentID := parseUintParam(c, "id")
	if assignmentID == 0 {
		return
	}

	var body submitBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), &services.SubmitRequest{
		AssignmentID: assignmentID,
		StudentID:    body.StudentID,
		Answers:      body.Answers,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// GetResult returns the graded breakdown of one student's submission.
func (h *SubmissionHandler) GetResult(c *gin.Context) {
	assignmentID := parseUintParam(c, "id")
	if assignmentID == 0 {
		return
	}
	studentID := parseStringParam(c, "student_id")
	if studentID == "" {
		return
	}

	result, err := h.submissionService.GetResult(c.Request.Context(), assignmentID, studentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// StatusBoard returns the teacher's submitted/missing view of an assignment.
func (h *SubmissionHandler) StatusBoard(c *gin.Context) {
	assignmentID := parseUintParam(c, "id")
	if assignmentID == 0 {
		return
	}

	board, err := h.submissionService.StatusBoard(c.Request.Context(), assignmentID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// ListSubmissions lists submissions with optional filters.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 20)

	filters := repositories.SubmissionFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}
	if studentID := c.Query("student_id"); studentID != "" {
		filters.StudentID = &studentID
	}
	if assignmentID := parseIntQuery(c, "assignment_id", 0); assignmentID > 0 {
		id := uint(assignmentID)
		filters.AssignmentID = &id
	}
	if isLate := c.Query("is_late"); isLate == "true" || isLate == "false" {
		late := isLate == "true"
		filters.IsLate = &late
	}

	submissions, total, err := h.submissionService.List(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: submissions, Total: total})
}
