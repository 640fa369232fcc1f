package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/smart-class/classroom-service/internal/repositories"
	"github.com/smart-class/classroom-service/internal/services"
	"github.com/smart-class/classroom-service/internal/utils"
)

type AssignmentHandler struct {
	BaseHandler
	assignmentService services.AssignmentService
	exportService     services.ExportService
}

func NewAssignmentHandler(assignmentService services.AssignmentService, exportService services.ExportService, logger utils.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		BaseHandler:       NewBaseHandler(logger),
		assignmentService: assignmentService,
		exportService:     exportService,
	}
}

// CreateAssignment creates a new assignment with its answer key.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// GetAssignment retrieves an assignment by ID.
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id := parseUintParam(c, "id")
	if id == 0 {
		return
	}

	assignment, err := h.assignmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// ListAssignments lists assignments with optional filters.
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	filters := h.parseFilters(c)

	assignments, total, err := h.assignmentService.List(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: assignments, Total: total})
}

// DeleteAssignment deletes an assignment and all of its submissions.
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	id := parseUintParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Assignment deleted"})
}

type parseAnswerKeyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ParseAnswerKey previews the questions parsed from a pasted answer-key text.
func (h *AssignmentHandler) ParseAnswerKey(c *gin.Context) {
	var req parseAnswerKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	questions := h.assignmentService.ParseAnswerKey(req.Text)
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Parsed answer key",
		Data:    questions,
	})
}

// ExportStatusBoard streams the submission status board as a file download.
func (h *AssignmentHandler) ExportStatusBoard(c *gin.Context) {
	id := parseUintParam(c, "id")
	if id == 0 {
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "xlsx":
		data, err = h.exportService.ExportStatusBoardToExcel(c.Request.Context(), id)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "submissions.xlsx"
	case "csv":
		data, err = h.exportService.ExportStatusBoardToCSV(c.Request.Context(), id)
		contentType = "text/csv"
		filename = "submissions.csv"
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Unsupported format: " + format})
		return
	}
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func (h *AssignmentHandler) parseFilters(c *gin.Context) repositories.AssignmentFilters {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 20)

	filters := repositories.AssignmentFilters{
		Limit:     size,
		Offset:    (page - 1) * size,
		SortBy:    c.DefaultQuery("sort_by", "due_date"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}

	if targetClass := c.Query("target_class"); targetClass != "" {
		filters.TargetClass = &targetClass
	}
	if month := parseIntQuery(c, "month", 0); month >= 1 && month <= 12 {
		filters.Month = &month
	}
	if dueFrom := c.Query("due_from"); dueFrom != "" {
		if t, err := time.Parse(time.RFC3339, dueFrom); err == nil {
			filters.DueFrom = &t
		}
	}
	if dueTo := c.Query("due_to"); dueTo != "" {
		if t, err := time.Parse(time.RFC3339, dueTo); err == nil {
			filters.DueTo = &t
		}
	}
	return filters
}
