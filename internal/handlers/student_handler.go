package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-class/classroom-service/internal/models"
	"github.com/smart-class/classroom-service/internal/repositories"
	"github.com/smart-class/classroom-service/internal/services"
	"github.com/smart-class/classroom-service/internal/utils"
)

type StudentHandler struct {
	BaseHandler
	studentService services.StudentService
	ledgerService  services.LedgerService
	reportService  services.ReportService
	exportService  services.ExportService
}

func NewStudentHandler(
	studentService services.StudentService,
	ledgerService services.LedgerService,
	reportService services.ReportService,
	exportService services.ExportService,
	logger utils.Logger,
) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    NewBaseHandler(logger),
		studentService: studentService,
		ledgerService:  ledgerService,
		reportService:  reportService,
		exportService:  exportService,
	}
}

// ===== LIFECYCLE =====

// Register creates a pending student profile.
func (h *StudentHandler) Register(c *gin.Context) {
	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	profile, err := h.studentService.Register(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetStudent retrieves one student profile.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}

	profile, err := h.studentService.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// ListStudents lists student profiles with optional filters.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	page := parseIntQuery(c, "page", 1)
	size := parseIntQuery(c, "size", 50)

	filters := repositories.ProfileFilters{
		Limit:  size,
		Offset: (page - 1) * size,
	}
	if status := c.Query("status"); status != "" {
		profileStatus := models.ProfileStatus(status)
		filters.Status = &profileStatus
	}
	if className := c.Query("class_name"); className != "" {
		filters.ClassName = &className
	}
	role := models.RoleStudent
	filters.Role = &role

	profiles, total, err := h.studentService.List(c.Request.Context(), filters)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ListResponse{Data: profiles, Total: total})
}

type approveBody struct {
	ClassName string `json:"class_name" binding:"required"`
}

// Approve activates a pending student into a class.
func (h *StudentHandler) Approve(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}
	var body approveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.studentService.Approve(c.Request.Context(), id, body.ClassName); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student approved"})
}

// DeleteStudent removes a student profile.
func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student deleted"})
}

type moveClassBody struct {
	ClassName string `json:"class_name" binding:"required"`
}

// MoveClass moves an active student to another class.
func (h *StudentHandler) MoveClass(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}
	var body moveClassBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.studentService.MoveClass(c.Request.Context(), id, body.ClassName); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Student moved"})
}

// ===== CHARACTERS =====

type selectCharacterBody struct {
	Character string `json:"character" binding:"required"`
}

// SelectCharacter switches the student's avatar to an unlocked character.
func (h *StudentHandler) SelectCharacter(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}
	var body selectCharacterBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.studentService.SelectCharacter(c.Request.Context(), id, body.Character); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Character selected"})
}

// UnlockedCharacters lists the characters the student's reward points unlock.
func (h *StudentHandler) UnlockedCharacters(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}

	characters, err := h.studentService.UnlockedCharacters(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: characters})
}

// ===== POINT LEDGER =====

type adjustPointsBody struct {
	Kind  models.PointKind `json:"kind" binding:"required"`
	Delta int              `json:"delta" binding:"required"`
}

// AdjustPoints applies a manual point delta to one student.
func (h *StudentHandler) AdjustPoints(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}
	var body adjustPointsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	newValue, err := h.ledgerService.ApplyDelta(c.Request.Context(), id, body.Kind, body.Delta)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Points adjusted",
		Data:    gin.H{"kind": body.Kind, "new_value": newValue},
	})
}

// ResetPenalties zeroes the penalty counter of every active student.
func (h *StudentHandler) ResetPenalties(c *gin.Context) {
	affected, err := h.ledgerService.ResetAllPenalties(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "Penalties reset",
		Data:    gin.H{"students_affected": affected},
	})
}

// ===== REPORTS AND EXPORT =====

// StudentReport aggregates one student's submission history.
func (h *StudentHandler) StudentReport(c *gin.Context) {
	id := parseStringParam(c, "id")
	if id == "" {
		return
	}

	groupBy := services.ReportGroupBy(c.DefaultQuery("group_by", string(services.GroupByMonthly)))
	report, err := h.reportService.StudentReport(c.Request.Context(), id, groupBy)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportLedger streams the point ledger as a file download.
func (h *StudentHandler) ExportLedger(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")
	var (
		data        []byte
		err         error
		contentType string
		filename    string
	)
	switch format {
	case "xlsx":
		data, err = h.exportService.ExportLedgerToExcel(c.Request.Context())
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		filename = "points.xlsx"
	case "csv":
		data, err = h.exportService.ExportLedgerToCSV(c.Request.Context())
		contentType = "text/csv"
		filename = "points.csv"
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
