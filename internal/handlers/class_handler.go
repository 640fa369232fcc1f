package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smart-class/classroom-service/internal/services"
	"github.com/smart-class/classroom-service/internal/utils"
)

type ClassHandler struct {
	BaseHandler
	classService services.ClassService
}

func NewClassHandler(classService services.ClassService, logger utils.Logger) *ClassHandler {
	return &ClassHandler{
		BaseHandler:  NewBaseHandler(logger),
		classService: classService,
	}
}

type addClassBody struct {
	Name string `json:"name" binding:"required"`
}

// AddClass registers a new class name.
func (h *ClassHandler) AddClass(c *gin.Context) {
	var body addClassBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	class, err := h.classService.Add(c.Request.Context(), body.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, class)
}

// ListClasses lists all class names.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Data: classes})
}

// RemoveClass deletes a class name. Students keep their membership string.
func (h *ClassHandler) RemoveClass(c *gin.Context) {
	name := parseStringParam(c, "name")
	if name == "" {
		return
	}

	if err := h.classService.Remove(c.Request.Context(), name); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "Class removed"})
}
