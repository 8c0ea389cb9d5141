package handlers

import (
	"errors"
	"net/http"

	"taskflow/internal/middleware"
	"taskflow/internal/models"
	"taskflow/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db    *gorm.DB
	tasks services.TaskService
}

func NewTaskHandler(db *gorm.DB, tasks services.TaskService) *TaskHandler {
	return &TaskHandler{db: db, tasks: tasks}
}

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (h *TaskHandler) GetTasks(c *gin.Context) {
	callerID := middleware.UserID(c)

	tasks, err := h.tasks.GetTasksByOwner(h.db, callerID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	callerID := middleware.UserID(c)

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.tasks.CreateTask(h.db, callerID, req.Title, req.Description, req.Status)
	if err != nil {
		if isTaskValidationError(err) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    task,
	})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	callerID := middleware.UserID(c)

	taskID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := services.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}

	task, err := h.tasks.UpdateTask(h.db, taskID, callerID, patch)
	if err != nil {
		h.taskError(c, err, "Not authorized to update this task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    task,
	})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	callerID := middleware.UserID(c)

	taskID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Task not found")
		return
	}

	if err := h.tasks.DeleteTask(h.db, taskID, callerID); err != nil {
		h.taskError(c, err, "Not authorized to delete this task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{},
	})
}

func (h *TaskHandler) taskError(c *gin.Context, err error, forbiddenMsg string) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		fail(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		fail(c, http.StatusForbidden, forbiddenMsg)
	case isTaskValidationError(err):
		fail(c, http.StatusBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "Server error")
	}
}

func isTaskValidationError(err error) bool {
	return errors.Is(err, models.ErrTitleRequired) ||
		errors.Is(err, models.ErrTitleTooLong) ||
		errors.Is(err, models.ErrDescTooLong) ||
		errors.Is(err, models.ErrInvalidStatus)
}
