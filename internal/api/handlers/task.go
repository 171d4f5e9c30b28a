package handlers

import (
	"context"
	"errors"
	"fmt"
	"task-api/internal/models"
	"task-api/internal/repository"
	"task-api/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TaskStore is the persistence the task handlers need.
type TaskStore interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, title string, description *string) (models.Task, error)
	Update(ctx context.Context, id int64, patch models.TaskPatch) (models.Task, error)
	Delete(ctx context.Context, id int64) error
}

// TaskHandler menyimpan dependency yang dipakai semua handler task.
type TaskHandler struct {
	store    TaskStore
	validate *validator.Validate
}

func NewTaskHandler(store TaskStore, validate *validator.Validate) *TaskHandler {
	return &TaskHandler{store: store, validate: validate}
}

// ListTasks returns all tasks, newest first.
func (h *TaskHandler) ListTasks(c *fiber.Ctx) error {
	tasks, err := h.store.List(c.UserContext())
	if err != nil {
		// kembalikan error 500 tanpa detail internal
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Error fetching tasks")
	}
	return c.Status(fiber.StatusOK).JSON(tasks)
}

// CreateTask adalah fungsi untuk membuat task baru
func (h *TaskHandler) CreateTask(c *fiber.Ctx) error {
	var req models.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	// title wajib ada sebelum menyentuh database
	if err := h.validate.Struct(req); err != nil {
		return errorResponse(c, fiber.StatusBadRequest, validationMessage(err))
	}

	task, err := h.store.Create(c.UserContext(), req.Title, req.Description)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Error creating task")
	}

	logger.AuditLogger.Info("Task created", zap.Int64("task_id", task.ID))
	return c.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask applies a partial update. Only keys present in the body are
// written; an explicit null description clears it and a null completed
// stores false.
func (h *TaskHandler) UpdateTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	var patch models.TaskPatch
	if err := c.BodyParser(&patch); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return errorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if msg := validatePatch(patch); msg != "" {
		return errorResponse(c, fiber.StatusBadRequest, msg)
	}

	task, err := h.store.Update(c.UserContext(), int64(taskID), patch)
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Task not found")
	case err != nil:
		logger.ErrorLogger.Error("Error updating task", zap.Int("task_id", taskID), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Error updating task")
	}

	logger.AuditLogger.Info("Task updated", zap.Int64("task_id", task.ID))
	return c.Status(fiber.StatusOK).JSON(task)
}

// DeleteTask menghapus task secara permanen
func (h *TaskHandler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "Invalid task ID")
	}

	err = h.store.Delete(c.UserContext(), int64(taskID))
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		return errorResponse(c, fiber.StatusNotFound, "Task not found")
	case err != nil:
		logger.ErrorLogger.Error("Error deleting task", zap.Int("task_id", taskID), zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, "Error deleting task")
	}

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return c.Status(fiber.StatusNoContent).Send(nil)
}

func validatePatch(p models.TaskPatch) string {
	if p.Empty() {
		return "No fields to update"
	}
	// kolom title NOT NULL, jadi hanya null yang ditolak
	if p.Title.Set && !p.Title.Valid {
		return "title cannot be null"
	}
	return ""
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Validation error"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  status,
	})
}
