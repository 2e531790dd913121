package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/domain"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/task"
)

type deleteTaskHandler struct {
	logger *logrus.Logger
	repo   task.Repository
}

func NewDeleteTaskHandler(logger *logrus.Logger, repo task.Repository) Handler {
	return &deleteTaskHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} map[string]interface{} "Deletion confirmation"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Router /api/v1/tasks/{task_id} [delete]
func (h *deleteTaskHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task ID"})
	}

	if err := h.repo.Delete(c.Context(), id); err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Task with id %s not found", id),
			})
		}
		h.logger.WithError(err).Error("failed to delete task")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to delete task"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": fmt.Sprintf("Task with id %s successfully deleted", id),
	})
}
