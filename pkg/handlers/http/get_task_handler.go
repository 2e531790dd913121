package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/domain"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/task"
)

type getTaskHandler struct {
	logger *logrus.Logger
	repo   task.Repository
}

func NewGetTaskHandler(logger *logrus.Logger, repo task.Repository) Handler {
	return &getTaskHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary Retrieve a task by ID
// @Tags Tasks
// @Produce json
// @Param task_id path string true "Task ID"
// @Success 200 {object} task.Task "Task details"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Router /api/v1/tasks/{task_id} [get]
func (h *getTaskHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task ID"})
	}

	entity, err := h.repo.Get(c.Context(), id)
	if err != nil {
		if domain.IsNotFoundError(err) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": fmt.Sprintf("Task with id %s not found", id),
			})
		}
		h.logger.WithError(err).Error("failed to fetch task")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch task"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
