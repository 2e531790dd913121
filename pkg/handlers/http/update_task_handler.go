package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/task"
	"github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http/request"
	"github.com/pandiarajan-src/task-tracker-api/pkg/validation"
)

type updateTaskHandler struct {
	logger   *logrus.Logger
	repo     task.Repository
	pipeline *validation.Pipeline
	cfg      *config.ValidationConfig
}

func NewUpdateTaskHandler(
	logger *logrus.Logger,
	repo task.Repository,
	pipeline *validation.Pipeline,
	cfg *config.ValidationConfig,
) Handler {
	return &updateTaskHandler{
		logger:   logger,
		repo:     repo,
		pipeline: pipeline,
		cfg:      cfg,
	}
}

// Handle @Summary Update a task
// @Description Partially updates a task; provided text fields pass through the validation pipeline
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task_id path string true "Task ID"
// @Param task body request.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} task.Task "Updated task"
// @Failure 404 {object} map[string]interface{} "Task not found"
// @Failure 422 {object} map[string]interface{} "Field validation failed"
// @Router /api/v1/tasks/{task_id} [put]
func (h *updateTaskHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("task_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid task ID"})
	}

	raw := rawRequestFrom(c)

	var req request.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		if _, rej := h.pipeline.Process(raw, nil); rej != nil {
			return rejectionResponse(c, rej)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	fields := []validation.FieldCandidate{
		{Name: "title", Value: req.Title, MaxLength: h.cfg.TitleMaxLength},
		{Name: "description", Value: req.Description, MaxLength: h.cfg.DescriptionMaxLen},
	}
	sanitized, rej := h.pipeline.Process(raw, fields)
	if rej != nil {
		return rejectionResponse(c, rej)
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

	if title, ok := sanitized["title"]; ok {
		// Title is optional on update, but a provided title may not be
		// blanked out.
		if title == "" {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "Field 'title' cannot be empty",
				"field": "title",
			})
		}
		entity.Title = title
	}
	if desc, ok := sanitized["description"]; ok {
		entity.Description = desc
	}
	if req.Completed != nil {
		entity.Completed = *req.Completed
	}
	if req.Priority != nil {
		priority := task.Priority(*req.Priority)
		if !priority.Valid() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "priority must be one of: low, medium, high",
				"field": "priority",
			})
		}
		entity.Priority = priority
	}

	if err := h.repo.Update(c.Context(), entity); err != nil {
		h.logger.WithError(err).Error("failed to update task")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update task"})
	}

	return c.Status(fiber.StatusOK).JSON(entity)
}
