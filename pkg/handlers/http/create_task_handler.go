package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/task"
	"github.com/pandiarajan-src/task-tracker-api/pkg/handlers/http/request"
	"github.com/pandiarajan-src/task-tracker-api/pkg/validation"
)

type createTaskHandler struct {
	logger   *logrus.Logger
	repo     task.Repository
	pipeline *validation.Pipeline
	cfg      *config.ValidationConfig
}

func NewCreateTaskHandler(
	logger *logrus.Logger,
	repo task.Repository,
	pipeline *validation.Pipeline,
	cfg *config.ValidationConfig,
) Handler {
	return &createTaskHandler{
		logger:   logger,
		repo:     repo,
		pipeline: pipeline,
		cfg:      cfg,
	}
}

// Handle @Summary Create a new task
// @Description Creates a task after the request body passes the validation pipeline
// @Tags Tasks
// @Accept json
// @Produce json
// @Param task body request.CreateTaskRequest true "Task request body"
// @Success 201 {object} task.Task "Task created successfully"
// @Failure 400 {object} map[string]interface{} "Invalid request data"
// @Failure 413 {object} map[string]interface{} "Request body too large"
// @Failure 415 {object} map[string]interface{} "Unsupported media type"
// @Failure 422 {object} map[string]interface{} "Field validation failed"
// @Router /api/v1/tasks [post]
func (h *createTaskHandler) Handle(c *fiber.Ctx) error {
	raw := rawRequestFrom(c)

	var req request.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		if _, rej := h.pipeline.Process(raw, nil); rej != nil {
			return rejectionResponse(c, rej)
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	fields := []validation.FieldCandidate{
		{Name: "title", Value: req.Title, Required: true, MaxLength: h.cfg.TitleMaxLength},
		{Name: "description", Value: req.Description, MaxLength: h.cfg.DescriptionMaxLen},
	}
	sanitized, rej := h.pipeline.Process(raw, fields)
	if rej != nil {
		return rejectionResponse(c, rej)
	}

	entity := task.Task{
		ID:        uuid.New(),
		Title:     sanitized["title"],
		Priority:  task.PriorityMedium,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
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

	if err := h.repo.Create(c.Context(), &entity); err != nil {
		h.logger.WithError(err).Error("failed to create task")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to create task"})
	}

	return c.Status(fiber.StatusCreated).JSON(entity)
}
