package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/domain/task"
)

const defaultListLimit = 100

type listTasksHandler struct {
	logger *logrus.Logger
	repo   task.Repository
}

func NewListTasksHandler(logger *logrus.Logger, repo task.Repository) Handler {
	return &listTasksHandler{
		logger: logger,
		repo:   repo,
	}
}

// Handle @Summary List tasks
// @Description Returns tasks ordered by priority (high first), newest first within a priority
// @Tags Tasks
// @Produce json
// @Param skip query int false "Number of tasks to skip"
// @Param limit query int false "Maximum number of tasks to return"
// @Param priority query string false "Filter by priority (low, medium, high)"
// @Success 200 {array} task.Task "Tasks"
// @Failure 422 {object} map[string]interface{} "Invalid filter"
// @Router /api/v1/tasks [get]
func (h *listTasksHandler) Handle(c *fiber.Ctx) error {
	filter := task.ListFilter{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", defaultListLimit),
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}

	if p := c.Query("priority"); p != "" {
		priority := task.Priority(p)
		if !priority.Valid() {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "priority must be one of: low, medium, high",
				"field": "priority",
			})
		}
		filter.Priority = &priority
	}

	tasks, err := h.repo.List(c.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("failed to list tasks")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list tasks"})
	}
	if tasks == nil {
		tasks = []task.Task{}
	}

	return c.Status(fiber.StatusOK).JSON(tasks)
}
