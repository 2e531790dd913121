package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pandiarajan-src/task-tracker-api/pkg/validation"
)

const ErrInvalidJsonPayload = "invalid JSON payload"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Tasks
	CreateTaskHandler Handler
	ListTasksHandler  Handler
	GetTaskHandler    Handler
	UpdateTaskHandler Handler
	DeleteTaskHandler Handler

	// Auth
	RegisterHandler     Handler
	LoginHandler        Handler
	RefreshTokenHandler Handler
	GetMeHandler        Handler

	// Misc
	GetVersionHandler Handler
	GetRootHandler    Handler
}

// rawRequestFrom captures the structural request metadata the validation
// gate inspects before anything touches the body.
func rawRequestFrom(c *fiber.Ctx) validation.RawRequest {
	return validation.RawRequest{
		Method:       c.Method(),
		ContentType:  c.Get(fiber.HeaderContentType),
		DeclaredSize: int64(c.Request().Header.ContentLength()),
		ActualSize:   int64(len(c.Body())),
	}
}

func rejectionResponse(c *fiber.Ctx, rej *validation.Rejection) error {
	body := fiber.Map{
		"error":  rej.Message,
		"reason": rej.Reason,
	}
	if rej.Field != "" {
		body["field"] = rej.Field
	}
	if rej.Input != "" {
		body["input"] = rej.Input
	}
	return c.Status(rej.StatusCode).JSON(body)
}
