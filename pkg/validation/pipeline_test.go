package validation

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
)

func jsonPost(size int64) RawRequest {
	return RawRequest{Method: "POST", ContentType: "application/json", ActualSize: size}
}

func TestPipeline_Process_Accepted(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	fields := []FieldCandidate{
		{Name: "title", Value: strPtr("Buy groceries"), Required: true, MaxLength: 200},
		{Name: "description", Value: strPtr("  milk  and   eggs "), Required: false, MaxLength: 1000},
	}

	sanitized, rejection := pipeline.Process(jsonPost(64), fields)

	require.Nil(t, rejection)
	assert.Equal(t, "Buy groceries", sanitized["title"])
	assert.Equal(t, "milk and eggs", sanitized["description"])
}

func TestPipeline_Process_AbsentOptionalFieldOmitted(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	fields := []FieldCandidate{
		{Name: "title", Value: strPtr("Buy groceries"), Required: true, MaxLength: 200},
		{Name: "description", Value: nil, Required: false, MaxLength: 1000},
	}

	sanitized, rejection := pipeline.Process(jsonPost(32), fields)

	require.Nil(t, rejection)
	assert.Contains(t, sanitized, "title")
	assert.NotContains(t, sanitized, "description")
}

func TestPipeline_Process_GateRejectionShortCircuits(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	// The gate must reject before any field is validated, so even a field
	// that would itself fail never produces a field-level rejection.
	fields := []FieldCandidate{
		{Name: "title", Value: strPtr("<script>bad</script>"), Required: true, MaxLength: 200},
	}

	sanitized, rejection := pipeline.Process(jsonPost(2_097_152), fields)

	assert.Nil(t, sanitized)
	require.NotNil(t, rejection)
	assert.Equal(t, fiber.StatusRequestEntityTooLarge, rejection.StatusCode)
	assert.Equal(t, string(GateTooLarge), rejection.Reason)
	assert.Empty(t, rejection.Field)
}

func TestPipeline_Process_WrongContentType(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	raw := RawRequest{Method: "POST", ContentType: "text/plain", ActualSize: 16}
	sanitized, rejection := pipeline.Process(raw, nil)

	assert.Nil(t, sanitized)
	require.NotNil(t, rejection)
	assert.Equal(t, fiber.StatusUnsupportedMediaType, rejection.StatusCode)
	assert.Contains(t, rejection.Message, "text/plain")
}

func TestPipeline_Process_FailFastOnFirstField(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	// Both fields are invalid; only the first (declaration order) is
	// reported, by design.
	fields := []FieldCandidate{
		{Name: "title", Value: strPtr("<script>x</script>"), Required: true, MaxLength: 200},
		{Name: "description", Value: strPtr("'; DROP TABLE tasks;--"), Required: false, MaxLength: 1000},
	}

	sanitized, rejection := pipeline.Process(jsonPost(64), fields)

	assert.Nil(t, sanitized)
	require.NotNil(t, rejection)
	assert.Equal(t, fiber.StatusUnprocessableEntity, rejection.StatusCode)
	assert.Equal(t, "title", rejection.Field)
	assert.Equal(t, string(FieldHTMLNotAllowed), rejection.Reason)
}

func TestPipeline_Process_FieldRejectionEchoesInput(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	input := "Test'; DROP TABLE tasks;--"
	fields := []FieldCandidate{
		{Name: "title", Value: strPtr(input), Required: true, MaxLength: 200},
	}

	_, rejection := pipeline.Process(jsonPost(64), fields)

	require.NotNil(t, rejection)
	assert.Equal(t, fiber.StatusUnprocessableEntity, rejection.StatusCode)
	assert.Equal(t, string(FieldSuspectedSQLInjection), rejection.Reason)
	assert.Equal(t, input, rejection.Input)
}

func TestPipeline_Process_NonBodyMethodSkipsGateChecks(t *testing.T) {
	pipeline := NewPipeline(config.DefaultValidationConfig(), logrus.New())

	raw := RawRequest{Method: "DELETE", ContentType: "", ActualSize: 0}
	sanitized, rejection := pipeline.Process(raw, nil)

	assert.Nil(t, rejection)
	assert.Empty(t, sanitized)
}
