package validation

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/infra/prometheus"
)

// Pipeline is the single entry point for mutating requests: the gate runs
// first, then every field candidate in declaration order. The pipeline is
// stateless and safe for concurrent use; configuration is read-only after
// startup.
type Pipeline struct {
	gate   *Gate
	policy *Policy
}

func NewPipeline(cfg *config.ValidationConfig, logger logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		gate:   NewGate(cfg, logger),
		policy: NewPolicy(cfg, logger),
	}
}

// Process gates the raw request and validates the given fields. A gate
// rejection short-circuits before any field is touched. Field validation is
// fail-fast: the first rejected field terminates the request, matching the
// documented single-error contract. On success the sanitized values are
// returned keyed by field name; absent optional fields are omitted.
func (p *Pipeline) Process(raw RawRequest, fields []FieldCandidate) (map[string]string, *Rejection) {
	if decision := p.gate.Check(raw); !decision.Accepted {
		return nil, gateRejection(decision)
	}

	sanitized := make(map[string]string, len(fields))
	for _, field := range fields {
		outcome := p.policy.Validate(field)
		if !outcome.Accepted {
			return nil, fieldRejection(outcome)
		}
		if outcome.Value != nil {
			sanitized[field.Name] = *outcome.Value
		}
	}

	return sanitized, nil
}

func gateRejection(decision GateDecision) *Rejection {
	status := fiber.StatusUnprocessableEntity
	switch decision.Reason {
	case GateTooLarge:
		status = fiber.StatusRequestEntityTooLarge
	case GateUnsupportedMediaType:
		status = fiber.StatusUnsupportedMediaType
	}
	if prometheus.Config.Enabled {
		prometheus.ValidationRejections.WithLabelValues(string(decision.Reason), "").Inc()
	}
	return &Rejection{
		StatusCode: status,
		Reason:     string(decision.Reason),
		Message:    decision.Message,
	}
}

func fieldRejection(outcome Outcome) *Rejection {
	if prometheus.Config.Enabled {
		prometheus.ValidationRejections.WithLabelValues(string(outcome.Reason), outcome.Field).Inc()
	}
	return &Rejection{
		StatusCode: fiber.StatusUnprocessableEntity,
		Reason:     string(outcome.Reason),
		Field:      outcome.Field,
		Message:    outcome.Message,
		Input:      outcome.Input,
	}
}
