package validation

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
)

const requiredMediaType = "application/json"

// Gate performs the structural pre-check on request size and media type.
// It runs before any field is parsed; a gate rejection never triggers
// field-level sanitization work.
type Gate struct {
	cfg    *config.ValidationConfig
	logger logrus.FieldLogger
}

func NewGate(cfg *config.ValidationConfig, logger logrus.FieldLogger) *Gate {
	return &Gate{
		cfg:    cfg,
		logger: logger,
	}
}

// Check gates a request on actual body size and declared content type.
// Methods without a body always pass. The size check uses the bytes actually
// received, never the Content-Length header, so a mismatched header cannot
// bypass the limit.
func (g *Gate) Check(raw RawRequest) GateDecision {
	if !isBodyBearing(raw.Method) {
		return GateDecision{Accepted: true}
	}

	if raw.ActualSize > g.cfg.MaxBodySize {
		msg := fmt.Sprintf(
			"Request body too large. Limit: %s, received: %d bytes",
			formatSize(g.cfg.MaxBodySize), raw.ActualSize,
		)
		if g.cfg.LoggingEnabled {
			g.logger.WithFields(logrus.Fields{
				"kind":          kindOversizedRequest,
				"method":        raw.Method,
				"max_size":      g.cfg.MaxBodySize,
				"actual_size":   raw.ActualSize,
				"declared_size": raw.DeclaredSize,
			}).Warn("request rejected by gate")
		}
		return GateDecision{Reason: GateTooLarge, Message: msg}
	}

	if !matchesMediaType(raw.ContentType, requiredMediaType) {
		msg := fmt.Sprintf(
			"Content-Type must be %s, received: %s",
			requiredMediaType, raw.ContentType,
		)
		if g.cfg.LoggingEnabled {
			g.logger.WithFields(logrus.Fields{
				"kind":         kindWrongContentType,
				"method":       raw.Method,
				"content_type": raw.ContentType,
			}).Warn("request rejected by gate")
		}
		return GateDecision{Reason: GateUnsupportedMediaType, Message: msg}
	}

	return GateDecision{Accepted: true}
}

func isBodyBearing(method string) bool {
	switch strings.ToUpper(method) {
	case "POST", "PUT", "PATCH":
		return true
	default:
		return false
	}
}

// matchesMediaType compares the media type portion of a Content-Type header
// against want, case-insensitively and ignoring parameters such as charset.
func matchesMediaType(contentType, want string) bool {
	mediaType := contentType
	if idx := strings.IndexByte(mediaType, ';'); idx != -1 {
		mediaType = mediaType[:idx]
	}
	return strings.EqualFold(strings.TrimSpace(mediaType), want)
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1048576 && bytes%1048576 == 0:
		return fmt.Sprintf("%dMB", bytes/1048576)
	case bytes >= 1024 && bytes%1024 == 0:
		return fmt.Sprintf("%dKB", bytes/1024)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}
