package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
	"github.com/pandiarajan-src/task-tracker-api/pkg/sanitize"
)

// dangerousChars are rejected in normalized text even when the HTML check
// is disabled; raw angle and brace characters remain a risk on their own.
const dangerousChars = "<>{}[]"

// Policy composes the sanitization primitives into a fixed, short-circuiting
// per-field pipeline. Detecting that markup existed is itself grounds for
// rejection; input is never silently stripped and accepted.
type Policy struct {
	cfg    *config.ValidationConfig
	logger logrus.FieldLogger
}

func NewPolicy(cfg *config.ValidationConfig, logger logrus.FieldLogger) *Policy {
	return &Policy{
		cfg:    cfg,
		logger: logger,
	}
}

// Validate runs the field pipeline: presence, length, HTML strip +
// whitespace normalization, HTML presence check, emptiness after
// normalization, dangerous characters, SQL
// pattern scan, forbidden words. The first failing check wins.
func (p *Policy) Validate(field FieldCandidate) Outcome {
	if field.Value == nil {
		if field.Required {
			return p.reject(field, FieldMissingRequired, kindMissingRequired, "",
				fmt.Sprintf("Field '%s' is required", field.Name))
		}
		return Outcome{Accepted: true, Field: field.Name}
	}

	raw := *field.Value

	if field.MaxLength > 0 && utf8.RuneCountInString(raw) > field.MaxLength {
		return p.reject(field, FieldTooLong, kindTooLong, raw,
			fmt.Sprintf("Field '%s' exceeds maximum length of %d characters", field.Name, field.MaxLength))
	}

	stripped, htmlPresent := sanitize.StripHTML(raw)
	normalized := sanitize.NormalizeWhitespace(stripped)

	if p.cfg.HTMLCheckEnabled && htmlPresent {
		return p.reject(field, FieldHTMLNotAllowed, kindHTMLStripped, raw,
			fmt.Sprintf("Field '%s' contains forbidden HTML tags or special characters", field.Name))
	}

	// A required field that collapses to nothing after stripping and
	// normalization was never meaningful input.
	if field.Required && normalized == "" {
		return p.reject(field, FieldMissingRequired, kindMissingRequired, raw,
			fmt.Sprintf("Field '%s' cannot be empty", field.Name))
	}

	if strings.ContainsAny(normalized, dangerousChars) {
		return p.reject(field, FieldDangerousCharacters, kindDangerousCharacters, raw,
			fmt.Sprintf("Field '%s' contains forbidden special characters", field.Name))
	}

	if p.cfg.SQLCheckEnabled {
		if matched, pattern := sanitize.DetectSQLInjection(normalized); matched {
			// The pattern name goes to the log only, never to the caller.
			return p.rejectWithPattern(field, FieldSuspectedSQLInjection, kindSQLInjectionSuspected, raw, pattern,
				fmt.Sprintf("Field '%s' contains invalid characters or patterns", field.Name))
		}
	}

	if matched, word := sanitize.ContainsForbiddenWord(normalized, p.cfg.ForbiddenWords); matched {
		return p.rejectWithPattern(field, FieldForbiddenWord, kindForbiddenWordFound, raw, word,
			fmt.Sprintf("Field '%s' contains a forbidden word", field.Name))
	}

	return Outcome{Accepted: true, Value: &normalized, Field: field.Name}
}

func (p *Policy) reject(field FieldCandidate, reason FieldReason, kind, input, message string) Outcome {
	return p.rejectWithPattern(field, reason, kind, input, "", message)
}

func (p *Policy) rejectWithPattern(field FieldCandidate, reason FieldReason, kind, input, pattern, message string) Outcome {
	if p.cfg.LoggingEnabled {
		logFields := logrus.Fields{
			"kind":  kind,
			"field": field.Name,
			"value": truncate(input, 100),
		}
		if pattern != "" {
			logFields["pattern"] = pattern
		}
		p.logger.WithFields(logFields).Warn("field rejected by validation policy")
	}
	return Outcome{
		Reason:  reason,
		Field:   field.Name,
		Message: message,
		Input:   input,
	}
}
