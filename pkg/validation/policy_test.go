package validation

import (
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandiarajan-src/task-tracker-api/pkg/config"
)

func strPtr(s string) *string {
	return &s
}

func titleField(value *string) FieldCandidate {
	return FieldCandidate{Name: "title", Value: value, Required: true, MaxLength: 200}
}

func descriptionField(value *string) FieldCandidate {
	return FieldCandidate{Name: "description", Value: value, Required: false, MaxLength: 1000}
}

func TestPolicy_Validate(t *testing.T) {
	cfg := config.DefaultValidationConfig()
	cfg.ForbiddenWords = []string{"spam"}
	policy := NewPolicy(cfg, logrus.New())

	tests := []struct {
		name     string
		field    FieldCandidate
		accepted bool
		reason   FieldReason
		value    string
	}{
		{
			name:     "clean title accepted",
			field:    titleField(strPtr("Buy groceries")),
			accepted: true,
			value:    "Buy groceries",
		},
		{
			name:     "whitespace normalized",
			field:    titleField(strPtr("  multiple    spaces  ")),
			accepted: true,
			value:    "multiple spaces",
		},
		{
			name:     "absent optional field accepted",
			field:    descriptionField(nil),
			accepted: true,
		},
		{
			name:   "absent required field rejected",
			field:  titleField(nil),
			reason: FieldMissingRequired,
		},
		{
			name:   "whitespace-only required field rejected",
			field:  titleField(strPtr("   \t  ")),
			reason: FieldMissingRequired,
		},
		{
			name:   "markup-only required field rejected as html",
			field:  titleField(strPtr("<br><br>")),
			reason: FieldHTMLNotAllowed,
		},
		{
			name:     "empty optional field accepted",
			field:    descriptionField(strPtr("   ")),
			accepted: true,
		},
		{
			name:   "over max length rejected",
			field:  titleField(strPtr(strings.Repeat("a", 201))),
			reason: FieldTooLong,
		},
		{
			name:     "length counted in characters, not bytes",
			field:    titleField(strPtr(strings.Repeat("é", 200))),
			accepted: true,
			value:    strings.Repeat("é", 200),
		},
		{
			name:   "multi-byte text over the character limit rejected",
			field:  titleField(strPtr(strings.Repeat("é", 201))),
			reason: FieldTooLong,
		},
		{
			name:   "script tag rejected",
			field:  titleField(strPtr("<script>alert('xss')</script>")),
			reason: FieldHTMLNotAllowed,
		},
		{
			name:   "any markup rejected, not silently stripped",
			field:  titleField(strPtr("<b>important</b> task")),
			reason: FieldHTMLNotAllowed,
		},
		{
			name:   "raw angle bracket rejected",
			field:  titleField(strPtr("a < b")),
			reason: FieldDangerousCharacters,
		},
		{
			name:   "braces rejected",
			field:  titleField(strPtr("task {urgent}")),
			reason: FieldDangerousCharacters,
		},
		{
			name:   "square brackets rejected",
			field:  titleField(strPtr("task [1]")),
			reason: FieldDangerousCharacters,
		},
		{
			name:   "sql injection rejected",
			field:  titleField(strPtr("Test'; DROP TABLE tasks;--")),
			reason: FieldSuspectedSQLInjection,
		},
		{
			name:   "forbidden word rejected",
			field:  titleField(strPtr("this is SPAM")),
			reason: FieldForbiddenWord,
		},
		{
			name:     "description optional but validated when present",
			field:    descriptionField(strPtr("a perfectly fine description")),
			accepted: true,
			value:    "a perfectly fine description",
		},
		{
			name:   "description sql injection rejected",
			field:  descriptionField(strPtr("1 UNION SELECT password")),
			reason: FieldSuspectedSQLInjection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := policy.Validate(tt.field)
			assert.Equal(t, tt.accepted, outcome.Accepted)
			if tt.accepted {
				if tt.value != "" {
					require.NotNil(t, outcome.Value)
					assert.Equal(t, tt.value, *outcome.Value)
				}
				return
			}
			assert.Equal(t, tt.reason, outcome.Reason)
			assert.Equal(t, tt.field.Name, outcome.Field)
			assert.NotEmpty(t, outcome.Message)
		})
	}
}

func TestPolicy_AbsentOptionalFieldHasNilValue(t *testing.T) {
	policy := NewPolicy(config.DefaultValidationConfig(), logrus.New())

	outcome := policy.Validate(descriptionField(nil))

	assert.True(t, outcome.Accepted)
	assert.Nil(t, outcome.Value)
}

func TestPolicy_HTMLCheckDisabledStillRejectsDangerousChars(t *testing.T) {
	cfg := config.DefaultValidationConfig()
	cfg.HTMLCheckEnabled = false
	policy := NewPolicy(cfg, logrus.New())

	// With HTML checking off, the denylist still catches raw angle
	// brackets that were never part of a tag.
	outcome := policy.Validate(titleField(strPtr("1 < 2")))

	assert.False(t, outcome.Accepted)
	assert.Equal(t, FieldDangerousCharacters, outcome.Reason)
}

func TestPolicy_HTMLCheckDisabledAcceptsStrippedMarkup(t *testing.T) {
	cfg := config.DefaultValidationConfig()
	cfg.HTMLCheckEnabled = false
	policy := NewPolicy(cfg, logrus.New())

	outcome := policy.Validate(titleField(strPtr("<b>clean</b> text")))

	assert.True(t, outcome.Accepted)
	require.NotNil(t, outcome.Value)
	assert.Equal(t, "clean text", *outcome.Value)
}

func TestPolicy_SQLCheckDisabled(t *testing.T) {
	cfg := config.DefaultValidationConfig()
	cfg.SQLCheckEnabled = false
	policy := NewPolicy(cfg, logrus.New())

	outcome := policy.Validate(titleField(strPtr("SELECT name FROM tasks")))

	assert.True(t, outcome.Accepted)
}

func TestPolicy_SQLMessageDoesNotLeakPattern(t *testing.T) {
	policy := NewPolicy(config.DefaultValidationConfig(), logrus.New())

	outcome := policy.Validate(titleField(strPtr("Test'; DROP TABLE tasks;--")))

	assert.Equal(t, FieldSuspectedSQLInjection, outcome.Reason)
	assert.NotContains(t, outcome.Message, "drop_table")
	assert.NotContains(t, outcome.Message, "DROP")
}

func TestPolicy_RejectionEchoesOriginalInput(t *testing.T) {
	policy := NewPolicy(config.DefaultValidationConfig(), logrus.New())

	input := "<script>alert(1)</script>"
	outcome := policy.Validate(titleField(strPtr(input)))

	assert.False(t, outcome.Accepted)
	assert.Equal(t, input, outcome.Input)
}

func TestPolicy_NormalizationAppliedToStrippedText(t *testing.T) {
	cfg := config.DefaultValidationConfig()
	cfg.HTMLCheckEnabled = false
	policy := NewPolicy(cfg, logrus.New())

	// Tag removal must not leave multi-space artifacts behind.
	outcome := policy.Validate(titleField(strPtr("one <br> two")))

	assert.True(t, outcome.Accepted)
	require.NotNil(t, outcome.Value)
	assert.Equal(t, "one two", *outcome.Value)
}
