package request

// CreateTaskRequest keeps Title as a pointer so an absent key can be told
// apart from an empty string during validation.
type CreateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	Priority    *string `json:"priority,omitempty"`
}
