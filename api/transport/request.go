package transport

import "encoding/json"

type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TaskCreateRequest struct {
	Title         string `json:"title"`
	DueDate       string `json:"due_date"`
	DurationHours int    `json:"duration_hours"`
	Notes         string `json:"notes"`
}

// TaskUpdateRequest distinguishes absent fields from zero values so partial
// updates retain what the client did not send. A "status" key, if present,
// is ignored: status is derived, never client-settable.
type TaskUpdateRequest struct {
	Title         *string `json:"title"`
	DueDate       *string `json:"due_date"`
	DurationHours *int    `json:"duration_hours"`
	Completed     *bool   `json:"completed"`
	CompletedAt   *string `json:"completed_at"`
	Notes         *string `json:"notes"`
}

// RawDueDateNull reports whether the payload carried an explicit
// "due_date": null, which clears the stored date.
func RawDueDateNull(body []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	raw, ok := probe["due_date"]
	return ok && string(raw) == "null"
}
