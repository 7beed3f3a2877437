package taskly

// Task is a raw task record as returned by the backend. Timestamps stay in
// their wire form; localization happens in the format package.
type Task struct {
	TaskID      int    `json:"task_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Category    string `json:"category"`
}

// Category is a raw category record, passed through to callers unchanged.
type Category struct {
	CategoryID  int    `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UserID      int    `json:"user_id"`
}

// NoteInput carries the caller-supplied fields for note creation.
type NoteInput struct {
	Title     string
	PositionX string
	PositionY string
	Color     string
}

// Note is the created note as reported back to the caller. The backend only
// returns the assigned identifier; the remaining fields are echoed from the
// input.
type Note struct {
	NoteID    int    `json:"note_id"`
	Title     string `json:"title"`
	PositionX string `json:"position_x"`
	PositionY string `json:"position_y"`
	Color     string `json:"color"`
	Message   string `json:"message"`
}

// HealthStatus is the degraded-but-never-failing result of a backend probe.
type HealthStatus struct {
	Status string `json:"status"`
	Code   int    `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Health status values.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// createNoteRequest is the JSON body sent to POST /notes.
type createNoteRequest struct {
	UserID    int    `json:"user_id"`
	Title     string `json:"title"`
	PositionX string `json:"position_x"`
	PositionY string `json:"position_y"`
	Color     string `json:"color"`
}

// createNoteResponse is the backend's answer to POST /notes.
type createNoteResponse struct {
	NoteID     int `json:"note_id"`
	StatusCode int `json:"status_code"`
}
