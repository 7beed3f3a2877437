package format

import (
	"fmt"

	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

// Action labels. The complete action is disabled on completed tasks.
const (
	completeLabel = "✅ Completa"
	editLabel     = "✏️ Modifica"
	deleteLabel   = "🗑️ Elimina"
)

// voiceSummaryEmpty is spoken when the user has no tasks at all.
const voiceSummaryEmpty = "Non hai nessun task al momento."

// Action describes one swipe/tap action on a task row.
type Action struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
}

// TaskActions is the fixed-shape action block attached to every task.
type TaskActions struct {
	Complete Action `json:"complete"`
	Edit     Action `json:"edit"`
	Delete   Action `json:"delete"`
}

// TaskView is the display-ready projection of a raw task record. The raw
// record is never mutated; a TaskView is built per response and discarded
// after serialization.
type TaskView struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	StartTime        string      `json:"startTime,omitempty"`
	EndTime          string      `json:"endTime,omitempty"`
	EndTimeFormatted string      `json:"endTimeFormatted"`
	Category         string      `json:"category"`
	CategoryColor    string      `json:"categoryColor"`
	Priority         string      `json:"priority"`
	PriorityEmoji    string      `json:"priorityEmoji"`
	PriorityColor    string      `json:"priorityColor"`
	Status           string      `json:"status"`
	Actions          TaskActions `json:"actions"`
}

// Column describes how one task field should be rendered.
type Column struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

// Summary aggregates counts over a task list. It is derived fresh per
// request; pending+completed may be less than total because other statuses
// exist.
type Summary struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	Completed    int `json:"completed"`
	HighPriority int `json:"high_priority"`
}

// UIHints tells the mobile client how to render the list.
type UIHints struct {
	DisplayMode         string `json:"display_mode"`
	EnableSwipeActions  bool   `json:"enable_swipe_actions"`
	EnablePullToRefresh bool   `json:"enable_pull_to_refresh"`
	GroupBy             string `json:"group_by"`
}

// TaskListView is the complete UI-ready task list payload.
type TaskListView struct {
	Type         string     `json:"type"`
	Version      string     `json:"version"`
	Columns      []Column   `json:"columns"`
	Tasks        []TaskView `json:"tasks"`
	Summary      Summary    `json:"summary"`
	VoiceSummary string     `json:"voice_summary"`
	UIHints      UIHints    `json:"ui_hints"`
}

// Columns returns the static column descriptors. They are independent of the
// input data.
func Columns() []Column {
	return []Column{
		{Name: "title", Label: "Titolo", Type: "text"},
		{Name: "endTimeFormatted", Label: "Scadenza", Type: "date"},
		{Name: "category", Label: "Categoria", Type: "badge"},
		{Name: "priority", Label: "Priorità", Type: "priority"},
		{Name: "status", Label: "Stato", Type: "status"},
	}
}

// FormatTask builds the display-ready projection of one raw task record.
func FormatTask(t taskly.Task) TaskView {
	completed := IsCompleted(t.Status)
	return TaskView{
		ID:               t.TaskID,
		Title:            t.Title,
		Description:      t.Description,
		StartTime:        t.StartTime,
		EndTime:          t.EndTime,
		EndTimeFormatted: FormatDateForMobile(t.EndTime),
		Category:         t.Category,
		CategoryColor:    CategoryColor(t.Category),
		Priority:         t.Priority,
		PriorityEmoji:    PriorityEmoji(t.Priority),
		PriorityColor:    PriorityColor(t.Priority),
		Status:           t.Status,
		Actions: TaskActions{
			Complete: Action{Label: completeLabel, Enabled: !completed},
			Edit:     Action{Label: editLabel, Enabled: true},
			Delete:   Action{Label: deleteLabel, Enabled: true},
		},
	}
}

// Summarize computes the count aggregate in a single pass over the input.
func Summarize(tasks []taskly.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		switch {
		case t.Status == StatusPending:
			s.Pending++
		case IsCompleted(t.Status):
			s.Completed++
		}
		if t.Priority == PriorityHigh {
			s.HighPriority++
		}
	}
	return s
}

// VoiceSummary synthesizes a short Italian sentence from the summary counts,
// suitable for text-to-speech. An empty list yields a dedicated sentence
// rather than an error.
func VoiceSummary(s Summary) string {
	if s.Total == 0 {
		return voiceSummaryEmpty
	}
	return fmt.Sprintf("Hai %d task, di cui %d ad alta priorità. %d sono in sospeso e %d completati.",
		s.Total, s.HighPriority, s.Pending, s.Completed)
}

// BuildTaskList assembles the full UI payload from a raw task list.
func BuildTaskList(tasks []taskly.Task) *TaskListView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, FormatTask(t))
	}

	summary := Summarize(tasks)
	return &TaskListView{
		Type:         "task_list",
		Version:      "1.0",
		Columns:      Columns(),
		Tasks:        views,
		Summary:      summary,
		VoiceSummary: VoiceSummary(summary),
		UIHints: UIHints{
			DisplayMode:         "list",
			EnableSwipeActions:  true,
			EnablePullToRefresh: true,
			GroupBy:             "category",
		},
	}
}
