package format

import (
	"testing"

	"github.com/mytaskly/taskly-mcp/internal/taskly"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		tasks []taskly.Task
		want  Summary
	}{
		{
			name:  "empty list",
			tasks: nil,
			want:  Summary{},
		},
		{
			name: "mixed statuses and priorities",
			tasks: []taskly.Task{
				{Status: StatusPending, Priority: PriorityHigh},
				{Status: StatusPending, Priority: PriorityLow},
				{Status: StatusCompleted, Priority: PriorityHigh},
				{Status: "Completata", Priority: PriorityMedium},
				{Status: "In corso", Priority: PriorityMedium},
			},
			want: Summary{Total: 5, Pending: 2, Completed: 2, HighPriority: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.tasks); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVoiceSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    string
	}{
		{
			name:    "empty list",
			summary: Summary{},
			want:    "Non hai nessun task al momento.",
		},
		{
			name:    "counts are spoken",
			summary: Summary{Total: 5, Pending: 2, Completed: 2, HighPriority: 1},
			want:    "Hai 5 task, di cui 1 ad alta priorità. 2 sono in sospeso e 2 completati.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VoiceSummary(tt.summary); got != tt.want {
				t.Errorf("VoiceSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTask(t *testing.T) {
	view := FormatTask(taskly.Task{
		TaskID:   1,
		Title:    "Test Task",
		EndTime:  "2025-12-15T18:00:00+00:00",
		Priority: PriorityHigh,
		Status:   StatusPending,
		Category: "Lavoro",
	})

	if view.ID != 1 || view.Title != "Test Task" {
		t.Errorf("FormatTask() identity fields = %d %q", view.ID, view.Title)
	}
	if view.EndTimeFormatted != "Lunedì 15 dicembre, 18:00" {
		t.Errorf("FormatTask() EndTimeFormatted = %q", view.EndTimeFormatted)
	}
	if view.PriorityEmoji != "⚡" {
		t.Errorf("FormatTask() PriorityEmoji = %q, want ⚡", view.PriorityEmoji)
	}
	if view.PriorityColor != "#EF4444" {
		t.Errorf("FormatTask() PriorityColor = %q", view.PriorityColor)
	}
	if view.CategoryColor != "#3B82F6" {
		t.Errorf("FormatTask() CategoryColor = %q", view.CategoryColor)
	}
	if !view.Actions.Complete.Enabled {
		t.Error("FormatTask() complete action should be enabled on a pending task")
	}
	if !view.Actions.Edit.Enabled || !view.Actions.Delete.Enabled {
		t.Error("FormatTask() edit and delete must always be enabled")
	}
}

func TestFormatTaskCompletedDisablesComplete(t *testing.T) {
	view := FormatTask(taskly.Task{TaskID: 2, Title: "Done", Status: StatusCompleted})
	if view.Actions.Complete.Enabled {
		t.Error("FormatTask() complete action should be disabled on a completed task")
	}
}

func TestBuildTaskList(t *testing.T) {
	view := BuildTaskList([]taskly.Task{
		{
			TaskID:   1,
			Title:    "Test Task",
			EndTime:  "2025-12-15T18:00:00+00:00",
			Priority: PriorityHigh,
			Status:   StatusPending,
			Category: "Lavoro",
		},
	})

	if view.Type != "task_list" || view.Version != "1.0" {
		t.Errorf("BuildTaskList() envelope = %q %q", view.Type, view.Version)
	}
	if len(view.Columns) != 5 {
		t.Errorf("BuildTaskList() columns = %d, want 5", len(view.Columns))
	}
	if len(view.Tasks) != 1 {
		t.Fatalf("BuildTaskList() tasks = %d, want 1", len(view.Tasks))
	}
	want := Summary{Total: 1, Pending: 1, HighPriority: 1}
	if view.Summary != want {
		t.Errorf("BuildTaskList() summary = %+v, want %+v", view.Summary, want)
	}
	if view.VoiceSummary == "" {
		t.Error("BuildTaskList() voice summary is empty")
	}
	if !view.UIHints.EnableSwipeActions || view.UIHints.GroupBy != "category" {
		t.Errorf("BuildTaskList() ui hints = %+v", view.UIHints)
	}
}

func TestBuildTaskListEmpty(t *testing.T) {
	view := BuildTaskList(nil)

	if view.Tasks == nil {
		t.Error("BuildTaskList() tasks must be an empty slice, not nil")
	}
	if view.Summary.Total != 0 {
		t.Errorf("BuildTaskList() total = %d, want 0", view.Summary.Total)
	}
	if view.VoiceSummary != "Non hai nessun task al momento." {
		t.Errorf("BuildTaskList() voice summary = %q", view.VoiceSummary)
	}
}
