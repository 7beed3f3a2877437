package format

import (
	"fmt"
	"hash/fnv"
	"time"
)

// Priority levels used by the backend.
const (
	PriorityHigh   = "Alta"
	PriorityMedium = "Media"
	PriorityLow    = "Bassa"
)

// DefaultPriorityColor is used for priority levels outside the known set.
const DefaultPriorityColor = "#6B7280"

// Task status values used by the backend. Completed appears with both
// masculine and feminine endings in real data; both are recognized.
const (
	StatusPending      = "In sospeso"
	StatusCompleted    = "Completato"
	statusCompletedFem = "Completata"
)

var priorityEmojis = map[string]string{
	PriorityHigh:   "⚡",
	PriorityMedium: "",
	PriorityLow:    "",
}

var priorityColors = map[string]string{
	PriorityHigh:   "#EF4444",
	PriorityMedium: "#F59E0B",
	PriorityLow:    "#10B981",
}

var categoryColors = map[string]string{
	"Lavoro":    "#3B82F6",
	"Personale": "#8B5CF6",
	"Cibo":      "#EF4444",
	"Studio":    "#F59E0B",
	"Sport":     "#10B981",
	"Famiglia":  "#EC4899",
	"Salute":    "#14B8A6",
	"Spesa":     "#F97316",
}

// fallbackPalette is the fixed set of colors unknown category names hash
// into. The mapping must be stable across calls and processes, so the hash
// is FNV-1a rather than anything seeded.
var fallbackPalette = []string{
	"#3B82F6", "#8B5CF6", "#EC4899", "#F59E0B", "#10B981",
	"#06B6D4", "#F97316", "#14B8A6", "#6366F1",
}

var weekdayNames = [...]string{
	"Domenica", "Lunedì", "Martedì", "Mercoledì", "Giovedì", "Venerdì", "Sabato",
}

var monthNames = [...]string{
	"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno",
	"luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre",
}

// dateLayouts are tried in order when parsing backend timestamps.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDateForMobile renders an ISO-8601 timestamp as a localized
// "Weekday D month, HH:MM" string (e.g. "Lunedì 15 dicembre, 18:00").
// An empty input yields an empty string; an unparseable input is returned
// unchanged rather than failing. The timestamp keeps its own offset; no
// zone conversion is applied.
func FormatDateForMobile(value string) string {
	if value == "" {
		return ""
	}
	t, ok := parseISO(value)
	if !ok {
		return value
	}
	return fmt.Sprintf("%s %d %s, %02d:%02d",
		weekdayNames[int(t.Weekday())], t.Day(), monthNames[int(t.Month())-1],
		t.Hour(), t.Minute())
}

func parseISO(value string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PriorityEmoji maps a priority level to its display emoji. Levels outside
// the known set map to an empty emoji.
func PriorityEmoji(priority string) string {
	return priorityEmojis[priority]
}

// PriorityColor maps a priority level to its display color, falling back to
// DefaultPriorityColor for unknown levels.
func PriorityColor(priority string) string {
	if color, ok := priorityColors[priority]; ok {
		return color
	}
	return DefaultPriorityColor
}

// CategoryColor maps a category name to a display color. Known categories use
// a fixed table; unknown names are hashed into a fixed palette, so the same
// name always yields the same color across calls and processes.
func CategoryColor(name string) string {
	if color, ok := categoryColors[name]; ok {
		return color
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return fallbackPalette[h.Sum32()%uint32(len(fallbackPalette))]
}

// IsCompleted reports whether a status value counts as completed.
func IsCompleted(status string) bool {
	return status == StatusCompleted || status == statusCompletedFem
}
