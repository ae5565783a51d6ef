// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/remote"
	"todo/internal/task"
)

// DoneMark prefixes completed tasks.
const DoneMark = "✓ "

// FormatTask formats a numbered task line.
// Format: "{N:>4}  {MARK}{DESCRIPTION}\n" (4-wide right-aligned number, two
// spaces, "✓ " for completed tasks, description)
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s\n", num, TaskLabel(t))
}

// TaskLabel is the display text of a task, with the done mark when completed.
func TaskLabel(t task.Task) string {
	title := normalizeTitle(t.Description)
	if t.Completed {
		return DoneMark + title
	}
	return title
}

// FormatPushReport formats the result of a push.
func FormatPushReport(w io.Writer, list remote.List, report remote.Report) {
	fmt.Fprintf(w, "pushed %d, skipped %d -> %s\n", report.Created, report.Skipped, normalizeTitle(list.Title))
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
