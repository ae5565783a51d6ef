package output_test

import (
	"bytes"
	"testing"

	"todo/internal/output"
	"todo/internal/remote"
	"todo/internal/task"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task task.Task
		want string
	}{
		{name: "open", num: 1, task: task.Task{Description: "buy milk"}, want: "   1  buy milk\n"},
		{name: "completed", num: 12, task: task.Task{Description: "call mom", Completed: true}, want: "  12  ✓ call mom\n"},
		{name: "blank", num: 3, task: task.Task{Description: "  "}, want: "   3  (untitled)\n"},
		{name: "wide number", num: 12345, task: task.Task{Description: "x"}, want: "12345  x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			output.FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatPushReport(t *testing.T) {
	var buf bytes.Buffer
	output.FormatPushReport(&buf, remote.List{Title: "Groceries"}, remote.Report{Created: 2, Skipped: 1})
	want := "pushed 2, skipped 1 -> Groceries\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
