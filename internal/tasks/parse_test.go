package tasks

import (
	"errors"
	"testing"
	"time"

	terrors "github.com/ctsdownloads/tosk-task-manager/internal/errors"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Task
	}{
		{
			"title only",
			"Write weekly plan",
			Task{Title: "Write weekly plan", Duration: 60, Category: "General", Priority: 1},
		},
		{
			"all fields",
			"Ship release::120::3::2026-08-25",
			Task{Title: "Ship release", Duration: 120, Category: "General", Priority: 3, DueDate: "2026-08-25"},
		},
		{
			"duration only",
			"Review backlog::45",
			Task{Title: "Review backlog", Duration: 45, Category: "General", Priority: 1},
		},
		{
			"bad duration falls back",
			"Review backlog::soon::2",
			Task{Title: "Review backlog", Duration: 60, Category: "General", Priority: 2},
		},
		{
			"bad priority falls back",
			"Review backlog::45::high",
			Task{Title: "Review backlog", Duration: 45, Category: "General", Priority: 1},
		},
		{
			"whitespace trimmed",
			"  Review backlog :: 45 :: 2 :: 2026-08-25 ",
			Task{Title: "Review backlog", Duration: 45, Category: "General", Priority: 2, DueDate: "2026-08-25"},
		},
		{
			"empty due field",
			"Review backlog::45::2::",
			Task{Title: "Review backlog", Duration: 45, Category: "General", Priority: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSpec(tt.spec)
			if err != nil {
				t.Fatalf("ParseSpec(%q) error = %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseSpec(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseSpecRejections(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want error
	}{
		{"empty spec", "", terrors.ErrInvalidTaskSpec},
		{"whitespace title", "   ::60", terrors.ErrInvalidTaskSpec},
		{"malformed due date", "Ship release::60::1::tomorrow", terrors.ErrInvalidDueDate},
		{"wrong date order", "Ship release::60::1::25-08-2026", terrors.ErrInvalidDueDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSpec(tt.spec)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseSpec(%q) error = %v, want %v", tt.spec, err, tt.want)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 8, 22, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"past due date", Task{DueDate: "2026-08-21"}, true},
		{"due today", Task{DueDate: "2026-08-22"}, false},
		{"future due date", Task{DueDate: "2026-09-01"}, false},
		{"no due date", Task{}, false},
		{"completed task never overdue", Task{DueDate: "2020-01-01", Completed: true}, false},
		{"unparseable due date", Task{DueDate: "someday"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOverdue(tt.task, now); got != tt.want {
				t.Errorf("IsOverdue(%+v) = %v, want %v", tt.task, got, tt.want)
			}
		})
	}
}
