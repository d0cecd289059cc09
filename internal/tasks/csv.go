package tasks

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ctsdownloads/tosk-task-manager/internal/utils"
)

// csvHeader is the column layout of the CSV export. It is fixed so
// exports stay interchangeable between devices.
var csvHeader = []string{"ID", "Title", "Duration", "Category", "Priority", "Due Date", "Completed"}

// ExportCSV writes the task list as CSV to path.
func ExportCSV(path string, list []Task) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range list {
		record := []string{
			strconv.Itoa(t.ID),
			t.Title,
			strconv.Itoa(t.Duration),
			t.Category,
			strconv.Itoa(t.Priority),
			t.DueDate,
			formatCompleted(t.Completed),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode CSV: %w", err)
	}

	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return nil
}

// ImportCSV reads a CSV export and returns the full task list it
// describes. The result replaces the current list; CSV import is a
// restore, not a merge.
func ImportCSV(path string) ([]Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return []Task{}, nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"ID", "Title", "Duration"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV is missing the %q column", required)
		}
	}

	field := func(record []string, name, fallback string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return fallback
		}
		return record[i]
	}

	list := make([]Task, 0, len(records)-1)
	for n, record := range records[1:] {
		id, err := strconv.Atoi(strings.TrimSpace(field(record, "ID", "")))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad ID: %w", n+2, err)
		}
		duration, err := strconv.Atoi(strings.TrimSpace(field(record, "Duration", "")))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Duration: %w", n+2, err)
		}
		priority, err := strconv.Atoi(strings.TrimSpace(field(record, "Priority", strconv.Itoa(DefaultPriority))))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad Priority: %w", n+2, err)
		}

		list = append(list, Task{
			ID:        id,
			Title:     field(record, "Title", ""),
			Duration:  duration,
			Category:  field(record, "Category", DefaultCategory),
			Priority:  priority,
			DueDate:   field(record, "Due Date", ""),
			Completed: strings.EqualFold(strings.TrimSpace(field(record, "Completed", "False")), "true"),
		})
	}
	return list, nil
}

// formatCompleted renders booleans capitalized, the form existing
// exports use and expect back.
func formatCompleted(completed bool) string {
	if completed {
		return "True"
	}
	return "False"
}
