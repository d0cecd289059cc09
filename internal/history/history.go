package history

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ctsdownloads/tosk-task-manager/internal/configs"
)

// Operation names recorded in the history log.
const (
	OpInit       = "INIT"
	OpAdd        = "ADD"
	OpEdit       = "EDIT"
	OpDelete     = "DELETE"
	OpToggle     = "TOGGLE_COMPLETION"
	OpSetDueDate = "SET_DUE_DATE"
	OpImportCSV  = "IMPORT_CSV"
	OpImportText = "IMPORT_TEXT"
	OpExportCSV  = "EXPORT_CSV"
	OpBackup     = "BACKUP_PUSH"
	OpRestore    = "BACKUP_PULL"
)

// Entry represents a single history log entry.
type Entry struct {
	Timestamp string `json:"ts"`     // RFC3339 with microseconds.
	Device    string `json:"device"` // Device performing the action.
	Operation string `json:"op"`     // Operation name.

	// Optional fields depending on operation.
	TaskID int    `json:"task_id,omitempty"` // For single-task operations.
	Title  string `json:"title,omitempty"`   // For single-task operations.
	Count  int    `json:"count,omitempty"`   // For imports.
	File   string `json:"file,omitempty"`    // For backup operations.
}

// Log appends an entry to the history log.
// Logging is best-effort: a planner action never fails because the
// history could not be written.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := configs.ToskWorkspaceSettings.HistoryFilePath
	if logPath == "" {
		// No workspace, nowhere to log.
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ForDevice returns an entry pre-populated with the device name from
// the workspace configuration.
func ForDevice(op string) Entry {
	entry := Entry{Operation: op, Device: "unknown"}

	config, err := configs.LoadWorkspaceConfig()
	if err != nil {
		return entry
	}
	entry.Device = config.Workspace.Device
	return entry
}

// ReadEntries reads all entries from the history log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	logPath := configs.ToskWorkspaceSettings.HistoryFilePath
	if logPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into history entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
