// Local fallback persistence. When Google Sheets is unreachable or not
// configured, submissions land in append-only CSV files with the same
// column layout as the sheet tabs.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Canonical column layouts. The sheet tabs use the same headers, so a row
// built for one target fits the other.
var (
	RegistrationHeaders = []string{
		"Timestamp", "Name", "Email", "Phone", "DateOfBirth",
		"MemberType", "ClassSelection", "SkillLevel", "Notes",
		"PaymentAmount", "PaymentStatus",
	}
	FeedbackHeaders = []string{
		"Timestamp", "Anonymous", "Name", "Email", "Feedback",
	}
)

type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) RegistrationsPath() string {
	return filepath.Join(s.dir, "registrations.csv")
}

func (s *Store) FeedbackPath() string {
	return filepath.Join(s.dir, "feedback.csv")
}

func (s *Store) AppendRegistration(row []string) error {
	return s.appendRow(s.RegistrationsPath(), RegistrationHeaders, row)
}

func (s *Store) AppendFeedback(row []string) error {
	return s.appendRow(s.FeedbackPath(), FeedbackHeaders, row)
}

// appendRow appends one record, creating the file with its header row first
// when it does not exist yet. Single writer process, no locking.
func (s *Store) appendRow(path string, headers, row []string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("csvstore: create data dir: %w", err)
	}

	_, statErr := os.Stat(path)
	fresh := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("csvstore: open %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(headers); err != nil {
			return fmt.Errorf("csvstore: write headers: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("csvstore: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("csvstore: flush %s: %w", path, err)
	}
	return nil
}
