package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"dansebakken_backend/internals/helpers/timeutil"
)

// Historical registration files exist in two broken shapes:
//   - timestamps in the old US locale format ("1/2/2026, 3:04:05 PM")
//   - supported-member rows with the relation text written into the
//     SkillLevel column and an empty Notes column
// MigrateLegacy rewrites such a file into the canonical layout and reports
// how many rows it changed. Running it on a clean file changes nothing.
func MigrateLegacy(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("csvstore: open %s: %w", path, err)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	f.Close()
	if err != nil {
		return 0, fmt.Errorf("csvstore: read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	out := [][]string{RegistrationHeaders}
	changed := 0
	for i, row := range rows {
		if i == 0 && looksLikeHeader(row) {
			continue
		}
		fixed, didChange := normalizeRow(row)
		if didChange {
			changed++
		}
		out = append(out, fixed)
	}
	if changed == 0 && looksLikeHeader(rows[0]) && len(rows[0]) == len(RegistrationHeaders) {
		return 0, nil
	}

	tmp := path + ".tmp"
	tf, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("csvstore: create %s: %w", tmp, err)
	}
	w := csv.NewWriter(tf)
	if err := w.WriteAll(out); err != nil {
		tf.Close()
		return 0, fmt.Errorf("csvstore: rewrite %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tf.Close()
		return 0, fmt.Errorf("csvstore: rewrite %s: %w", path, err)
	}
	if err := tf.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, fmt.Errorf("csvstore: replace %s: %w", path, err)
	}
	return changed, nil
}

func looksLikeHeader(row []string) bool {
	return len(row) > 0 && row[0] == "Timestamp"
}

// Old frontend builds wrote Date.toLocaleString() with the en-US default.
const legacyStampLayout = "1/2/2006, 3:04:05 PM"

func normalizeRow(row []string) ([]string, bool) {
	changed := false

	fixed := make([]string, len(RegistrationHeaders))
	copy(fixed, row)
	if len(row) != len(RegistrationHeaders) {
		changed = true
	}

	// both layouts are wall-clock Oslo time, so reformat without shifting
	if t, err := time.Parse(legacyStampLayout, fixed[0]); err == nil {
		fixed[0] = t.Format(timeutil.StampLayout)
		changed = true
	}

	// supported rows: relation text parked in SkillLevel, Notes empty
	if fixed[5] == "supported" && fixed[8] == "" && fixed[7] != "" {
		fixed[8] = fixed[7]
		fixed[7] = ""
		changed = true
	}

	return fixed, changed
}
