package csvstore

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	require.NoError(t, err)
	return rows
}

func regRow(ts, name, email string) []string {
	return []string{ts, name, email, "", "", "active", "Thursday", "Beginner", "", "349", "pending"}
}

func TestAppendRegistrationBootstrapsHeaders(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.AppendRegistration(regRow("01.02.2026 10:00", "Jane Doe", "jane@example.com")))

	rows := readAll(t, store.RegistrationsPath())
	require.Len(t, rows, 2)
	assert.Equal(t, RegistrationHeaders, rows[0])
	assert.Equal(t, "Jane Doe", rows[1][1])
}

func TestAppendRegistrationKeepsAppending(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.AppendRegistration(regRow("01.02.2026 10:00", "Jane", "jane@example.com")))
	require.NoError(t, store.AppendRegistration(regRow("01.02.2026 10:05", "Ola", "ola@example.com")))

	rows := readAll(t, store.RegistrationsPath())
	require.Len(t, rows, 3)
	// headers are written once only
	assert.Equal(t, RegistrationHeaders, rows[0])
	assert.Equal(t, "Jane", rows[1][1])
	assert.Equal(t, "Ola", rows[2][1])
}

func TestAppendFeedback(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.AppendFeedback([]string{"01.02.2026 10:00", "yes", "", "", "Great classes!"}))

	rows := readAll(t, store.FeedbackPath())
	require.Len(t, rows, 2)
	assert.Equal(t, FeedbackHeaders, rows[0])
	assert.Equal(t, "Great classes!", rows[1][4])
}

func TestMigrateLegacyMissingFileIsNoop(t *testing.T) {
	n, err := MigrateLegacy(filepath.Join(t.TempDir(), "registrations.csv"))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMigrateLegacyReformatsAndReorders(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registrations.csv")
	legacy := [][]string{
		RegistrationHeaders,
		// old US-locale timestamp
		{"2/1/2026, 3:04:05 PM", "Jane", "jane@example.com", "", "", "active", "Thursday", "Beginner", "likes hip hop", "349", "pending"},
		// supported row with the relation text parked in SkillLevel
		{"01.02.2026 10:00", "Kari", "kari@example.com", "", "", "supported", "", "Grandmother of Ola", "", "50", "paid"},
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, csv.NewWriter(f).WriteAll(legacy))
	require.NoError(t, f.Close())

	n, err := MigrateLegacy(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, RegistrationHeaders, rows[0])
	assert.Equal(t, "01.02.2026 15:04", rows[1][0])
	assert.Equal(t, "likes hip hop", rows[1][8])
	assert.Equal(t, "", rows[2][7])
	assert.Equal(t, "Grandmother of Ola", rows[2][8])
}

func TestMigrateLegacyIdempotent(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.AppendRegistration(regRow("01.02.2026 10:00", "Jane", "jane@example.com")))

	n, err := MigrateLegacy(store.RegistrationsPath())
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = MigrateLegacy(store.RegistrationsPath())
	require.NoError(t, err)
	assert.Zero(t, n)
}
