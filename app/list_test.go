package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/moodtrack/internal/models"
)

func TestMain(m *testing.M) {
	disableStyling()

	os.Exit(m.Run())
}

func TestPrintStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	next := start.Add(time.Minute)

	snap := &models.Snapshot{
		Session: models.Session{
			ID:              "2f1d",
			ParticipantID:   "P01",
			ParticipantName: "Ada",
			Stage:           models.StageCollecting,
			StartTime:       &start,
		},
		NextPromptAt: &next,
		Responses:    make([]models.Response, 3),
		Pending:      &models.Payload{Filename: "P01_0101_1003.csv"},
	}

	var buf bytes.Buffer

	require.NoError(t, printStatus(&buf, snap, true))

	out := buf.String()

	assert.Contains(t, out, "P01")
	assert.Contains(t, out, "collecting")
	assert.Contains(t, out, "Jan 01, 2024 10:00:00")
	assert.Contains(t, out, "Jan 01, 2024 10:01:00")
	assert.Contains(t, out, "P01_0101_1003.csv")
	assert.NotContains(t, out, "Prompt deadline")
}

func TestPrintBackups(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "P01_0101_1003.csv")

	require.NoError(t, os.WriteFile(file, []byte("ID,Time\n"), 0o644))

	var buf bytes.Buffer

	require.NoError(t, printBackups(&buf, []string{file}))

	assert.Contains(t, buf.String(), "P01_0101_1003.csv")
	assert.Contains(t, buf.String(), dir)

	assert.Error(t, printBackups(&buf, []string{filepath.Join(dir, "missing.csv")}))
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "b", firstNonEmptyString("", "b", "c"))
	assert.Equal(t, "", firstNonEmptyString("", ""))
}

func TestHelpText(t *testing.T) {
	text := helpText()

	for _, want := range []string{"COMMANDS", "OPTIONS", "MOODTRACK_ENV", "MOODTRACK_DEBUG"} {
		assert.Contains(t, text, want)
	}
}
