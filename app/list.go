package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/timeutil"
	"github.com/ayoisaiah/moodtrack/internal/ui"
)

const (
	noSessionMsg = "No session in progress"
	noBackupsMsg = "No backup files found"
	dateLayout   = "Jan 02, 2006"
)

func formatTime(t *time.Time, clock24 bool) string {
	if t == nil {
		return ""
	}

	return t.Local().Format(dateLayout + " " + timeutil.ClockFormat(clock24))
}

// printStatus prints the persisted session as a two-column table.
func printStatus(w io.Writer, snap *models.Snapshot, clock24 bool) error {
	sess := snap.Session

	rows := [][]string{
		{"Session", sess.ID},
		{"Participant", sess.ParticipantID},
		{"Name", sess.ParticipantName},
		{"Stage", ui.Stage(sess.Stage)},
		{"Started", formatTime(sess.StartTime, clock24)},
		{"Ended", formatTime(sess.EndTime, clock24)},
		{"Responses", fmt.Sprintf("%d", len(snap.Responses))},
	}

	if snap.Prompt != nil {
		rows = append(rows, []string{
			"Prompt deadline",
			formatTime(&snap.Prompt.Deadline, clock24),
		})
	}

	if snap.NextPromptAt != nil {
		rows = append(rows, []string{
			"Next prompt",
			formatTime(snap.NextPromptAt, clock24),
		})
	}

	if snap.Pending != nil {
		rows = append(rows, []string{
			"Upload failed",
			ui.ToneAlert.Paint(snap.Pending.Filename),
		})
	}

	return ui.WriteTable(w, []string{"FIELD", "VALUE"}, rows)
}

// printBackups prints a table of backup files.
func printBackups(w io.Writer, files []string) error {
	tableBody := make([][]string, 0, len(files))

	for i, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return err
		}

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			filepath.Base(f),
			info.ModTime().Format("Jan 02, 2006 03:04 PM"),
			filepath.Dir(f),
		})
	}

	return ui.WriteTable(w, []string{"#", "FILE", "MODIFIED", "DIRECTORY"}, tableBody)
}
