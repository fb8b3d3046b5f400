package upload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/moodtrack/internal/models"
	"github.com/ayoisaiah/moodtrack/internal/series"
	"github.com/ayoisaiah/moodtrack/internal/testutil"
)

var (
	metricNames = []string{"Q1", "Q2", "Traffic"}

	preQuestions = []models.Question{
		{Key: "age", Label: "Age"},
		{Key: "gender", Label: "Gender"},
		{Key: "sleep", Label: "Hours slept last night"},
	}

	postQuestions = []models.Question{
		{Key: "fatigue", Label: "How tired are you now (1-9)?"},
		{Key: "notes", Label: "Anything unusual during the activity?"},
	}
)

type buildTest struct {
	Name   string
	Record Record
	out    []byte
}

func (bt buildTest) Output() ([]byte, string) {
	return bt.out, bt.Name
}

func scenarioARecord(t *testing.T) Record {
	t.Helper()

	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(3 * time.Minute)

	log := []models.Response{
		{
			PromptTime: start.Add(12 * time.Second),
			Metrics: models.Metrics{
				"Q1":      models.Score(7),
				"Q2":      models.Score(5),
				"Traffic": models.Score(3),
			},
		},
		{
			PromptTime: start.Add(2*time.Minute + 5*time.Second),
			Metrics: models.Metrics{
				"Q1":      models.Score(4),
				"Q2":      models.NA,
				"Traffic": models.Score(9),
			},
		},
	}

	s, err := series.Reconstruct(log, &start, &end, "P01", metricNames)
	require.NoError(t, err)

	return Record{
		Location:        time.UTC,
		ParticipantID:   "P01",
		ParticipantName: "Ada",
		Series:          s,
		Metrics:         metricNames,
		PreQuestions:    preQuestions,
		PostQuestions:   postQuestions,
		Pre: models.Answers{
			"age":    "29",
			"gender": "F",
			"sleep":  "7",
		},
		Post: models.Answers{
			"fatigue": "6",
			"notes":   "Stuck in traffic, arrived late",
		},
	}
}

func TestBuild(t *testing.T) {
	bt := buildTest{
		Name:   "scenario_a",
		Record: scenarioARecord(t),
	}

	p, err := Build(bt.Record)
	require.NoError(t, err)

	assert.Equal(t, "P01_0101_1003.csv", p.Filename)

	bt.out = []byte(p.CSVContent)

	testutil.CompareGoldenFile(t, bt)
}

func TestBuildEmptySeries(t *testing.T) {
	_, err := Build(Record{ParticipantID: "P01", Metrics: metricNames})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFilenameUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*60*60)
	minute := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, "P07_0310_0759.csv", Filename("P07", minute, loc))
	assert.Equal(t, "P07_0309_2359.csv", Filename("P07", minute, time.UTC))
}

func TestFilenameStripsPathElements(t *testing.T) {
	minute := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"team/P01":   "team-P01_0101_1000.csv",
		"../escaped": "--escaped_0101_1000.csv",
		`win\P02`:    "win-P02_0101_1000.csv",
		"a..b":       "a-b_0101_1000.csv",
	}

	for id, want := range cases {
		assert.Equal(t, want, Filename(id, minute, time.UTC), id)
	}
}

func TestWriteBackupStaysInDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "backups")
	minute := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	for _, id := range []string{"../escaped", "team/P01"} {
		path, err := WriteBackup(dir, models.Payload{
			CSVContent: "ID,Time\n",
			Filename:   Filename(id, minute, time.UTC),
		})
		require.NoError(t, err, id)

		assert.Equal(t, dir, filepath.Dir(path), id)
		assert.FileExists(t, path)
	}

	path, err := WriteBackup(dir, models.Payload{Filename: "../../outside.csv"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "outside.csv"), path)
	assert.NoFileExists(t, filepath.Join(root, "outside.csv"))
}

func TestDeliverSuccess(t *testing.T) {
	var got models.Payload

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			_, _ = w.Write([]byte("Saved P01_0101_1003.csv\n"))
		}),
	)
	defer srv.Close()

	p := models.Payload{CSVContent: "ID,Time\n", Filename: "P01_0101_1003.csv"}

	ack, err := NewDeliverer(srv.URL, 5*time.Second).Deliver(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "Saved P01_0101_1003.csv\n", ack)
	assert.Equal(t, p, got)
}

func TestDeliverFailure(t *testing.T) {
	calls := 0

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls++

			http.Error(w, "quota exceeded", http.StatusInternalServerError)
		}),
	)
	defer srv.Close()

	p := models.Payload{CSVContent: "ID,Time\n", Filename: "P01.csv"}

	_, err := NewDeliverer(srv.URL, 5*time.Second).Deliver(context.Background(), p)
	require.ErrorIs(t, err, ErrDelivery)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, 1, calls)
}

func TestDeliverTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewDeliverer(url, time.Second).Deliver(
		context.Background(),
		models.Payload{Filename: "P01.csv"},
	)
	assert.ErrorIs(t, err, ErrDelivery)
}

func TestDeliverWithoutEndpoint(t *testing.T) {
	_, err := NewDeliverer("", time.Second).Deliver(
		context.Background(),
		models.Payload{Filename: "P01.csv"},
	)
	assert.ErrorIs(t, err, ErrDelivery)
	assert.ErrorIs(t, err, errNoEndpoint)
}

func TestWriteAndListBackups(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backups")

	for _, name := range []string{"P10_0101_1003.csv", "P2_0101_1003.csv", "P1_0101_1003.csv"} {
		path, err := WriteBackup(dir, models.Payload{CSVContent: "ID,Time\n", Filename: name})
		require.NoError(t, err)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "ID,Time\n", string(b))
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))

	files, err := ListBackups(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "P1_0101_1003.csv"),
		filepath.Join(dir, "P2_0101_1003.csv"),
		filepath.Join(dir, "P10_0101_1003.csv"),
	}, files)
}

func TestListBackupsMissingDir(t *testing.T) {
	files, err := ListBackups(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}
