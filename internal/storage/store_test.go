package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/deepshow/internal/sim"
)

func sampleFrames() []FrameRecord {
	return []FrameRecord{
		{Frame: 0, Time: 0, Scene: 1, Elapsed: 0},
		{Frame: 1, Time: 0.5, Scene: 2, Elapsed: 0, From: 1, To: 2, Progress: 0.25},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Format: "gif", Width: 640, Height: 480, FPS: 12, Frames: 2, Scenes: 6}, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Format != "gif" || meta.Width != 640 || meta.FPS != 12 {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Timestamp.IsZero() {
		t.Error("timestamp not filled in")
	}

	frames, err := st.LoadTimeline(runID)
	if err != nil {
		t.Fatalf("load timeline failed: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(frames))
	}
	if frames[1] != sampleFrames()[1] {
		t.Errorf("frame 1 = %+v", frames[1])
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "new"} {
		meta := RunMetadata{ID: id, Format: "png", Timestamp: base.Add(time.Duration(i) * time.Hour)}
		if _, err := st.Save(meta, nil); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != "new" {
		t.Errorf("expected newest first, got %s", runs[0].ID)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{Format: "mp4"}, sampleFrames())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "timeline.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("Load: expected ErrNoRun, got %v", err)
	}
	if _, err := st.LoadTimeline("nope"); !errors.Is(err, ErrNoRun) {
		t.Errorf("LoadTimeline: expected ErrNoRun, got %v", err)
	}
}

func TestTimelineSkipsMalformedRows(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{ID: "r", Format: "png"}, sampleFrames())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(tmpDir, runID, "timeline.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("x,0,1,0,0,0,0\n3,0.1\n")
	f.Close()

	frames, err := st.LoadTimeline(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 2 {
		t.Errorf("expected 2 frames, got %d", len(frames))
	}
}

func TestWriteSignal(t *testing.T) {
	cfg := sim.Config{Dt: 0.1, Duration: 0.2}
	result := &sim.Result{
		Times:      []float64{0, 0.1},
		Pressure:   []float64{0.2, 0.25},
		Effort:     []float64{0.5, 0.6},
		Metrics:    map[string]float64{"iae": 0.03},
		StepsTaken: 2,
	}

	var buf bytes.Buffer
	if err := WriteSignal(&buf, NewSignalExport("pid", 0.4, cfg, result)); err != nil {
		t.Fatal(err)
	}

	var got []SignalExport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Controller != "pid" || got[0].Steps != 2 {
		t.Fatalf("unexpected export %+v", got)
	}
	if got[0].Metrics["iae"] != 0.03 {
		t.Errorf("iae = %v", got[0].Metrics["iae"])
	}
}

func TestExportSignalEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signal.json")
	if err := ExportSignal(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(bytes.TrimSpace(data)) != "[]" {
		t.Errorf("got %q", data)
	}
}
