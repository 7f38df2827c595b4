package home

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeCronStore(t *testing.T, h *Home, content string) {
	t.Helper()
	path := h.CronStorePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir cron dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write cron store: %v", err)
	}
}

func TestReadCronJobsMissing(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())

	store, err := h.ReadCronJobs()
	if err != nil {
		t.Fatalf("ReadCronJobs() error: %v", err)
	}
	if store["version"] != nil {
		t.Errorf("expected null version, got %v", store["version"])
	}
	jobs, ok := store["jobs"].([]interface{})
	if !ok || len(jobs) != 0 {
		t.Errorf("expected empty jobs, got %v", store["jobs"])
	}
}

func TestReadCronJobsPassthrough(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())
	writeCronStore(t, h, `{"version": 2, "jobs": [{"id": "j1", "schedule": "* * * * *", "custom": true}]}`)

	store, err := h.ReadCronJobs()
	if err != nil {
		t.Fatalf("ReadCronJobs() error: %v", err)
	}
	if v, ok := store["version"].(float64); !ok || v != 2 {
		t.Errorf("expected version 2, got %v", store["version"])
	}
	jobs, ok := store["jobs"].([]interface{})
	if !ok || len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %v", store["jobs"])
	}
	job := jobs[0].(map[string]interface{})
	if job["custom"] != true {
		t.Error("expected unknown job fields to pass through")
	}
}

func TestReadCronJobsCorrupt(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())
	writeCronStore(t, h, "{nope")

	store, err := h.ReadCronJobs()
	if err != nil {
		t.Fatalf("ReadCronJobs() error: %v", err)
	}
	if store["version"] != nil {
		t.Errorf("expected null version for corrupt store, got %v", store["version"])
	}
}

func TestDeleteCronJob(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())
	writeCronStore(t, h, `{"jobs": [{"id": "keep", "note": "stays"}, {"id": "drop"}]}`)

	removed, err := h.DeleteCronJob("drop")
	if err != nil {
		t.Fatalf("DeleteCronJob() error: %v", err)
	}
	if !removed {
		t.Fatal("expected job to be removed")
	}

	data, err := os.ReadFile(h.CronStorePath())
	if err != nil {
		t.Fatalf("reading rewritten store: %v", err)
	}
	var store map[string]interface{}
	if err := json.Unmarshal(data, &store); err != nil {
		t.Fatalf("rewritten store is not valid JSON: %v", err)
	}
	jobs := store["jobs"].([]interface{})
	if len(jobs) != 1 {
		t.Fatalf("expected 1 surviving job, got %d", len(jobs))
	}
	if jobs[0].(map[string]interface{})["note"] != "stays" {
		t.Error("expected surviving job fields to be preserved")
	}
	if v, ok := store["version"].(float64); !ok || v != 1 {
		t.Errorf("expected version 1 to be added, got %v", store["version"])
	}
}

func TestDeleteCronJobNoMatch(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())
	original := `{"version": 3, "jobs": [{"id": "a"}]}`
	writeCronStore(t, h, original)

	removed, err := h.DeleteCronJob("missing")
	if err != nil {
		t.Fatalf("DeleteCronJob() error: %v", err)
	}
	if removed {
		t.Error("expected no removal")
	}

	data, _ := os.ReadFile(h.CronStorePath())
	if string(data) != original {
		t.Error("expected store to be untouched when nothing matched")
	}
}

func TestDeleteCronJobMissingStore(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())

	removed, err := h.DeleteCronJob("anything")
	if err != nil {
		t.Fatalf("DeleteCronJob() error: %v", err)
	}
	if removed {
		t.Error("expected no removal when store is missing")
	}
}

func TestDeleteCronJobInvalidStore(t *testing.T) {
	t.Parallel()
	h := New(t.TempDir())

	for _, content := range []string{`{"jobs": "not an array"}`, `{"version": 1}`, `[1, 2, 3]`} {
		writeCronStore(t, h, content)
		if _, err := h.DeleteCronJob("x"); err == nil {
			t.Errorf("expected invalid store error for %q", content)
		}
	}
}
