package home

import (
	"encoding/json"
	"fmt"
	"os"
)

// ErrInvalidCronStore is returned when the cron store exists but does not
// hold a jobs array.
var ErrInvalidCronStore = fmt.Errorf("invalid cron store")

// ReadCronJobs returns the cron store normalized to a map with "version"
// and "jobs" keys. A missing or unreadable store resolves to a null
// version and no jobs. Job entries pass through untouched, unknown fields
// included.
func (h *Home) ReadCronJobs() (map[string]interface{}, error) {
	empty := map[string]interface{}{"version": nil, "jobs": []interface{}{}}

	data, err := os.ReadFile(h.CronStorePath())
	if err != nil {
		return empty, nil
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		parsed = map[string]interface{}{}
	}

	out := map[string]interface{}{"version": nil, "jobs": []interface{}{}}
	if v, ok := parsed["version"]; ok {
		out["version"] = v
	}
	if jobs, ok := parsed["jobs"]; ok {
		out["jobs"] = jobs
	}
	return out, nil
}

// DeleteCronJob removes the job with the given id from the cron store and
// reports whether anything was removed. The rewritten store keeps every
// other job byte-for-byte in structure and gains a version if it had none.
func (h *Home) DeleteCronJob(id string) (bool, error) {
	path := h.CronStorePath()
	data, err := os.ReadFile(path)
	if err != nil {
		return false, nil
	}

	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		parsed = map[string]interface{}{"version": 1, "jobs": []interface{}{}}
	}
	store, ok := parsed.(map[string]interface{})
	if !ok {
		return false, ErrInvalidCronStore
	}
	jobs, ok := store["jobs"].([]interface{})
	if !ok {
		return false, ErrInvalidCronStore
	}

	kept := make([]interface{}, 0, len(jobs))
	for _, job := range jobs {
		if m, isMap := job.(map[string]interface{}); isMap {
			if jid, isStr := m["id"].(string); isStr && jid == id {
				continue
			}
		}
		kept = append(kept, job)
	}
	if len(kept) == len(jobs) {
		return false, nil
	}

	store["jobs"] = kept
	if _, ok := store["version"]; !ok {
		store["version"] = 1
	}
	out, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return false, fmt.Errorf("encode cron store: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return false, fmt.Errorf("write cron store: %w", err)
	}
	return true, nil
}
