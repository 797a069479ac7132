// Package history provides RunStore implementations for finished workflow
// runs: an in-process store, an on-disk diskv store and a Redis store.
package history

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Sam4587/Workspace-sub000/internal/domain/workflow"
	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// ErrNotFound is returned by Get when no record exists for the id.
var ErrNotFound = &workflow.DomainError{Code: workflow.ErrCodeNotFound, Message: "run record not found"}

func notFound(id string) error {
	return ErrNotFound.WithContext(map[string]interface{}{"run_id": id})
}

func checkRecord(record ports.RunRecord) error {
	if record.ID == "" {
		return workflow.NewDomainError(workflow.ErrCodeValidation, "run record id is required", nil, nil)
	}
	return nil
}

func encode(record ports.RunRecord) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode run record %s: %w", record.ID, err)
	}
	return data, nil
}

func decode(data []byte) (*ports.RunRecord, error) {
	var record ports.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decode run record: %w", err)
	}
	return &record, nil
}

// newestFirst filters records by workflow name (empty matches all), orders
// them by FinishedAt descending and applies limit when positive.
func newestFirst(records []ports.RunRecord, workflowName string, limit int) []ports.RunRecord {
	out := records[:0]
	for _, r := range records {
		if workflowName == "" || r.Workflow == workflowName {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FinishedAt.Equal(out[j].FinishedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].FinishedAt.After(out[j].FinishedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
