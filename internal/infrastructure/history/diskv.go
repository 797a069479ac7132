package history

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// DiskvStore persists each run record as a JSON file under a base directory.
type DiskvStore struct {
	diskv *diskv.Diskv
}

// NewDiskvStore creates a store rooted at filepath.Join(path, "runs").
func NewDiskvStore(path string) *DiskvStore {
	flatTransform := func(s string) []string { return []string{} }
	return &DiskvStore{
		diskv: diskv.New(diskv.Options{
			BasePath:     filepath.Join(path, "runs"),
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024,
		}),
	}
}

func (s *DiskvStore) Save(_ context.Context, record ports.RunRecord) error {
	if err := checkRecord(record); err != nil {
		return err
	}
	data, err := encode(record)
	if err != nil {
		return err
	}
	if err := s.diskv.Write(record.ID, data); err != nil {
		return fmt.Errorf("write run record %s: %w", record.ID, err)
	}
	return nil
}

func (s *DiskvStore) Get(_ context.Context, id string) (*ports.RunRecord, error) {
	if id == "" || !s.diskv.Has(id) {
		return nil, notFound(id)
	}
	data, err := s.diskv.Read(id)
	if err != nil {
		return nil, fmt.Errorf("read run record %s: %w", id, err)
	}
	return decode(data)
}

func (s *DiskvStore) List(ctx context.Context, workflowName string, limit int) ([]ports.RunRecord, error) {
	cancel := make(chan struct{})
	defer close(cancel)

	var records []ports.RunRecord
	for key := range s.diskv.Keys(cancel) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := s.diskv.Read(key)
		if err != nil {
			return nil, fmt.Errorf("read run record %s: %w", key, err)
		}
		record, err := decode(data)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return newestFirst(records, workflowName, limit), nil
}

var _ ports.RunStore = (*DiskvStore)(nil)
