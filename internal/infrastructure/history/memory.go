package history

import (
	"context"
	"sync"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

// MemoryStore keeps run records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, record ports.RunRecord) error {
	if err := checkRecord(record); err != nil {
		return err
	}
	data, err := encode(record)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.records[record.ID] = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*ports.RunRecord, error) {
	s.mu.RLock()
	data, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, notFound(id)
	}
	return decode(data)
}

func (s *MemoryStore) List(_ context.Context, workflowName string, limit int) ([]ports.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]ports.RunRecord, 0, len(s.records))
	for _, data := range s.records {
		record, err := decode(data)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return newestFirst(records, workflowName, limit), nil
}

var _ ports.RunStore = (*MemoryStore)(nil)
