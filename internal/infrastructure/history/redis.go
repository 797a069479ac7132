package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Sam4587/Workspace-sub000/internal/ports"
)

const defaultRedisPrefix = "contentflow"

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithPrefix sets the key prefix shared by records and indexes.
func WithPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// RedisStore stores records as JSON strings and keeps sorted-set indexes
// scored by finish time, one overall and one per workflow. The caller owns
// the client lifecycle.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisStore(client redis.Cmdable, opts ...RedisOption) *RedisStore {
	s := &RedisStore{client: client, prefix: defaultRedisPrefix}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Ping verifies the Redis connection is alive.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) recordKey(id string) string { return s.prefix + ":run:" + id }
func (s *RedisStore) allKey() string             { return s.prefix + ":runs" }
func (s *RedisStore) workflowKey(name string) string {
	return s.prefix + ":runs:" + name
}

func (s *RedisStore) Save(ctx context.Context, record ports.RunRecord) error {
	if err := checkRecord(record); err != nil {
		return err
	}
	data, err := encode(record)
	if err != nil {
		return err
	}

	member := redis.Z{Score: float64(record.FinishedAt.UnixNano()), Member: record.ID}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.recordKey(record.ID), data, 0)
	pipe.ZAdd(ctx, s.allKey(), member)
	pipe.ZAdd(ctx, s.workflowKey(record.Workflow), member)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("history/redis: save run %s: %w", record.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*ports.RunRecord, error) {
	data, err := s.client.Get(ctx, s.recordKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("history/redis: get run %s: %w", id, err)
	}
	return decode(data)
}

func (s *RedisStore) List(ctx context.Context, workflowName string, limit int) ([]ports.RunRecord, error) {
	index := s.allKey()
	if workflowName != "" {
		index = s.workflowKey(workflowName)
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, index, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("history/redis: list runs: %w", err)
	}
	if len(ids) == 0 {
		return []ports.RunRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.recordKey(id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("history/redis: load runs: %w", err)
	}

	records := make([]ports.RunRecord, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Record expired or was removed out of band.
			continue
		}
		record, err := decode([]byte(raw))
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

var _ ports.RunStore = (*RedisStore)(nil)
