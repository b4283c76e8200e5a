package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"style-finder/internal/domain"
)

type mockRedisKV struct {
	data    map[string]string
	ttls    map[string]time.Duration
	deleted []string
	setErr  error
}

func newMockRedisKV() *mockRedisKV {
	return &mockRedisKV{data: make(map[string]string), ttls: make(map[string]time.Duration)}
}

func (m *mockRedisKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	val, ok := m.data[key]
	if !ok {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(val)
	return cmd
}

func (m *mockRedisKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	switch v := value.(type) {
	case []byte:
		m.data[key] = string(v)
	case string:
		m.data[key] = v
	}
	m.ttls[key] = expiration
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKV) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	cmd.SetVal(int64(len(keys)))
	return cmd
}

func storedReport(id, participant string) domain.Report {
	return domain.Report{
		ID:       id,
		Metadata: domain.ReportMetadata{Name: "Ana", ParticipantID: participant},
		Result: domain.ClassificationResult{
			Style:  domain.StyleVisionary,
			Score:  12,
			Totals: domain.StyleTotals{domain.StyleVisionary: 12},
		},
		Document: []byte("%PDF-1.3"),
	}
}

func TestMemoryReportStore_SupersedesPerParticipant(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReportStore(time.Minute)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}

	superseded, err := store.Save(ctx, storedReport("r1", "p1"))
	if err != nil || superseded != "" {
		t.Fatalf("first save: %q, %v", superseded, err)
	}
	superseded, err = store.Save(ctx, storedReport("r2", "p1"))
	if err != nil || superseded != "r1" {
		t.Fatalf("expected r1 superseded, got %q, %v", superseded, err)
	}
	if _, err := store.Get(ctx, "r1"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected superseded report gone, got %v", err)
	}
	latest, err := store.Latest(ctx, "p1")
	if err != nil || latest.ID != "r2" {
		t.Fatalf("expected latest r2, got %+v, %v", latest.ID, err)
	}

	if _, err := store.Save(ctx, storedReport("r3", "p2")); err != nil {
		t.Fatalf("other participant save: %v", err)
	}
	if _, err := store.Get(ctx, "r2"); err != nil {
		t.Fatalf("other participant must not supersede r2: %v", err)
	}
}

func TestMemoryReportStore_Expires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryReportStore(50 * time.Millisecond)
	if _, err := store.Save(ctx, storedReport("r1", "p1")); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(70 * time.Millisecond)
	if _, err := store.Get(ctx, "r1"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected expired report, got %v", err)
	}
	if _, err := store.Latest(ctx, "p1"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected expired latest, got %v", err)
	}
}

func TestMemoryReportStore_RequiresID(t *testing.T) {
	store := NewMemoryReportStore(time.Minute)
	if _, err := store.Save(context.Background(), domain.Report{}); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestRedisReportStore_RoundTripAndSupersede(t *testing.T) {
	ctx := context.Background()
	kv := newMockRedisKV()
	store := newRedisReportStore(kv, 5*time.Minute)

	if _, err := store.Save(ctx, storedReport("r1", "p1")); err != nil {
		t.Fatalf("save r1: %v", err)
	}
	if kv.ttls["report:r1"] != 5*time.Minute || kv.data["report:latest:p1"] != "r1" {
		t.Fatalf("unexpected redis state: %+v", kv.data)
	}

	got, err := store.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("get r1: %v", err)
	}
	if got.Result.Style != domain.StyleVisionary || string(got.Document) != "%PDF-1.3" {
		t.Fatalf("unexpected report: %+v", got)
	}

	superseded, err := store.Save(ctx, storedReport("r2", "p1"))
	if err != nil || superseded != "r1" {
		t.Fatalf("expected r1 superseded, got %q, %v", superseded, err)
	}
	if len(kv.deleted) != 1 || kv.deleted[0] != "report:r1" {
		t.Fatalf("expected report:r1 deleted, got %v", kv.deleted)
	}
	latest, err := store.Latest(ctx, "p1")
	if err != nil || latest.ID != "r2" {
		t.Fatalf("expected latest r2, got %q, %v", latest.ID, err)
	}
}

func TestRedisReportStore_Errors(t *testing.T) {
	ctx := context.Background()
	kv := newMockRedisKV()
	store := newRedisReportStore(kv, time.Minute)

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
	if _, err := store.Latest(ctx, " "); !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound for blank participant, got %v", err)
	}

	kv.setErr = errors.New("redis down")
	if _, err := store.Save(ctx, storedReport("r1", "p1")); err == nil {
		t.Fatalf("expected set error to propagate")
	}

	if NewRedisReportStore(nil, time.Minute) != nil {
		t.Fatalf("expected nil store for nil client")
	}
}
