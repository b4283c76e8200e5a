package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"style-finder/internal/domain"
)

var ErrReportNotFound = errors.New("report not found")

// ReportStore guarda el reporte vivo de cada participante. Guardar un reporte nuevo
// reemplaza al anterior del mismo participante y devuelve el id reemplazado.
type ReportStore interface {
	Save(ctx context.Context, report domain.Report) (superseded string, err error)
	Get(ctx context.Context, id string) (domain.Report, error)
	Latest(ctx context.Context, participantID string) (domain.Report, error)
}

type memoryEntry struct {
	report  domain.Report
	expires time.Time
}

type memoryReportStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	reports map[string]memoryEntry
	latest  map[string]string
}

func NewMemoryReportStore(ttl time.Duration) ReportStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &memoryReportStore{
		ttl:     ttl,
		reports: make(map[string]memoryEntry),
		latest:  make(map[string]string),
	}
}

func (s *memoryReportStore) Save(_ context.Context, report domain.Report) (string, error) {
	if strings.TrimSpace(report.ID) == "" {
		return "", errors.New("report id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for id, entry := range s.reports {
		if now.After(entry.expires) {
			delete(s.reports, id)
		}
	}
	s.reports[report.ID] = memoryEntry{report: report, expires: now.Add(s.ttl)}
	participant := strings.TrimSpace(report.Metadata.ParticipantID)
	if participant == "" {
		return "", nil
	}
	prev := s.latest[participant]
	s.latest[participant] = report.ID
	if prev == "" || prev == report.ID {
		return "", nil
	}
	delete(s.reports, prev)
	return prev, nil
}

func (s *memoryReportStore) Get(_ context.Context, id string) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(id)
}

func (s *memoryReportStore) getLocked(id string) (domain.Report, error) {
	entry, ok := s.reports[id]
	if !ok {
		return domain.Report{}, ErrReportNotFound
	}
	if time.Now().UTC().After(entry.expires) {
		delete(s.reports, id)
		return domain.Report{}, ErrReportNotFound
	}
	return entry.report, nil
}

func (s *memoryReportStore) Latest(_ context.Context, participantID string) (domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.latest[strings.TrimSpace(participantID)]
	if !ok {
		return domain.Report{}, ErrReportNotFound
	}
	return s.getLocked(id)
}

type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisReportStore struct {
	client redisKV
	ttl    time.Duration
	prefix string
}

func NewRedisReportStore(client *redis.Client, ttl time.Duration) ReportStore {
	if client == nil {
		return nil
	}
	return newRedisReportStore(client, ttl)
}

func newRedisReportStore(client redisKV, ttl time.Duration) *redisReportStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisReportStore{
		client: client,
		ttl:    ttl,
		prefix: "report:",
	}
}

func (s *redisReportStore) reportKey(id string) string {
	return s.prefix + id
}

func (s *redisReportStore) latestKey(participantID string) string {
	return s.prefix + "latest:" + participantID
}

func (s *redisReportStore) Save(ctx context.Context, report domain.Report) (string, error) {
	if strings.TrimSpace(report.ID) == "" {
		return "", errors.New("report id is required")
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, s.reportKey(report.ID), payload, s.ttl).Err(); err != nil {
		return "", err
	}

	participant := strings.TrimSpace(report.Metadata.ParticipantID)
	if participant == "" {
		return "", nil
	}
	prev, err := s.client.Get(ctx, s.latestKey(participant)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	if err := s.client.Set(ctx, s.latestKey(participant), report.ID, s.ttl).Err(); err != nil {
		return "", err
	}
	if prev == "" || prev == report.ID {
		return "", nil
	}
	// Si el borrado falla la clave expira sola con el TTL.
	_ = s.client.Del(ctx, s.reportKey(prev)).Err()
	return prev, nil
}

func (s *redisReportStore) Get(ctx context.Context, id string) (domain.Report, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Report{}, ErrReportNotFound
	}
	raw, err := s.client.Get(ctx, s.reportKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Report{}, ErrReportNotFound
	}
	if err != nil {
		return domain.Report{}, err
	}
	var report domain.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

func (s *redisReportStore) Latest(ctx context.Context, participantID string) (domain.Report, error) {
	participant := strings.TrimSpace(participantID)
	if participant == "" {
		return domain.Report{}, ErrReportNotFound
	}
	id, err := s.client.Get(ctx, s.latestKey(participant)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Report{}, ErrReportNotFound
	}
	if err != nil {
		return domain.Report{}, err
	}
	return s.Get(ctx, id)
}
