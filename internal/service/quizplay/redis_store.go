package quizplay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/trivia-catalog/internal/domain/entity"
)

// sessionClient: подмножество redis.UniversalClient, которое нужно RedisStore
type sessionClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore хранит сессии в Redis, что позволяет обслуживать одну сессию несколькими инстансами.
// Данные сессии лежат в JSON-ключе, а выданные вопросы хранятся в SET.
// Запись выбора делается через SADD: 0 означает, что вопрос уже забрал конкурентный вызов,
// и тогда пул пересчитывается заново.
type RedisStore struct {
	client sessionClient
	ttl    time.Duration
	ctx    context.Context
	intn   IntnFunc
}

// NewRedisStore создает хранилище сессий в Redis
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for RedisStore")
	}
	return newRedisStore(client, ttl), nil
}

func newRedisStore(client sessionClient, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		ctx:    context.Background(),
		intn:   defaultIntn,
	}
}

func infoKey(id string) string   { return fmt.Sprintf("quiz:session:%s", id) }
func servedKey(id string) string { return fmt.Sprintf("quiz:session:%s:served", id) }

// Create сохраняет данные сессии
func (s *RedisStore) Create(info Info) error {
	data, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return s.client.Set(s.ctx, infoKey(info.ID), data, s.ttl).Err()
}

// Get возвращает данные сессии
func (s *RedisStore) Get(id string) (*Info, error) {
	data, err := s.client.Get(s.ctx, infoKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sessionNotFound(id)
		}
		return nil, err
	}

	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to decode quiz session %s: %w", id, err)
	}
	return &info, nil
}

// Draw выбирает следующий вопрос и атомарно фиксирует его через SADD
func (s *RedisStore) Draw(id string, scope []entity.Question) (*entity.Question, bool, error) {
	// Каждая неудачная попытка означает, что множество выданных выросло,
	// поэтому len(scope)+1 попыток всегда достаточно
	for attempt := 0; attempt <= len(scope); attempt++ {
		served, err := s.servedSet(id)
		if err != nil {
			return nil, false, err
		}

		picked, ok := PickUniform(CandidatePool(scope, served), s.intn)
		if !ok {
			return nil, false, nil
		}

		added, err := s.client.SAdd(s.ctx, servedKey(id), picked.ID).Result()
		if err != nil {
			return nil, false, fmt.Errorf("failed to record question %d for session %s: %w", picked.ID, id, err)
		}
		if added == 0 {
			log.Printf("[QuizPlay] Вопрос ID=%d уже выдан в сессии %s конкурентным запросом, повторяем выбор", picked.ID, id)
			continue
		}

		s.refreshTTL(id)
		return &picked, true, nil
	}

	return nil, false, fmt.Errorf("quiz session %s: could not claim a question after %d attempts", id, len(scope)+1)
}

// Served возвращает выданные вопросы (SET не хранит порядок, результат отсортирован по ID)
func (s *RedisStore) Served(id string) ([]uint, error) {
	served, err := s.servedSet(id)
	if err != nil {
		return nil, err
	}
	result := make([]uint, 0, len(served))
	for qid := range served {
		result = append(result, qid)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result, nil
}

// Delete удаляет сессию и ее множество выданных вопросов
func (s *RedisStore) Delete(id string) error {
	removed, err := s.client.Del(s.ctx, infoKey(id), servedKey(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return sessionNotFound(id)
	}
	return nil
}

func (s *RedisStore) servedSet(id string) (map[uint]struct{}, error) {
	members, err := s.client.SMembers(s.ctx, servedKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read served questions for session %s: %w", id, err)
	}

	served := make(map[uint]struct{}, len(members))
	for _, m := range members {
		qid, err := strconv.ParseUint(m, 10, 64)
		if err != nil {
			log.Printf("[QuizPlay] WARNING: некорректный ID вопроса %q в сессии %s", m, id)
			continue
		}
		served[uint(qid)] = struct{}{}
	}
	return served, nil
}

func (s *RedisStore) refreshTTL(id string) {
	if s.ttl <= 0 {
		return
	}
	for _, key := range []string{infoKey(id), servedKey(id)} {
		if err := s.client.Expire(s.ctx, key, s.ttl).Err(); err != nil {
			log.Printf("[QuizPlay] WARNING: не удалось продлить TTL ключа %s: %v", key, err)
		}
	}
}
