package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SimulationQuota limita la cantidad de simulaciones por usuario y mes.
// limit <= 0 significa ilimitado.
type SimulationQuota interface {
	Allow(userID string, limit int) bool
}

type memorySimulationQuota struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemorySimulationQuota crea un contador mensual en memoria.
func NewMemorySimulationQuota() SimulationQuota {
	return &memorySimulationQuota{counts: make(map[string]int)}
}

func (q *memorySimulationQuota) Allow(userID string, limit int) bool {
	if limit <= 0 {
		return true
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	key := monthKey(userID, time.Now().UTC())
	if q.counts[key] >= limit {
		return false
	}
	q.counts[key]++
	return true
}

const redisQuotaScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisSimulationQuota struct {
	client *redis.Client
	prefix string
}

// NewRedisSimulationQuota crea un contador mensual respaldado en Redis.
func NewRedisSimulationQuota(client *redis.Client) SimulationQuota {
	if client == nil {
		return nil
	}
	return &redisSimulationQuota{
		client: client,
		prefix: "sim:quota:",
	}
}

// Allow incrementa el contador del mes y compara contra el limite. Ante un
// error de Redis se permite la operacion: el cupo es control de abuso, no
// una invariante de correccion.
func (q *redisSimulationQuota) Allow(userID string, limit int) bool {
	if limit <= 0 {
		return true
	}
	normalized := strings.TrimSpace(userID)
	if normalized == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	key := q.prefix + monthKey(normalized, time.Now().UTC())
	// 32 dias: el contador muere solo aunque el mes cambie de largo.
	count, err := q.client.Eval(ctx, redisQuotaScript, []string{key}, 32*24*3600).Int()
	if err != nil {
		return true
	}
	return count <= limit
}

func monthKey(userID string, now time.Time) string {
	return fmt.Sprintf("%s:%s", userID, now.Format("2006-01"))
}
