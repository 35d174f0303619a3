package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginThrottlePrefix = "auth:signin:failures:"

// El TTL se fija con el primer fallo, asi la ventana corre desde ese fallo.
const recordFailureScript = `
local failures = redis.call("INCR", KEYS[1])
if failures == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return failures
`

type redisThrottleClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisLoginThrottle struct {
	client  redisThrottleClient
	window  time.Duration
	max     int
	timeout time.Duration
}

// NewRedisLoginThrottle comparte el contador de fallos entre instancias.
// Si redis no responde el throttle no bloquea a nadie.
func NewRedisLoginThrottle(client *redis.Client, window time.Duration, max int) LoginThrottle {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisLoginThrottle{
		client:  client,
		window:  window,
		max:     max,
		timeout: 500 * time.Millisecond,
	}
}

func (t *redisLoginThrottle) Locked(email string) bool {
	key := throttleKey(email)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	failures, err := t.client.Get(ctx, loginThrottlePrefix+key).Int()
	if err != nil {
		// redis.Nil: sin fallos registrados. Otros errores: fail-open.
		return false
	}
	return failures >= t.max
}

func (t *redisLoginThrottle) RecordFailure(email string) {
	key := throttleKey(email)
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	t.client.Eval(ctx, recordFailureScript, []string{loginThrottlePrefix + key}, t.window.Milliseconds())
}

func (t *redisLoginThrottle) Reset(email string) {
	key := throttleKey(email)
	if key == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	t.client.Del(ctx, loginThrottlePrefix+key)
}
