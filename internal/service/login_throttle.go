package service

import (
	"strings"
	"sync"
	"time"
)

// LoginThrottle bloquea un email tras varias contraseñas incorrectas dentro
// de una ventana. Solo cuentan los fallos; un signin correcto limpia el contador.
type LoginThrottle interface {
	Locked(email string) bool
	RecordFailure(email string)
	Reset(email string)
}

type memoryLoginThrottle struct {
	mu        sync.Mutex
	window    time.Duration
	max       int
	failures  map[string][]time.Time
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryLoginThrottle guarda los fallos en memoria del proceso.
func NewMemoryLoginThrottle(window time.Duration, max int) LoginThrottle {
	if window <= 0 {
		window = 15 * time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &memoryLoginThrottle{
		window:   window,
		max:      max,
		failures: make(map[string][]time.Time),
		now:      time.Now,
	}
}

func throttleKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (t *memoryLoginThrottle) Locked(email string) bool {
	key := throttleKey(email)
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.recent(key, t.now())) >= t.max
}

func (t *memoryLoginThrottle) RecordFailure(email string) {
	key := throttleKey(email)
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.failures[key] = append(t.recent(key, now), now)
	if now.Sub(t.lastSweep) >= t.window {
		t.sweep(now)
	}
}

func (t *memoryLoginThrottle) Reset(email string) {
	key := throttleKey(email)
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.failures, key)
}

// recent descarta los fallos vencidos de key y borra la entrada si no queda ninguno.
// Requiere t.mu tomado.
func (t *memoryLoginThrottle) recent(key string, now time.Time) []time.Time {
	entries, ok := t.failures[key]
	if !ok {
		return nil
	}
	cutoff := now.Add(-t.window)
	kept := entries[:0]
	for _, ts := range entries {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(t.failures, key)
		return nil
	}
	t.failures[key] = kept
	return kept
}

// sweep limpia emails que no volvieron a intentar. Requiere t.mu tomado.
func (t *memoryLoginThrottle) sweep(now time.Time) {
	for key := range t.failures {
		t.recent(key, now)
	}
	t.lastSweep = now
}
