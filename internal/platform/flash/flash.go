// Package flash guarda avisos de un solo uso que sobreviven exactamente un redirect.
package flash

import (
	"context"
	"sync"
	"time"
)

// Slot nombra un casillero del flash.
type Slot string

const (
	SlotErrors  Slot = "errors"
	SlotMessage Slot = "message"
)

// Values es el contenido persistido entre requests.
type Values map[Slot][]string

// Flash es el estado de un request: lo que llegó del request anterior
// (legible con Peek) y lo que se dejará para el siguiente (Set).
type Flash struct {
	mu   sync.Mutex
	now  Values
	next Values
}

// New arma un Flash con lo pendiente del request anterior.
func New(pending Values) *Flash {
	now := Values{}
	for k, v := range pending {
		if len(v) == 0 {
			continue
		}
		now[k] = append([]string(nil), v...)
	}
	return &Flash{now: now, next: Values{}}
}

// Set deja valores para el próximo request (p.ej. después de un redirect).
func (f *Flash) Set(slot Slot, values ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(values) == 0 {
		delete(f.next, slot)
		return
	}
	f.next[slot] = append([]string(nil), values...)
}

// SetNow deja valores visibles solo durante el request actual (re-render sin redirect).
func (f *Flash) SetNow(slot Slot, values ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(values) == 0 {
		delete(f.now, slot)
		return
	}
	f.now[slot] = append([]string(nil), values...)
}

// Peek devuelve el valor del slot para este request.
func (f *Flash) Peek(slot Slot) ([]string, bool) {
	if f == nil {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.now[slot]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return append([]string(nil), v...), true
}

// First es un atajo para slots de un solo texto (message).
func (f *Flash) First(slot Slot) string {
	v, ok := f.Peek(slot)
	if !ok {
		return ""
	}
	return v[0]
}

// Outgoing devuelve lo que debe persistirse para el siguiente request.
func (f *Flash) Outgoing() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(Values, len(f.next))
	for k, v := range f.next {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Store persiste flashes entre requests, por sesión.
type Store interface {
	// Take devuelve y borra lo pendiente de la sesión.
	Take(ctx context.Context, sessionID string) (Values, error)
	// Save reemplaza lo pendiente de la sesión. Values vacío borra.
	Save(ctx context.Context, sessionID string, v Values) error
}

type entry struct {
	values    Values
	expiresAt time.Time
}

// MemoryStore es un Store in-memory con TTL (las entradas vencidas se
// descartan al leerlas o al guardar otras).
type MemoryStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	byID map[string]entry
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &MemoryStore{
		ttl:  ttl,
		now:  time.Now,
		byID: make(map[string]entry),
	}
}

func (s *MemoryStore) Take(ctx context.Context, sessionID string) (Values, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[sessionID]
	if !ok {
		return Values{}, nil
	}
	delete(s.byID, sessionID)
	if s.now().After(e.expiresAt) {
		return Values{}, nil
	}
	return e.values, nil
}

func (s *MemoryStore) Save(ctx context.Context, sessionID string, v Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	if len(v) == 0 {
		delete(s.byID, sessionID)
		return nil
	}
	s.byID[sessionID] = entry{values: v, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) sweepLocked() {
	now := s.now()
	for id, e := range s.byID {
		if now.After(e.expiresAt) {
			delete(s.byID, id)
		}
	}
}

type ctxKey struct{}

// WithFlash guarda el Flash en el contexto del request.
func WithFlash(ctx context.Context, f *Flash) context.Context {
	return context.WithValue(ctx, ctxKey{}, f)
}

// FromContext devuelve el Flash del request. Si no hay (p.ej. tests sin
// middleware) devuelve uno vacío para que Set/SetNow no fallen.
func FromContext(ctx context.Context) *Flash {
	if f, ok := ctx.Value(ctxKey{}).(*Flash); ok && f != nil {
		return f
	}
	return New(nil)
}
