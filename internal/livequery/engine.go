// Package livequery keeps query results current: a subscription pairs
// a query function with the set of tables it reads, and every
// committed write transaction whose touched tables overlap that set
// re-runs the query and pushes the fresh result to the subscriber.
package livequery

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QueryFunc reads the store and returns a result. It runs at subscribe
// time and again after every commit that touches one of the declared
// tables, always against fully committed state.
type QueryFunc func(db *gorm.DB) (any, error)

// Result carries a query value or the error the query returned. Errors
// are delivered to the subscriber, never swallowed in favour of a
// stale value.
type Result struct {
	Value any
	Err   error
}

type Engine struct {
	db   *gorm.DB
	mu   sync.Mutex
	subs map[uuid.UUID]*Subscription
}

func NewEngine(db *gorm.DB) *Engine {
	return &Engine{
		db:   db,
		subs: make(map[uuid.UUID]*Subscription),
	}
}

// Subscribe registers query with the tables it depends on, executes it
// once immediately and delivers that first result. Until the first
// result lands, Subscription.Current reports not-loaded so callers can
// distinguish "loading" from "zero rows".
func (e *Engine) Subscribe(query QueryFunc, tables ...string) *Subscription {
	sub := &Subscription{
		id:      uuid.New(),
		engine:  e,
		query:   query,
		tables:  make(map[string]struct{}, len(tables)),
		updates: make(chan Result, 1),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs[sub.id] = sub
	sub.run(e.db)
	return sub
}

// Invalidate re-runs every subscription whose table set intersects the
// committed transaction's touched tables: at most once per commit per
// subscription, under the engine lock, so subscribers observe results
// in commit order.
func (e *Engine) Invalidate(tables ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, sub := range e.subs {
		if sub.dependsOn(tables) {
			sub.run(e.db)
		}
	}
}

func (e *Engine) unsubscribe(sub *Subscription) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.subs[sub.id]; !ok {
		return
	}
	delete(e.subs, sub.id)
	sub.mu.Lock()
	sub.closed = true
	sub.mu.Unlock()
	close(sub.updates)
}

type Subscription struct {
	id     uuid.UUID
	engine *Engine
	query  QueryFunc
	tables map[string]struct{}

	updates chan Result

	mu      sync.Mutex
	current Result
	loaded  bool
	closed  bool
}

// Updates is the result stream. Delivery is latest-wins: a slow
// consumer sees the newest result, not an unbounded backlog.
func (s *Subscription) Updates() <-chan Result {
	return s.updates
}

// Current returns the latest result and whether any result has been
// computed yet. The false case is the loading sentinel.
func (s *Subscription) Current() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.loaded
}

// Unsubscribe stops future deliveries and closes the update channel.
// It does not affect data. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	s.engine.unsubscribe(s)
}

func (s *Subscription) dependsOn(tables []string) bool {
	for _, t := range tables {
		if _, ok := s.tables[t]; ok {
			return true
		}
	}
	return false
}

// run executes the query and publishes the result. Callers hold the
// engine lock, which serializes runs across commits.
func (s *Subscription) run(db *gorm.DB) {
	value, err := s.query(db)
	res := Result{Value: value, Err: err}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.current = res
	s.loaded = true
	s.mu.Unlock()

	// Replace any undelivered result with the newer one.
	for {
		select {
		case s.updates <- res:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}
