// Package store wraps the database handle with the scoped transaction
// primitive the services use for every mutation. The store is built
// once at startup and injected; there is no package-level instance.
package store

import (
	"context"
	"sync"

	"fabrisys-backend/internal/livequery"

	"gorm.io/gorm"
)

type ctxKey struct{}

type tableSet struct {
	mu     sync.Mutex
	tables map[string]struct{}
}

func (ts *tableSet) add(table string) {
	ts.mu.Lock()
	ts.tables[table] = struct{}{}
	ts.mu.Unlock()
}

func (ts *tableSet) list() []string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	out := make([]string, 0, len(ts.tables))
	for t := range ts.tables {
		out = append(out, t)
	}
	return out
}

type Store struct {
	db     *gorm.DB
	engine *livequery.Engine
}

// Open attaches write-tracking callbacks to db and returns the store.
// The engine may be nil (used by offline utilities).
func Open(db *gorm.DB, engine *livequery.Engine) (*Store, error) {
	if err := db.Callback().Create().After("gorm:create").Register("fabrisys:track_create", trackWrite); err != nil {
		return nil, err
	}
	if err := db.Callback().Update().After("gorm:update").Register("fabrisys:track_update", trackWrite); err != nil {
		return nil, err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("fabrisys:track_delete", trackWrite); err != nil {
		return nil, err
	}
	return &Store{db: db, engine: engine}, nil
}

// DB returns the read handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Write runs fn inside one transaction: every contained write commits
// together or none does. After a successful commit the live-query
// engine is notified with the set of tables the transaction touched;
// on rollback nothing is published and prior state is unchanged.
func (s *Store) Write(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ts := &tableSet{tables: make(map[string]struct{})}
	ctx = context.WithValue(ctx, ctxKey{}, ts)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
	if err != nil {
		return err
	}
	if s.engine != nil {
		if touched := ts.list(); len(touched) > 0 {
			s.engine.Invalidate(touched...)
		}
	}
	return nil
}

// trackWrite records the written table on the set carried by the
// transaction context. Writes outside Store.Write carry no set and
// are ignored.
func trackWrite(db *gorm.DB) {
	v := db.Statement.Context.Value(ctxKey{})
	if v == nil {
		return
	}
	if table := db.Statement.Table; table != "" {
		v.(*tableSet).add(table)
	}
}
