package stores

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"daybook/internal/ports"
)

var errBoom = errors.New("connection reset")

type call struct {
	op    string
	table string
}

func (c call) String() string {
	return c.op + " " + c.table
}

// fakeRecordStore is an in-memory ports.RecordStore that records every call
// and fails the ones listed in fail ("insert items", "delete lists", ...).
type fakeRecordStore struct {
	mu     sync.Mutex
	tables map[string][]ports.Row
	nextID map[string]int64
	calls  []call
	fail   map[string]error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{
		tables: make(map[string][]ports.Row),
		nextID: make(map[string]int64),
		fail:   make(map[string]error),
	}
}

func (f *fakeRecordStore) record(op, table string) error {
	f.calls = append(f.calls, call{op, table})
	return f.fail[op+" "+table]
}

func (f *fakeRecordStore) Select(ctx context.Context, table string, filter ports.Filter, order ...ports.Order) ([]ports.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("select", table); err != nil {
		return nil, err
	}

	var out []ports.Row
	for _, r := range f.tables[table] {
		if matches(r, filter) {
			out = append(out, maps.Clone(r))
		}
	}
	slices.SortStableFunc(out, func(a, b ports.Row) int {
		for _, o := range order {
			c := compare(a[o.Column], b[o.Column])
			if o.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out, nil
}

func (f *fakeRecordStore) Insert(ctx context.Context, table string, row ports.Row) (ports.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("insert", table); err != nil {
		return nil, err
	}

	r := maps.Clone(row)
	if _, ok := r["id"]; !ok {
		f.nextID[table]++
		r["id"] = f.nextID[table]
	}
	f.tables[table] = append(f.tables[table], r)
	return maps.Clone(r), nil
}

func (f *fakeRecordStore) Update(ctx context.Context, table string, filter ports.Filter, patch ports.Row) (ports.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("update", table); err != nil {
		return nil, err
	}

	for _, r := range f.tables[table] {
		if matches(r, filter) {
			maps.Copy(r, patch)
			return maps.Clone(r), nil
		}
	}
	return nil, ports.ErrNoRows
}

func (f *fakeRecordStore) Delete(ctx context.Context, table string, filter ports.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("delete", table); err != nil {
		return err
	}

	f.tables[table] = slices.DeleteFunc(f.tables[table], func(r ports.Row) bool {
		return matches(r, filter)
	})
	return nil
}

// seed stores rows directly without recording a call
func (f *fakeRecordStore) seed(table string, rows ...ports.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		if id, ok := r["id"].(int64); ok && id > f.nextID[table] {
			f.nextID[table] = id
		}
		f.tables[table] = append(f.tables[table], maps.Clone(r))
	}
}

func (f *fakeRecordStore) rows(table string) []ports.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tables[table])
}

func (f *fakeRecordStore) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.String()
	}
	return out
}

func (f *fakeRecordStore) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// transactionalFake adds an atomic cascade delete on top of the fake
type transactionalFake struct {
	*fakeRecordStore
}

func (f transactionalFake) DeleteCascade(ctx context.Context, c ports.Cascade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("cascade", c.ParentTable); err != nil {
		return err
	}
	f.tables[c.ChildTable] = slices.DeleteFunc(f.tables[c.ChildTable], func(r ports.Row) bool {
		return matches(r, c.ChildFilter)
	})
	f.tables[c.ParentTable] = slices.DeleteFunc(f.tables[c.ParentTable], func(r ports.Row) bool {
		return matches(r, c.ParentFilter)
	})
	return nil
}

func matches(r ports.Row, filter ports.Filter) bool {
	for _, c := range filter {
		v := r[c.Column]
		switch c.Op {
		case ports.OpEq:
			if compare(v, c.Value) != 0 {
				return false
			}
		case ports.OpIn:
			found := false
			for _, want := range c.Value.([]any) {
				if compare(v, want) == 0 {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case ports.OpGte:
			if compare(v, c.Value) < 0 {
				return false
			}
		case ports.OpLte:
			if compare(v, c.Value) > 0 {
				return false
			}
		}
	}
	return true
}

func compare(a, b any) int {
	switch av := a.(type) {
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	case bool:
		if bv, ok := b.(bool); ok && av == bv {
			return 0
		}
		return 1
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
