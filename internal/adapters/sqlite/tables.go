package sqlite

import (
	"fmt"
	"time"
)

// timeLayout is fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type colKind int

const (
	kindText colKind = iota
	kindInt
	kindBool
	kindTime
)

// table lists the columns a caller may read and write, in select order
type table struct {
	name    string
	columns []string
	kinds   map[string]colKind
}

func newTable(name string, cols ...any) table {
	t := table{name: name, kinds: make(map[string]colKind)}
	for i := 0; i+1 < len(cols); i += 2 {
		col := cols[i].(string)
		t.columns = append(t.columns, col)
		t.kinds[col] = cols[i+1].(colKind)
	}
	return t
}

func entryTable(name string) table {
	return newTable(name,
		"id", kindText,
		"user_id", kindText,
		"title", kindText,
		"content", kindText,
		"date", kindText,
		"time", kindText,
		"done", kindBool,
		"created_at", kindTime,
	)
}

var tables = map[string]table{
	"calendar_entries": entryTable("calendar_entries"),
	"tasks":            entryTable("tasks"),
	"notes":            entryTable("notes"),
	"lists": newTable("lists",
		"id", kindInt,
		"user_id", kindText,
		"name", kindText,
		"created_at", kindTime,
	),
	"items": newTable("items",
		"id", kindInt,
		"list_id", kindInt,
		"title", kindText,
		"done", kindBool,
		"created_at", kindTime,
	),
	"photos": newTable("photos",
		"id", kindInt,
		"user_id", kindText,
		"url", kindText,
		"title", kindText,
		"blob_key", kindText,
		"uploaded_at", kindTime,
	),
	"profiles": newTable("profiles",
		"id", kindText,
		"name", kindText,
		"bio", kindText,
		"avatar", kindText,
	),
}

const schema = `
	CREATE TABLE IF NOT EXISTS calendar_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL,
		time TEXT NOT NULL DEFAULT '',
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS lists (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		list_id INTEGER NOT NULL REFERENCES lists(id),
		title TEXT NOT NULL,
		done INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS photos (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		url TEXT NOT NULL,
		title TEXT NOT NULL,
		blob_key TEXT NOT NULL DEFAULT '',
		uploaded_at TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		avatar TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_calendar_entries_user_date ON calendar_entries(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_tasks_user_date ON tasks(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_notes_user_date ON notes(user_id, date);
	CREATE INDEX IF NOT EXISTS idx_lists_user ON lists(user_id);
	CREATE INDEX IF NOT EXISTS idx_items_list ON items(list_id);
	CREATE INDEX IF NOT EXISTS idx_photos_user ON photos(user_id);
`

func lookupTable(name string) (table, error) {
	t, ok := tables[name]
	if !ok {
		return table{}, fmt.Errorf("unknown table %q", name)
	}
	return t, nil
}

func (t table) kind(col string) (colKind, error) {
	k, ok := t.kinds[col]
	if !ok {
		return 0, fmt.Errorf("unknown column %s.%s", t.name, col)
	}
	return k, nil
}

// encode converts a Go value to what is stored for the column
func encode(k colKind, v any) (any, error) {
	switch k {
	case kindTime:
		switch tv := v.(type) {
		case time.Time:
			return tv.UTC().Format(timeLayout), nil
		case string:
			return tv, nil
		}
	case kindBool:
		switch bv := v.(type) {
		case bool:
			if bv {
				return int64(1), nil
			}
			return int64(0), nil
		case int, int64:
			return bv, nil
		}
	case kindInt:
		switch iv := v.(type) {
		case int:
			return int64(iv), nil
		case int64:
			return iv, nil
		}
	case kindText:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("unsupported value %v (%T)", v, v)
}
