package domain

import (
	"slices"
	"strings"
	"time"
)

// ListRecord is a named list owned by a user, holding its items in creation order
type ListRecord struct {
	ID        int64
	Name      string
	Owner     string
	CreatedAt time.Time
	Items     []ItemRecord
}

// ItemRecord is a single entry of a list
type ItemRecord struct {
	ID        int64
	ListID    int64
	Title     string
	Done      bool
	CreatedAt time.Time
}

// Clone returns a deep copy of the list
func (l ListRecord) Clone() ListRecord {
	l.Items = slices.Clone(l.Items)
	return l
}

// Item returns the item with the given id
func (l ListRecord) Item(id int64) (ItemRecord, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemRecord{}, false
}

// Remaining returns the number of items not yet done
func (l ListRecord) Remaining() int {
	n := 0
	for _, it := range l.Items {
		if !it.Done {
			n++
		}
	}
	return n
}

// PlainText renders the list as a markdown checklist
func (l ListRecord) PlainText() string {
	var b strings.Builder
	b.WriteString(l.Name)
	b.WriteString("\n")
	for _, it := range l.Items {
		if it.Done {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(it.Title)
		b.WriteString("\n")
	}
	return b.String()
}

// SortItems orders items by creation time, keeping id order for equal timestamps
func SortItems(items []ItemRecord) {
	slices.SortStableFunc(items, func(a, b ItemRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
