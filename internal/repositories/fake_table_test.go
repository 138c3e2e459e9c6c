package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// fakeTable - таблица в памяти. Строки хранятся в JSON-виде, как их отдал бы шлюз.
type fakeTable[R any] struct {
	mu       sync.Mutex
	rows     []map[string]interface{}
	embed    bool
	embedErr error
	selects  int
	stamp    time.Time
}

func newFakeTable[R any]() *fakeTable[R] {
	return &fakeTable[R]{stamp: time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)}
}

func (f *fakeTable[R]) SupportsEmbed() bool { return f.embed }

func (f *fakeTable[R]) seed(values map[string]interface{}) string {
	row := normalize(values)
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.NewString()
	}
	row["created_at"] = f.stamp.Format(time.RFC3339Nano)
	row["updated_at"] = f.stamp.Format(time.RFC3339Nano)
	f.mu.Lock()
	f.rows = append(f.rows, row)
	f.mu.Unlock()
	return row["id"].(string)
}

func (f *fakeTable[R]) Select(_ context.Context, q Query) ([]R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selects++
	if q.Embed && f.embedErr != nil {
		return nil, f.embedErr
	}
	var out []R
	for _, row := range f.rows {
		if !matchAll(row, q) {
			continue
		}
		r, err := decodeRow[R](row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (f *fakeTable[R]) Insert(_ context.Context, values map[string]interface{}) (R, error) {
	id := f.seed(values)
	rows, err := f.Select(context.Background(), ByID(id))
	if err != nil || len(rows) == 0 {
		var zero R
		return zero, fmt.Errorf("строка %s не записана: %v", id, err)
	}
	return rows[0], nil
}

func (f *fakeTable[R]) Update(_ context.Context, q Query, values map[string]interface{}) ([]R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patch := normalize(values)
	var out []R
	for _, row := range f.rows {
		if !matchAll(row, q) {
			continue
		}
		for k, v := range patch {
			row[k] = v
		}
		r, err := decodeRow[R](row)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeTable[R]) Delete(_ context.Context, q Query) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	n := 0
	for _, row := range f.rows {
		if matchAll(row, q) {
			n++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return n, nil
}

func normalize(values map[string]interface{}) map[string]interface{} {
	raw, err := json.Marshal(values)
	if err != nil {
		panic(err)
	}
	out := make(map[string]interface{})
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

func decodeRow[R any](row map[string]interface{}) (R, error) {
	var r R
	raw, err := json.Marshal(row)
	if err != nil {
		return r, err
	}
	err = json.Unmarshal(raw, &r)
	return r, err
}

func matchAll(row map[string]interface{}, q Query) bool {
	for _, f := range q.Filters {
		got := asText(row[f.Column])
		switch f.Op {
		case OpEq:
			if got != asText(f.Value) {
				return false
			}
		case OpNeq:
			if got == asText(f.Value) {
				return false
			}
		case OpGte:
			if got == "" || got < asText(f.Value) {
				return false
			}
		case OpLte:
			if got == "" || got > asText(f.Value) {
				return false
			}
		case OpIn:
			found := false
			for _, v := range f.Value.([]string) {
				if got == v {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	if q.Search != nil {
		term := strings.ToLower(q.Search.Term)
		for _, col := range q.Search.Columns {
			if strings.Contains(strings.ToLower(asText(row[col])), term) {
				return true
			}
		}
		return false
	}
	return true
}

func asText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
