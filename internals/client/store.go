package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Store caches server rows per resource and applies each mutation's echo
// locally, so screens refresh without refetching. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	gateway *Gateway
	rows    map[string][]map[string]interface{}
	lastErr error
}

func NewStore(gateway *Gateway) *Store {
	return &Store{
		gateway: gateway,
		rows:    map[string][]map[string]interface{}{},
	}
}

// Rows returns the cached rows for a resource, newest first. The slice is a
// copy, so later mutations never reach into it.
func (s *Store) Rows(resource string) []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]map[string]interface{}, len(s.rows[resource]))
	copy(out, s.rows[resource])
	return out
}

// Err returns the error left by the last failed operation, if any. Every
// new operation clears it first.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Load fetches a resource's full list into the store.
func (s *Store) Load(ctx context.Context, resource string) bool {
	s.clearErr()
	rows, err := s.gateway.ListAll(ctx, resource)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.rows[resource] = rows
	s.mu.Unlock()
	return true
}

// AddItem creates one record and prepends the server's echo, keeping the
// newest-first order without a refetch.
func (s *Store) AddItem(ctx context.Context, resource string, payload interface{}) bool {
	s.clearErr()
	created, err := s.gateway.Create(ctx, resource, payload)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	s.rows[resource] = append([]map[string]interface{}{created}, s.rows[resource]...)
	s.mu.Unlock()
	return true
}

// AddMultipleItems batch-creates records, then refetches the list: the
// server assigns the ids, so a local echo would be incomplete.
func (s *Store) AddMultipleItems(ctx context.Context, resource string, payloads interface{}) bool {
	s.clearErr()
	if _, err := s.gateway.CreateBatch(ctx, resource, payloads); err != nil {
		return s.fail(err)
	}
	return s.Load(ctx, resource)
}

// UpdateItem replaces the matching cached row with the server's echo.
func (s *Store) UpdateItem(ctx context.Context, resource string, id uint, payload interface{}) bool {
	s.clearErr()
	updated, err := s.gateway.Update(ctx, resource, id, payload)
	if err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	for i, row := range s.rows[resource] {
		if rowID(row) == id {
			s.rows[resource][i] = updated
			break
		}
	}
	s.mu.Unlock()
	return true
}

// RemoveItem deletes a record and drops it from the cache.
func (s *Store) RemoveItem(ctx context.Context, resource string, id uint) bool {
	s.clearErr()
	if err := s.gateway.Delete(ctx, resource, id); err != nil {
		return s.fail(err)
	}
	s.mu.Lock()
	kept := make([]map[string]interface{}, 0, len(s.rows[resource]))
	for _, row := range s.rows[resource] {
		if rowID(row) != id {
			kept = append(kept, row)
		}
	}
	s.rows[resource] = kept
	s.mu.Unlock()
	return true
}

// FilterRows narrows the cached rows by a free-text query. A row matches on
// its school's Arabic or English name (resolved through the cached schools
// list) or the raw national id, falling back to a substring scan over every
// field value, numbers included. When schoolNationalID is set (a manager's
// view), only that school's rows are searched.
func (s *Store) FilterRows(resource, query, schoolNationalID string) []map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schoolNames := map[string][]string{}
	for _, school := range s.rows["schools"] {
		id, _ := school["nationalId"].(string)
		if id == "" {
			continue
		}
		for _, key := range []string{"schoolNameAr", "schoolNameEn"} {
			if name, _ := school[key].(string); name != "" {
				schoolNames[id] = append(schoolNames[id], name)
			}
		}
	}

	query = strings.TrimSpace(query)
	var out []map[string]interface{}
	for _, row := range s.rows[resource] {
		owner, _ := row["schoolNationalId"].(string)
		if owner == "" {
			owner, _ = row["nationalId"].(string)
		}
		if schoolNationalID != "" && owner != schoolNationalID {
			continue
		}
		if query == "" || rowMatches(row, query, owner, schoolNames) {
			out = append(out, row)
		}
	}
	return out
}

func rowMatches(row map[string]interface{}, query, owner string, schoolNames map[string][]string) bool {
	if owner != "" {
		if strings.Contains(owner, query) {
			return true
		}
		for _, name := range schoolNames[owner] {
			if strings.Contains(name, query) {
				return true
			}
		}
	}
	for _, v := range row {
		if v == nil {
			continue
		}
		if strings.Contains(fmt.Sprintf("%v", v), query) {
			return true
		}
	}
	return false
}

// rowID reads the numeric id out of a decoded JSON row.
func rowID(row map[string]interface{}) uint {
	switch v := row["id"].(type) {
	case float64:
		return uint(v)
	case uint:
		return v
	case int:
		return uint(v)
	case string:
		var n uint
		_, _ = fmt.Sscanf(v, "%d", &n)
		return n
	default:
		return 0
	}
}

func (s *Store) clearErr() {
	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Store) fail(err error) bool {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return false
}
