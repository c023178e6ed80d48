package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Ranking is an append-only list of records owned by one session. Appends
// are serialized; readers copy under the read lock, so a sort never observes
// a half-written list.
type Ranking struct {
	mu      sync.RWMutex
	records []*Record
	byID    map[uuid.UUID]*Record
}

// NewRanking creates an empty ranking.
func NewRanking() *Ranking {
	return &Ranking{byID: make(map[uuid.UUID]*Record)}
}

// Append stores rec, assigning its ID and CreatedAt when unset.
func (r *Ranking) Append(rec *Record) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	r.records = append(r.records, rec)
	r.byID[rec.ID] = rec
	r.mu.Unlock()
}

// Get returns the record with the given ID, or nil.
func (r *Ranking) Get(id uuid.UUID) *Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// List returns the records in insertion order.
func (r *Ranking) List() []*Record {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Record, len(r.records))
	copy(out, r.records)
	return out
}

// Ranked returns the records ordered by score, highest first, with 1-based
// ranks. Ties keep no particular order.
func (r *Ranking) Ranked() []RankedRecord {
	recs := r.List()
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Score() > recs[j].Score()
	})

	out := make([]RankedRecord, len(recs))
	for i, rec := range recs {
		ev := rec.Evaluation
		out[i] = RankedRecord{
			Rank:        i + 1,
			ID:          rec.ID,
			Subject:     rec.Subject,
			Discipline:  ev.Input.Discipline,
			Achievement: ev.Input.Achievement,
			Attitude:    ev.Input.Attitude,
			Score:       ev.Score,
			Band:        ev.Band,
			Tag:         ev.Tag,
			CreatedAt:   rec.CreatedAt,
		}
	}
	return out
}

// Len returns the number of stored records.
func (r *Ranking) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// Reset drops every record and returns how many were removed.
func (r *Ranking) Reset() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.records)
	r.records = nil
	r.byID = make(map[uuid.UUID]*Record)
	return n
}

var _ Store = (*Sessions)(nil)

// Sessions owns one Ranking per caller session. Rankings live only in
// memory and vanish with the process.
type Sessions struct {
	mu       sync.Mutex
	rankings map[string]*Ranking
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{rankings: make(map[string]*Ranking)}
}

// Session returns the ranking for id, creating it on first use.
func (s *Sessions) Session(id string) *Ranking {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rankings[id]
	if !ok {
		r = NewRanking()
		s.rankings[id] = r
	}
	return r
}

func (s *Sessions) lookup(id string) *Ranking {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rankings[id]
}

func (s *Sessions) snapshot() []*Ranking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Ranking, 0, len(s.rankings))
	for _, r := range s.rankings {
		out = append(out, r)
	}
	return out
}

// Append implements Store. The map lock is held across the append so a
// concurrent Reset either counts the record or never sees it.
func (s *Sessions) Append(_ context.Context, session string, rec *Record) error {
	rec.Session = session
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rankings[session]
	if !ok {
		r = NewRanking()
		s.rankings[session] = r
	}
	r.Append(rec)
	return nil
}

// Get implements Store.
func (s *Sessions) Get(_ context.Context, session string, id uuid.UUID) (*Record, error) {
	r := s.lookup(session)
	if r == nil {
		return nil, ErrNotFound
	}
	rec := r.Get(id)
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

// List implements Store.
func (s *Sessions) List(_ context.Context, session string) ([]*Record, error) {
	r := s.lookup(session)
	if r == nil {
		return []*Record{}, nil
	}
	return r.List(), nil
}

// Ranked implements Store.
func (s *Sessions) Ranked(_ context.Context, session string) ([]RankedRecord, error) {
	r := s.lookup(session)
	if r == nil {
		return []RankedRecord{}, nil
	}
	return r.Ranked(), nil
}

// Reset implements Store. The session itself is dropped along with its records.
func (s *Sessions) Reset(_ context.Context, session string) (int, error) {
	s.mu.Lock()
	r := s.rankings[session]
	delete(s.rankings, session)
	s.mu.Unlock()
	if r == nil {
		return 0, nil
	}
	return r.Reset(), nil
}

// Stats implements Store.
func (s *Sessions) Stats(_ context.Context) (*SessionStats, error) {
	rankings := s.snapshot()
	stats := &SessionStats{Sessions: len(rankings), Timestamp: time.Now().UTC()}
	for _, r := range rankings {
		stats.TotalRecords += r.Len()
	}
	return stats, nil
}

// Close implements Store.
func (s *Sessions) Close() error { return nil }
