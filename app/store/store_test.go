package store

import (
	"errors"
	"sync"
	"testing"
)

type item struct {
	ID     int64
	Name   string
	Parent int64
	Tags   []string
}

func cloneItem(i item) item {
	if i.Tags != nil {
		i.Tags = append([]string(nil), i.Tags...)
	}
	return i
}

func newStore(seed ...item) *Store[item] {
	return New(func(i item) int64 { return i.ID }, cloneItem, seed)
}

func TestNew_NextIDStartsAboveSeed(t *testing.T) {
	s := newStore(item{ID: 3}, item{ID: 9}, item{ID: 5})
	if got := s.NextID(); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
	if got := s.NextID(); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}

	empty := newStore()
	if got := empty.NextID(); got != 1 {
		t.Fatalf("expected 1 on empty store, got %d", got)
	}
}

func TestNew_CopiesSeed(t *testing.T) {
	seed := []item{{ID: 1, Tags: []string{"a"}}}
	s := newStore(seed...)
	seed[0].Name = "changed"
	seed[0].Tags[0] = "changed"

	got, ok := s.Get(1)
	if !ok {
		t.Fatalf("expected item 1")
	}
	if got.Name != "" || got.Tags[0] != "a" {
		t.Fatalf("store aliased its seed: %+v", got)
	}
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := newStore(item{ID: 1, Tags: []string{"a"}})
	got, _ := s.Get(1)
	got.Tags[0] = "mutated"

	again, _ := s.Get(1)
	if again.Tags[0] != "a" {
		t.Fatalf("expected stored tags untouched, got %v", again.Tags)
	}
	if _, ok := s.Get(42); ok {
		t.Fatalf("expected missing id to report false")
	}
}

func TestAll_IsRestartableSnapshot(t *testing.T) {
	s := newStore(item{ID: 1}, item{ID: 2})
	seq := s.All()

	s.Delete(1, nil)

	for range 2 {
		var ids []int64
		for it := range seq {
			ids = append(ids, it.ID)
		}
		if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
			t.Fatalf("expected snapshot [1 2], got %v", ids)
		}
	}

	var first []int64
	for it := range seq {
		first = append(first, it.ID)
		break
	}
	if len(first) != 1 {
		t.Fatalf("expected early stop after one item, got %v", first)
	}
}

func TestInsert_AppendsAtomically(t *testing.T) {
	s := newStore(item{ID: 1})
	out, err := s.Insert(func(current []item) ([]item, error) {
		if len(current) != 1 {
			t.Fatalf("expected current contents, got %v", current)
		}
		return []item{{ID: s.NextID()}, {ID: s.NextID()}}, nil
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[1].ID != 3 {
		t.Fatalf("expected ids 2 and 3, got %v", out)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 items, got %d", s.Len())
	}
}

func TestInsert_ErrorAndPanicLeaveStoreUnchanged(t *testing.T) {
	s := newStore(item{ID: 1})
	boom := errors.New("boom")

	if _, err := s.Insert(func([]item) ([]item, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	_, err := s.Insert(func([]item) ([]item, error) { panic("bad build") })
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if pe.Value != "bad build" {
		t.Fatalf("expected panic value, got %v", pe.Value)
	}
	if s.Len() != 1 {
		t.Fatalf("expected store unchanged, got %d items", s.Len())
	}
}

func TestUpdate(t *testing.T) {
	s := newStore(item{ID: 1, Name: "old"})

	out, found, err := s.Update(1, func(cur item, all []item) (item, error) {
		cur.Name = "new"
		return cur, nil
	})
	if err != nil || !found || out.Name != "new" {
		t.Fatalf("expected updated item, got %+v found=%v err=%v", out, found, err)
	}

	_, found, err = s.Update(7, func(cur item, _ []item) (item, error) { return cur, nil })
	if found || err != nil {
		t.Fatalf("expected not found without error, got found=%v err=%v", found, err)
	}

	_, _, err = s.Update(1, func(cur item, _ []item) (item, error) {
		cur.Name = "half-done"
		panic("oops")
	})
	var pe *PanicError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PanicError, got %v", err)
	}
	got, _ := s.Get(1)
	if got.Name != "new" {
		t.Fatalf("expected record unchanged after panic, got %q", got.Name)
	}
}

func TestDelete_WithRelated(t *testing.T) {
	s := newStore(item{ID: 1}, item{ID: 2, Parent: 1}, item{ID: 3}, item{ID: 4, Parent: 2})

	removed, err := s.Delete(1, func(all []item) []int64 { return []int64{2, 4} })
	if err != nil || removed != 3 {
		t.Fatalf("expected 3 removed, got %d err=%v", removed, err)
	}
	snap := s.Snapshot()
	if len(snap) != 1 || snap[0].ID != 3 {
		t.Fatalf("expected only item 3 left, got %v", snap)
	}
	if got, err := s.Delete(1, nil); got != 0 || err != nil {
		t.Fatalf("expected 0 for missing id, got %d err=%v", got, err)
	}
}

func TestDelete_PanicLeavesStoreUnchanged(t *testing.T) {
	s := newStore(item{ID: 1}, item{ID: 2, Parent: 1})

	removed, err := s.Delete(1, func([]item) []int64 { panic("bad related") })
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "bad related" {
		t.Fatalf("expected PanicError, got %v", err)
	}
	if removed != 0 || s.Len() != 2 {
		t.Fatalf("expected nothing removed, got %d removed and %d left", removed, s.Len())
	}
}

func TestRemove(t *testing.T) {
	s := newStore(item{ID: 1, Name: "a"}, item{ID: 2, Name: "b"})
	got, ok := s.Remove(1)
	if !ok || got.Name != "a" {
		t.Fatalf("expected removed item a, got %+v ok=%v", got, ok)
	}
	if _, ok := s.Remove(1); ok {
		t.Fatalf("expected second remove to fail")
	}
	if snap := s.Snapshot(); len(snap) != 1 || snap[0].ID != 2 {
		t.Fatalf("expected [2], got %v", snap)
	}
}

func TestConcurrentInsertsGetDistinctIDs(t *testing.T) {
	s := newStore()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Insert(func([]item) ([]item, error) {
				return []item{{ID: s.NextID()}}, nil
			})
		}()
	}
	wg.Wait()

	seen := map[int64]bool{}
	for _, it := range s.Snapshot() {
		if seen[it.ID] {
			t.Fatalf("duplicate id %d", it.ID)
		}
		seen[it.ID] = true
	}
	if len(seen) != 50 {
		t.Fatalf("expected 50 items, got %d", len(seen))
	}
}
