package store

import "testing"

type item struct {
	ID   string
	Name string
}

func newItemCollection() *Collection[item] {
	return NewCollection(func(i item) string { return i.ID })
}

func TestCollection_FetchReplacesItems(t *testing.T) {
	c := newItemCollection()

	seq := c.BeginFetch()
	if _, loading, _ := c.Snapshot(); !loading {
		t.Fatalf("expected loading during fetch")
	}

	if !c.CompleteFetch(seq, []item{{ID: "1"}, {ID: "2"}}, "") {
		t.Fatalf("fetch result discarded unexpectedly")
	}

	items, loading, lastErr := c.Snapshot()
	if loading {
		t.Fatalf("expected loading cleared")
	}
	if lastErr != "" {
		t.Fatalf("unexpected error: %q", lastErr)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestCollection_StaleFetchDiscarded(t *testing.T) {
	c := newItemCollection()

	first := c.BeginFetch()
	second := c.BeginFetch()

	// The newer fetch lands first.
	if !c.CompleteFetch(second, []item{{ID: "new"}}, "") {
		t.Fatalf("newer fetch should apply")
	}
	// The older fetch lands late and must be discarded.
	if c.CompleteFetch(first, []item{{ID: "old-a"}, {ID: "old-b"}}, "") {
		t.Fatalf("stale fetch should be discarded")
	}

	items, _, _ := c.Snapshot()
	if len(items) != 1 || items[0].ID != "new" {
		t.Fatalf("expected the newer result to survive, got %+v", items)
	}
}

func TestCollection_StaleFailureDiscarded(t *testing.T) {
	c := newItemCollection()

	first := c.BeginFetch()
	second := c.BeginFetch()

	if !c.CompleteFetch(second, []item{{ID: "new"}}, "") {
		t.Fatalf("newer fetch should apply")
	}
	if c.CompleteFetch(first, nil, "upstream unreachable") {
		t.Fatalf("stale failure should be discarded")
	}

	items, _, lastErr := c.Snapshot()
	if lastErr != "" {
		t.Fatalf("stale failure must not record an error, got %q", lastErr)
	}
	if len(items) != 1 {
		t.Fatalf("expected items intact, got %d", len(items))
	}
}

func TestCollection_FailureResetsItems(t *testing.T) {
	c := newItemCollection()

	seq := c.BeginFetch()
	c.CompleteFetch(seq, []item{{ID: "1"}}, "")

	seq = c.BeginFetch()
	c.CompleteFetch(seq, nil, "boom")

	items, loading, lastErr := c.Snapshot()
	if loading {
		t.Fatalf("expected loading cleared after failure")
	}
	if lastErr != "boom" {
		t.Fatalf("expected error recorded, got %q", lastErr)
	}
	if len(items) != 0 {
		t.Fatalf("expected items emptied on failure, got %d", len(items))
	}
}

func TestCollection_BeginFetchClearsError(t *testing.T) {
	c := newItemCollection()

	seq := c.BeginFetch()
	c.CompleteFetch(seq, nil, "boom")

	c.BeginFetch()
	if _, _, lastErr := c.Snapshot(); lastErr != "" {
		t.Fatalf("expected error cleared on new fetch, got %q", lastErr)
	}
}

func TestCollection_ReplaceByID(t *testing.T) {
	c := newItemCollection()
	seq := c.BeginFetch()
	c.CompleteFetch(seq, []item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}, "")

	if !c.ReplaceByID("2", item{ID: "2", Name: "b2"}) {
		t.Fatalf("expected replace to match")
	}
	if c.ReplaceByID("9", item{ID: "9"}) {
		t.Fatalf("unknown id must not match")
	}

	items, _, _ := c.Snapshot()
	if items[1].Name != "b2" {
		t.Fatalf("expected replaced element, got %+v", items[1])
	}
}

func TestCollection_RemoveByID(t *testing.T) {
	c := newItemCollection()
	seq := c.BeginFetch()
	c.CompleteFetch(seq, []item{{ID: "1"}, {ID: "2"}, {ID: "3"}}, "")

	if !c.RemoveByID("2") {
		t.Fatalf("expected remove to match")
	}
	if c.RemoveByID("2") {
		t.Fatalf("second remove must not match")
	}

	items, _, _ := c.Snapshot()
	if len(items) != 2 || items[0].ID != "1" || items[1].ID != "3" {
		t.Fatalf("unexpected items after remove: %+v", items)
	}
}

func TestCollection_SnapshotIsACopy(t *testing.T) {
	c := newItemCollection()
	seq := c.BeginFetch()
	c.CompleteFetch(seq, []item{{ID: "1", Name: "a"}}, "")

	items, _, _ := c.Snapshot()
	items[0].Name = "mutated"

	fresh, _, _ := c.Snapshot()
	if fresh[0].Name != "a" {
		t.Fatalf("snapshot must not alias internal state")
	}
}
