package cache

import "testing"

func TestLRUEvictsLeastRecent(t *testing.T) {
	c := New[string, string](2)
	c.Add("a", "1")
	c.Add("b", "2")

	if _, ok := c.Get("a"); !ok { // a becomes MRU
		t.Fatalf("a missing")
	}
	c.Add("c", "3") // evicts b

	if _, ok := c.Get("b"); ok {
		t.Fatalf("b should have been evicted")
	}
	if v, ok := c.Get("a"); !ok || v != "1" {
		t.Fatalf("a = %q, %v", v, ok)
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestLRUUpdateInPlace(t *testing.T) {
	c := New[string, int](1)
	c.Add("k", 1)
	c.Add("k", 2)
	if v, _ := c.Get("k"); v != 2 || c.Len() != 1 {
		t.Fatalf("got %d len %d", v, c.Len())
	}
}

func TestLRUPanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	New[string, string](0)
}
