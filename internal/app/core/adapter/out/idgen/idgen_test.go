package idgen

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestSequenceGenerator(t *testing.T) {
	g := NewSequenceGenerator("T")
	if id := g.NewID(); id != "T000001" {
		t.Fatalf("id=%s want=T000001", id)
	}
	if id := g.NewID(); id != "T000002" {
		t.Fatalf("id=%s want=T000002", id)
	}
}

func TestSequenceGeneratorConcurrentUnique(t *testing.T) {
	g := NewSequenceGenerator("T")
	const n = 500
	ids := make(chan string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			ids <- g.NewID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestUUIDGenerator(t *testing.T) {
	g := NewUUIDGenerator()
	a, b := g.NewID(), g.NewID()
	if a == b {
		t.Fatal("uuids should differ")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Fatalf("not a uuid: %v", err)
	}
}

func TestSnowflakeGenerator(t *testing.T) {
	g, err := NewSnowflakeGenerator(7)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := g.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}

	if _, err := NewSnowflakeGenerator(1024); err == nil {
		t.Fatal("expected error for node out of range")
	}
}

func TestNew(t *testing.T) {
	for _, kind := range []string{"", KindUUID, KindSequence, KindSnowflake} {
		if _, err := New(kind, 1); err != nil {
			t.Fatalf("New(%q): %v", kind, err)
		}
	}
	if _, err := New("ulid", 0); err == nil {
		t.Fatal("expected error for unknown generator")
	}
}
