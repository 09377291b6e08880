package naming

import (
	"strings"
	"sync"
	"testing"
)

func TestRegistry_Next(t *testing.T) {
	r := NewRegistry()

	first := r.Next()
	if first.FileBase != "wrapped_code_0" || first.Module != "wrapper_module_0" {
		t.Errorf("first draw = %+v, want suffix 0", first)
	}

	second := r.Next()
	if second.FileBase != "wrapped_code_1" || second.Module != "wrapper_module_1" {
		t.Errorf("second draw = %+v, want suffix 1", second)
	}
}

func TestRegistry_SharedSuffix(t *testing.T) {
	r := NewRegistry()
	n := r.Next()

	base := strings.TrimPrefix(n.FileBase, "wrapped_code_")
	mod := strings.TrimPrefix(n.Module, "wrapper_module_")
	if base != mod {
		t.Errorf("file and module suffixes differ: %q vs %q", base, mod)
	}
}

func TestRegistry_ConcurrentUniqueness(t *testing.T) {
	r := NewRegistry()

	const draws = 200
	results := make(chan Names, draws)
	var wg sync.WaitGroup
	for i := 0; i < draws; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- r.Next()
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{}, draws)
	for n := range results {
		if _, dup := seen[n.Module]; dup {
			t.Fatalf("duplicate module name %q", n.Module)
		}
		seen[n.Module] = struct{}{}
	}
	if len(seen) != draws {
		t.Errorf("got %d unique names, want %d", len(seen), draws)
	}
}

func TestDefault_SameRegistry(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return the same registry")
	}
}
