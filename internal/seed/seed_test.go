package seed

import (
	"testing"

	"github.com/Aashishkr2003/FactFusion/internal/cache"
)

func TestBatch(t *testing.T) {
	b, err := Batch()
	if err != nil {
		t.Fatalf("Batch: %v", err)
	}
	if b.Empty() {
		t.Fatal("seed batch must not be empty")
	}
	for _, a := range b.All() {
		if a.Type != cache.TypeNews && a.Type != cache.TypeBlogs {
			t.Errorf("seed article %q has invalid type %q", a.Title, a.Type)
		}
		if a.URL == "" {
			t.Errorf("seed article %q has no URL", a.Title)
		}
	}
}
