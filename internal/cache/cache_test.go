package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("opening test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleBatch() Batch {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return Batch{
		News: []Article{
			{Title: "Fed raises rates", URL: "https://n.example/1", Author: "Jane", PublishedAt: now, Source: "Reuters", Type: TypeNews},
			{Title: "Markets rally", URL: "https://n.example/2", PublishedAt: now.Add(-time.Hour), Source: "AP", Type: TypeNews},
		},
		Blogs: []Article{
			{Title: "New Go release", URL: "https://b.example/1", Author: "Jane", PublishedAt: now.Add(-2 * time.Hour), Type: TypeBlogs},
		},
	}
}

func TestStoreAndLoad(t *testing.T) {
	s := testStore(t)

	if err := s.Store("dashboard", sampleBatch()); err != nil {
		t.Fatalf("store: %v", err)
	}

	got, savedAt, err := s.Load("dashboard")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.News) != 2 || len(got.Blogs) != 1 {
		t.Fatalf("expected 2 news + 1 blog, got %d + %d", len(got.News), len(got.Blogs))
	}
	if got.News[0].Title != "Fed raises rates" {
		t.Errorf("unexpected first article: %q", got.News[0].Title)
	}
	if time.Since(savedAt) > 5*time.Second {
		t.Errorf("saved_at too old: %v", savedAt)
	}
}

func TestLoadMissingKey(t *testing.T) {
	s := testStore(t)

	_, _, err := s.Load("never-written")
	if !errors.Is(err, ErrNoBatch) {
		t.Fatalf("expected ErrNoBatch, got %v", err)
	}
}

func TestStoreOverwrites(t *testing.T) {
	s := testStore(t)

	if err := s.Store("dashboard", sampleBatch()); err != nil {
		t.Fatalf("first store: %v", err)
	}
	replacement := Batch{News: []Article{{Title: "Only one", URL: "https://n.example/9", Type: TypeNews}}}
	if err := s.Store("dashboard", replacement); err != nil {
		t.Fatalf("second store: %v", err)
	}

	got, _, err := s.Load("dashboard")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// Superseded, not merged.
	if len(got.News) != 1 || len(got.Blogs) != 0 {
		t.Fatalf("expected replacement batch, got %d news + %d blogs", len(got.News), len(got.Blogs))
	}
	if got.News[0].Title != "Only one" {
		t.Errorf("expected replacement article, got %q", got.News[0].Title)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := testStore(t)

	if err := s.Store("dashboard", sampleBatch()); err != nil {
		t.Fatalf("store dashboard: %v", err)
	}
	if err := s.Store("payout", Batch{}); err != nil {
		t.Fatalf("store payout: %v", err)
	}

	got, _, err := s.Load("payout")
	if err != nil {
		t.Fatalf("load payout: %v", err)
	}
	if !got.Empty() {
		t.Error("expected empty payout batch")
	}

	got, _, err = s.Load("dashboard")
	if err != nil {
		t.Fatalf("load dashboard: %v", err)
	}
	if got.Empty() {
		t.Error("expected dashboard batch to survive")
	}
}

func TestAgeAndStale(t *testing.T) {
	s := testStore(t)

	if s.Stale("dashboard", time.Hour) != true {
		t.Error("missing batch should count as stale")
	}

	if err := s.Store("dashboard", sampleBatch()); err != nil {
		t.Fatalf("store: %v", err)
	}

	age, err := s.Age("dashboard")
	if err != nil {
		t.Fatalf("age: %v", err)
	}
	if age > 5*time.Second {
		t.Errorf("expected fresh batch, age %v", age)
	}
	if s.Stale("dashboard", time.Hour) {
		t.Error("fresh batch should not be stale within 1h window")
	}
	if !s.Stale("dashboard", 0) {
		t.Error("zero window should always be stale")
	}
}

func TestPrune(t *testing.T) {
	s := testStore(t)
	if err := s.Store("dashboard", sampleBatch()); err != nil {
		t.Fatalf("store: %v", err)
	}

	deleted, err := s.Prune(time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 0 {
		t.Errorf("fresh batch should survive prune, deleted %d", deleted)
	}

	// Backdate the batch and prune again.
	old := time.Now().UTC().Add(-48 * time.Hour).Format(time.RFC3339)
	if _, err := s.writeDB.Exec("UPDATE batches SET saved_at = ?", old); err != nil {
		t.Fatalf("backdating: %v", err)
	}
	deleted, err = s.Prune(24 * time.Hour)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 pruned batch, got %d", deleted)
	}
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Store("dashboard", sampleBatch()); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := s.Store("analytics", sampleBatch()); err != nil {
		t.Fatalf("store: %v", err)
	}

	batches, articles, size, err := s.Stats(dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if batches != 2 {
		t.Errorf("expected 2 batches, got %d", batches)
	}
	if articles != 6 {
		t.Errorf("expected 6 articles, got %d", articles)
	}
	if size == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestLastRefresh(t *testing.T) {
	s := testStore(t)

	if !s.LastRefresh().IsZero() {
		t.Error("expected zero last refresh on new store")
	}
	if err := s.SetLastRefresh(); err != nil {
		t.Fatalf("SetLastRefresh: %v", err)
	}
	if time.Since(s.LastRefresh()) > 5*time.Second {
		t.Errorf("last refresh too old: %v", s.LastRefresh())
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "deep", "test.db")

	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening db in nested dir: %v", err)
	}
	s.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestBatchHelpers(t *testing.T) {
	b := sampleBatch()
	if b.Empty() {
		t.Error("sample batch should not be empty")
	}
	if got := len(b.All()); got != 3 {
		t.Errorf("expected 3 combined articles, got %d", got)
	}
	if (Batch{}).Empty() != true {
		t.Error("zero batch should be empty")
	}
}
