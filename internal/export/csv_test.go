package export

import (
	"strings"
	"testing"
	"time"

	"github.com/Aashishkr2003/FactFusion/internal/analytics"
	"github.com/Aashishkr2003/FactFusion/internal/cache"
)

func sampleRows() []analytics.PayoutRow {
	return []analytics.PayoutRow{
		{Author: "Jane", Type: cache.TypeNews, Count: 2, Rate: 3.0, Total: 6.0},
		{Author: "Jane", Type: cache.TypeBlogs, Count: 1, Rate: 3.0, Total: 3.0},
		{Author: "Unknown", Type: cache.TypeNews, Count: 4, Rate: 2.0, Total: 8.0},
	}
}

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, sampleRows()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Author,Type,Articles,Rate,Total" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "Jane,news,2,3.00,6.00" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}

func TestWritePDFProducesDocument(t *testing.T) {
	var sb strings.Builder
	err := WritePDF(&sb, sampleRows(), time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	out := sb.String()
	if !strings.HasPrefix(out, "%PDF") {
		t.Error("expected output to start with a PDF header")
	}
}
