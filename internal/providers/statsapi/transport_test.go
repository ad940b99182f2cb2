package statsapi

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeBaseURL(t *testing.T) {
	if got := normalizeBaseURL(""); got != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", got)
	}
	if got := normalizeBaseURL("https://example.test/v1/"); got != "https://example.test/v1" {
		t.Fatalf("expected trailing slash trimmed, got %q", got)
	}
}

func TestResolveLocation(t *testing.T) {
	if loc := resolveLocation(""); loc == nil {
		t.Fatalf("expected default location")
	}
	if loc := resolveLocation("not/a/zone"); loc != time.UTC {
		t.Fatalf("expected UTC for unknown zone, got %v", loc)
	}
	if loc := resolveLocation("UTC"); loc != time.UTC {
		t.Fatalf("expected UTC, got %v", loc)
	}
}

func TestTruncateBody(t *testing.T) {
	if got := truncateBody([]byte("  short  ")); got != "short" {
		t.Fatalf("expected trimmed body, got %q", got)
	}
	long := strings.Repeat("x", maxErrorBody+50)
	got := truncateBody([]byte(long))
	if len(got) != maxErrorBody+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated body with ellipsis, got %d bytes", len(got))
	}
}
