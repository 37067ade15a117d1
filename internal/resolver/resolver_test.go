package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dorinm/sunetbot/internal/sounds"
)

func newTestResolver(t *testing.T, clips ...string) *Resolver {
	t.Helper()
	dir := t.TempDir()
	for _, name := range clips {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return New(sounds.NewLibrary(dir), "")
}

func TestFileRejectsUnsafeNames(t *testing.T) {
	r := newTestResolver(t)
	for _, name := range []string{"/etc/passwd", "..", "~me", ".env", "a/b.mp3"} {
		if _, err := r.File(name, false); err == nil {
			t.Errorf("File(%q) accepted an unsafe name", name)
		}
	}
}

func TestFileResolvesKnownClip(t *testing.T) {
	r := newTestResolver(t, "hello.mp3")
	tr, err := r.File("hello.mp3", false)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if tr.Title() != "hello.mp3" {
		t.Errorf("title = %q, want hello.mp3", tr.Title())
	}
}

func TestFileErrorIsResolveError(t *testing.T) {
	// No fallback clips exist in this library, so probing must fail.
	r := newTestResolver(t)
	_, err := r.File("missing.mp3", false)
	if err == nil {
		t.Fatal("expected an error for a library with no clips at all")
	}
	var re *ResolveError
	if !errors.As(err, &re) {
		t.Errorf("error type = %T, want *ResolveError", err)
	}
}

func TestURLRejectsNonHTTP(t *testing.T) {
	r := newTestResolver(t)
	if _, err := r.URL("ftp://example.com/x", false); err == nil {
		t.Error("non-http URL accepted")
	}
	var re *ResolveError
	if _, err := r.URL("notaurl", true); !errors.As(err, &re) {
		t.Errorf("error = %v, want *ResolveError", err)
	}
}

func TestLazyURLDefersResolution(t *testing.T) {
	r := newTestResolver(t)
	// An unreachable video must still produce a track when lazy: the cost
	// is paid at open time, not enqueue time.
	tr, err := r.URL("https://youtube.com/watch?v=doesnotmatter", true)
	if err != nil {
		t.Fatalf("lazy URL resolve: %v", err)
	}
	if tr == nil {
		t.Fatal("lazy resolve returned no track")
	}
}

func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://youtu.be/abc123", "abc123", false},
		{"https://youtu.be/abc123?t=5", "abc123", false},
		{"https://www.youtube.com/watch?v=xyz789", "xyz789", false},
		{"https://www.youtube.com/watch?v=xyz789&list=PL1", "xyz789", false},
		{"https://example.com/song.mp3", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := extractYouTubeID(tt.url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("id = %q, want %q", got, tt.want)
			}
		})
	}
}
