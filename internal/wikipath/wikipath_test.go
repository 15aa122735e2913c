package wikipath_test

import (
	"testing"

	"github.com/euforicio/wikipage/internal/wikipath"
)

func TestEncodeSpaces(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"no-spaces.png", "no-spaces.png"},
		{"foo with spaces.png", "foo%20with%20spaces.png"},
		{"  ", "%20%20"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := wikipath.EncodeSpaces(tt.in); got != tt.want {
			t.Errorf("EncodeSpaces(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClean(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want string
	}{
		{"a/./b", "a/b"},
		{"a/b/../c", "a/c"},
		{"../../a", "../../a"},
		{"a/../../b", "../b"},
		{"/a/b/../c", "/a/c"},
		{"./x", "x"},
	}
	for _, tt := range tests {
		if got := wikipath.Clean(tt.in); got != tt.want {
			t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()
	tests := []struct {
		dir  string
		path string
		want string
	}{
		{"/a/b", "c.png", "/a/b/c.png"},
		{"/a/b", "../c.png", "/a/c.png"},
		{"/a/b", "/abs/c.png", "/abs/c.png"},
	}
	for _, tt := range tests {
		if got := wikipath.Join(tt.dir, tt.path); got != tt.want {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.dir, tt.path, got, tt.want)
		}
	}
}

func TestDiff(t *testing.T) {
	t.Parallel()
	got, ok := wikipath.Diff("/abs/path/to/Document/foo.xyz", "/abs/path/to/whatever")
	if !ok {
		t.Fatalf("Diff reported no relation")
	}
	if got != "../Document/foo.xyz" {
		t.Fatalf("Diff = %q, want ../Document/foo.xyz", got)
	}

	if _, ok := wikipath.Diff("relative/path", "/absolute/base"); ok {
		t.Fatalf("expected no relation between relative target and absolute base")
	}
}

func TestExtHelpers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		strip   string
		replace string
	}{
		{"page.wiki", "page", "page.html"},
		{"page", "page", "page.html"},
		{"dir/page.tar.gz", "dir/page.tar", "dir/page.tar.html"},
		{".profile", ".profile", ".profile.html"},
	}
	for _, tt := range tests {
		if got := wikipath.StripExt(tt.in); got != tt.strip {
			t.Errorf("StripExt(%q) = %q, want %q", tt.in, got, tt.strip)
		}
		if got := wikipath.ReplaceExt(tt.in, "html"); got != tt.replace {
			t.Errorf("ReplaceExt(%q) = %q, want %q", tt.in, got, tt.replace)
		}
	}
}
