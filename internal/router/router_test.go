package router

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newTestContentRoot creates this layout:
//
//	root.md
//	404.md
//	home.md
//	home/
//	  home.md
//	  about.md
//	  about/
//	    about.md
//	    404.md
//	    me.md
func newTestContentRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "root.md", "# Welcome\n\nRoot content")
	writeFile(t, root, "404.md", "# Not Found\n\nRoot 404")
	writeFile(t, root, "home.md", "Home file")

	mkdir(t, root, "home")
	writeFile(t, root, "home/home.md", "# Home\n\nHome dir content")
	writeFile(t, root, "home/about.md", "About file")

	mkdir(t, root, "home/about")
	writeFile(t, root, "home/about/about.md", "# About Us\n\nAbout dir content")
	writeFile(t, root, "home/about/404.md", "# Page Not Found\n\nSection 404")
	writeFile(t, root, "home/about/me.md", "# Me\n\nhello")

	return root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	if err := os.Mkdir(filepath.Join(root, rel), 0o755); err != nil {
		t.Fatalf("creating %s: %v", rel, err)
	}
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New(newTestContentRoot(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNew_ValidRoot(t *testing.T) {
	if _, err := New(newTestContentRoot(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNew_NonexistentRoot(t *testing.T) {
	_, err := New("/nonexistent/path")

	var rootErr *ContentRootError
	if !errors.As(err, &rootErr) {
		t.Fatalf("expected ContentRootError, got %v", err)
	}
}

func TestNew_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "file.md", "content")

	_, err := New(filepath.Join(root, "file.md"))
	var rootErr *ContentRootError
	if !errors.As(err, &rootErr) {
		t.Fatalf("expected ContentRootError, got %v", err)
	}
}

func TestResolvePath_Root(t *testing.T) {
	r := newTestRouter(t)

	resolved, err := r.ResolvePath("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.IsFound() {
		t.Fatalf("expected root.md to resolve")
	}
	if !strings.HasSuffix(resolved.Path, "root.md") {
		t.Errorf("expected root.md, got %s", resolved.Path)
	}
}

func TestResolvePath_DirectoryIndexWins(t *testing.T) {
	// Both home.md and home/home.md exist; the directory index wins.
	r := newTestRouter(t)

	resolved, err := r.ResolvePath("/home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.IsFound() {
		t.Fatalf("expected /home to resolve")
	}
	if !strings.HasSuffix(resolved.Path, filepath.Join("home", "home.md")) {
		t.Errorf("expected directory index home/home.md, got %s", resolved.Path)
	}
}

func TestResolvePath_StandaloneFile(t *testing.T) {
	r := newTestRouter(t)

	resolved, err := r.ResolvePath("/home/about/me")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.IsFound() {
		t.Fatalf("expected /home/about/me to resolve")
	}
	if !strings.HasSuffix(resolved.Path, filepath.Join("about", "me.md")) {
		t.Errorf("expected me.md, got %s", resolved.Path)
	}
}

func TestResolvePath_StandaloneFallbackWithoutIndex(t *testing.T) {
	root := newTestContentRoot(t)
	if err := os.Remove(filepath.Join(root, "home", "home.md")); err != nil {
		t.Fatal(err)
	}
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	resolved, err := r.ResolvePath("/home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resolved.IsFound() {
		t.Fatalf("expected /home to resolve to the standalone file")
	}
	if strings.HasSuffix(resolved.Path, filepath.Join("home", "home.md")) {
		t.Errorf("resolved the removed directory index: %s", resolved.Path)
	}
}

func TestResolvePath_NotFoundListsAttempts(t *testing.T) {
	r := newTestRouter(t)

	resolved, err := r.ResolvePath("/nonexistent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resolved.IsFound() {
		t.Fatalf("expected NotFound, got %s", resolved.Path)
	}
	if len(resolved.Attempted) != 2 {
		t.Fatalf("expected 2 attempted candidates, got %d", len(resolved.Attempted))
	}
	if !strings.HasSuffix(resolved.Attempted[0], filepath.Join("nonexistent", "nonexistent.md")) {
		t.Errorf("expected directory index candidate first, got %s", resolved.Attempted[0])
	}
	if !strings.HasSuffix(resolved.Attempted[1], "nonexistent.md") {
		t.Errorf("expected standalone candidate second, got %s", resolved.Attempted[1])
	}
}

func TestResolvePath_DuplicateFinalSegmentRejected(t *testing.T) {
	r := newTestRouter(t)

	for _, urlPath := range []string{"/home/home", "/home/about/about"} {
		resolved, err := r.ResolvePath(urlPath)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", urlPath, err)
		}
		if resolved.IsFound() {
			t.Errorf("%s: expected NotFound, got %s", urlPath, resolved.Path)
		}
	}
}

func TestResolvePath_ReservedFilenamesNotRoutable(t *testing.T) {
	r := newTestRouter(t)

	for _, urlPath := range []string{"/404", "/home/about/404", "/root"} {
		resolved, err := r.ResolvePath(urlPath)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", urlPath, err)
		}
		if resolved.IsFound() {
			t.Errorf("%s: expected NotFound, got %s", urlPath, resolved.Path)
		}
		if len(resolved.Attempted) != 0 {
			t.Errorf("%s: expected no attempted candidates, got %v", urlPath, resolved.Attempted)
		}
	}
}

func TestResolvePath_DifferentSegmentsUnaffected(t *testing.T) {
	r := newTestRouter(t)

	for _, urlPath := range []string{"/home/about", "/home/about/me"} {
		resolved, err := r.ResolvePath(urlPath)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", urlPath, err)
		}
		if !resolved.IsFound() {
			t.Errorf("%s: expected Found", urlPath)
		}
	}
}

func TestResolvePath_TraversalRejected(t *testing.T) {
	r := newTestRouter(t)

	for _, urlPath := range []string{
		"/../etc/passwd",
		"/a/../b",
		"/./home",
		"/home//about",
		"/home/",
	} {
		_, err := r.ResolvePath(urlPath)
		var travErr *PathTraversalError
		if !errors.As(err, &travErr) {
			t.Errorf("%s: expected PathTraversalError, got %v", urlPath, err)
		}
	}
}

func TestResolvePath_SymlinkEscapeRejected(t *testing.T) {
	root := newTestContentRoot(t)

	outside := t.TempDir()
	writeFile(t, outside, "secret.md", "# Secret")
	if err := os.Symlink(filepath.Join(outside, "secret.md"), filepath.Join(root, "leak.md")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	_, err = r.ResolvePath("/leak")
	var travErr *PathTraversalError
	if !errors.As(err, &travErr) {
		t.Fatalf("expected PathTraversalError for symlink escape, got %v", err)
	}
}

func TestResolve404_DeepestFirst(t *testing.T) {
	r := newTestRouter(t)

	path, ok := r.Resolve404("/home/about/nonexistent")
	if !ok {
		t.Fatalf("expected a 404 page")
	}
	if !strings.HasSuffix(path, filepath.Join("about", "404.md")) {
		t.Errorf("expected the about section 404, got %s", path)
	}
}

func TestResolve404_FallsBackToRoot(t *testing.T) {
	r := newTestRouter(t)

	path, ok := r.Resolve404("/nonexistent")
	if !ok {
		t.Fatalf("expected the root 404 page")
	}
	if !strings.HasSuffix(path, "404.md") {
		t.Errorf("expected 404.md, got %s", path)
	}
}

func TestResolve404_RootOnlyCoversDeepPaths(t *testing.T) {
	r := newTestRouter(t)
	// Only the root 404.md exists above this subtree.
	path, ok := r.Resolve404("/a/b/c")
	if !ok {
		t.Fatalf("expected the root 404 page")
	}
	if path != filepath.Join(r.ContentRoot(), "404.md") {
		t.Errorf("expected root 404.md, got %s", path)
	}
}

func TestResolve404_None(t *testing.T) {
	root := newTestContentRoot(t)
	if err := os.Remove(filepath.Join(root, "404.md")); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(root, "home/about/404.md")); err != nil {
		t.Fatal(err)
	}
	r, err := New(root)
	if err != nil {
		t.Fatal(err)
	}

	if path, ok := r.Resolve404("/home/about/nonexistent"); ok {
		t.Errorf("expected no 404 page, got %s", path)
	}
}

func TestResolve404_InvalidPath(t *testing.T) {
	r := newTestRouter(t)

	if path, ok := r.Resolve404("/../escape"); ok {
		t.Errorf("expected no 404 page for invalid path, got %s", path)
	}
}
