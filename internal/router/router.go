// Package router resolves URL paths against a content-root directory of
// markup files and builds the site's navigation tree.
//
// Routing rules:
//   - "/"            → <root>/root.md
//   - "/home"        → <root>/home/home.md (directory index) or <root>/home.md
//   - "/home/about"  → <root>/home/about/about.md or <root>/home/about.md
//
// The directory index always wins. 404.md files are reserved for the
// hierarchical fallback walk and are never routable pages; root.md serves
// only the root path. The router holds
// no mutable state beyond the canonical content root captured at
// construction, so a single instance is safe for concurrent use.
package router

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

const (
	rootFilename     = "root.md"
	notFoundFilename = "404.md"
	mdExtension      = ".md"
	pathSeparator    = "/"
)

// ResolvedPath is the outcome of resolving a URL path. Path is empty when
// nothing matched; Attempted lists the candidate files tried, for
// diagnostics.
type ResolvedPath struct {
	Path      string
	Attempted []string
}

// IsFound reports whether resolution produced a servable file.
func (r ResolvedPath) IsFound() bool {
	return r.Path != ""
}

// Router maps URL paths to files under an immutable content root.
type Router struct {
	contentRoot string
}

// New validates and canonicalizes the content root and returns a Router
// bound to it.
func New(contentRoot string) (*Router, error) {
	info, err := os.Stat(contentRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ContentRootError{Path: contentRoot, Reason: "path does not exist"}
		}
		return nil, &IOError{Path: contentRoot, Err: err}
	}
	if !info.IsDir() {
		return nil, &ContentRootError{Path: contentRoot, Reason: "path is not a directory"}
	}

	canonical, err := filepath.EvalSymlinks(contentRoot)
	if err != nil {
		return nil, &IOError{Path: contentRoot, Err: err}
	}
	canonical, err = filepath.Abs(canonical)
	if err != nil {
		return nil, &IOError{Path: contentRoot, Err: err}
	}

	return &Router{contentRoot: canonical}, nil
}

// ContentRoot returns the canonical content root directory.
func (r *Router) ContentRoot() string {
	return r.contentRoot
}

// ResolvePath resolves a URL path to a file under the content root.
// Sanitization failures and resolved files that escape the root return
// *PathTraversalError; filesystem failures return *IOError.
func (r *Router) ResolvePath(urlPath string) (ResolvedPath, error) {
	sanitized, err := r.sanitizePath(urlPath)
	if err != nil {
		return ResolvedPath{}, err
	}

	// Root path maps only to root.md.
	if sanitized == "" {
		rootFile := filepath.Join(r.contentRoot, rootFilename)
		ok, err := r.isFile(rootFile)
		if err != nil {
			return ResolvedPath{}, err
		}
		if ok {
			return r.found(urlPath, rootFile)
		}
		return ResolvedPath{Attempted: []string{rootFile}}, nil
	}

	segments := strings.Split(sanitized, pathSeparator)
	last := segments[len(segments)-1]

	// root.md and 404.md are reserved filenames: the former is the front
	// page, the latter the fallback page. Neither resolves as an ordinary
	// route, at any depth.
	if last+mdExtension == rootFilename || last+mdExtension == notFoundFilename {
		return ResolvedPath{}, nil
	}

	// A path whose last two segments match (e.g. /home/home) would serve
	// the same file the shorter /home form already serves; reject it so a
	// page has exactly one URL.
	if len(segments) >= 2 && segments[len(segments)-2] == last {
		return ResolvedPath{}, nil
	}

	var attempted []string

	// Directory index takes priority over the standalone file.
	dirIndex := filepath.Join(append(append([]string{r.contentRoot}, segments...), last+mdExtension)...)
	attempted = append(attempted, dirIndex)
	ok, err := r.isFile(dirIndex)
	if err != nil {
		return ResolvedPath{}, err
	}
	if ok {
		return r.found(urlPath, dirIndex)
	}

	standalone := filepath.Join(append(append([]string{r.contentRoot}, segments[:len(segments)-1]...), last+mdExtension)...)
	attempted = append(attempted, standalone)
	ok, err = r.isFile(standalone)
	if err != nil {
		return ResolvedPath{}, err
	}
	if ok {
		return r.found(urlPath, standalone)
	}

	return ResolvedPath{Attempted: attempted}, nil
}

// Resolve404 walks from the directory implied by the URL path up to the
// content root, returning the first 404.md found. The walk is best-effort:
// unsanitizable paths and filesystem errors report no fallback page.
func (r *Router) Resolve404(urlPath string) (string, bool) {
	sanitized, err := r.sanitizePath(urlPath)
	if err != nil {
		return "", false
	}

	var segments []string
	if sanitized != "" {
		segments = strings.Split(sanitized, pathSeparator)
	}

	for depth := len(segments); depth >= 0; depth-- {
		candidate := filepath.Join(append(append([]string{r.contentRoot}, segments[:depth]...), notFoundFilename)...)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}

	return "", false
}

// found runs the symlink escape check on a matched candidate.
func (r *Router) found(urlPath, candidate string) (ResolvedPath, error) {
	resolved, err := filepath.EvalSymlinks(candidate)
	if err != nil {
		return ResolvedPath{}, &IOError{Path: candidate, Err: err}
	}
	if resolved != r.contentRoot && !strings.HasPrefix(resolved, r.contentRoot+string(os.PathSeparator)) {
		return ResolvedPath{}, &PathTraversalError{Path: urlPath, Reason: "resolved file escapes content root"}
	}
	return ResolvedPath{Path: candidate}, nil
}

// sanitizePath strips the leading slash and validates the remainder.
// It returns "" for the root path. Dot segments are rejected outright
// rather than cleaned away: cleaning first would change the meaning of a
// traversal attempt instead of refusing it.
func (r *Router) sanitizePath(urlPath string) (string, error) {
	if len(urlPath) > 1 && strings.HasSuffix(urlPath, pathSeparator) {
		return "", &PathTraversalError{Path: urlPath, Reason: "trailing slashes are not allowed"}
	}

	path := strings.TrimPrefix(urlPath, pathSeparator)
	if path == "" {
		return "", nil
	}

	for _, segment := range strings.Split(path, pathSeparator) {
		switch segment {
		case "..":
			return "", &PathTraversalError{Path: urlPath, Reason: "path contains '..' segment"}
		case ".":
			return "", &PathTraversalError{Path: urlPath, Reason: "path contains '.' segment"}
		case "":
			return "", &PathTraversalError{Path: urlPath, Reason: "path contains empty segment (double slash)"}
		}
	}

	return path, nil
}

// isFile reports whether path exists and is a regular file. Stat failures
// other than not-exist surface as *IOError. ENOTDIR means a parent segment
// is a plain file, which is just another way for the candidate not to exist.
func (r *Router) isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return false, nil
		}
		return false, &IOError{Path: path, Err: err}
	}
	return info.Mode().IsRegular(), nil
}
