package router

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gohashira/wtf/internal/markup"
)

// SitemapEntry is one routable page in the navigation tree. Name is the
// display title, URLPath the route, Children the pages nested under it.
// Entries carry no back-pointers; the tree is plain owned data.
type SitemapEntry struct {
	Name     string
	URLPath  string
	Children []SitemapEntry
}

// BuildSitemap walks the content root and returns the navigation tree.
// It is rebuilt from the filesystem on every call; there is no cache, so
// edits to the content tree show up immediately.
//
// Excluded from the tree: 404.md files (reserved for fallback pages),
// directory index files (the directory itself is the entry), and standalone
// files shadowed by a same-named directory index (unreachable as routes).
// Entries are in route-name order at every level, root first.
func (r *Router) BuildSitemap() ([]SitemapEntry, error) {
	var entries []SitemapEntry

	rootFile := filepath.Join(r.contentRoot, rootFilename)
	ok, err := r.isFile(rootFile)
	if err != nil {
		return nil, err
	}
	if ok {
		entries = append(entries, SitemapEntry{
			Name:    r.entryTitle(rootFile, strings.TrimSuffix(rootFilename, mdExtension)),
			URLPath: pathSeparator,
		})
	}

	scanned, err := r.scanDirectory(r.contentRoot, "", "")
	if err != nil {
		return nil, err
	}
	return append(entries, scanned...), nil
}

// scanDirectory builds the sitemap entries for one directory level.
// indexFilename names the directory's own index file, which must not appear
// as a child of itself; it is empty at the content root.
func (r *Router) scanDirectory(dirPath, urlPrefix, indexFilename string) ([]SitemapEntry, error) {
	dirEntries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, &IOError{Path: dirPath, Err: err}
	}

	var entries []SitemapEntry

	// os.ReadDir returns entries sorted by filename, which keeps every
	// level of the tree in deterministic route order.
	for _, entry := range dirEntries {
		name := entry.Name()

		if entry.IsDir() {
			indexName := name + mdExtension
			indexPath := filepath.Join(dirPath, name, indexName)
			ok, err := r.isFile(indexPath)
			if err != nil {
				return nil, err
			}
			if !ok {
				// A directory without an index file has no page of
				// its own and nothing routable below it.
				continue
			}

			urlPath := urlPrefix + pathSeparator + name
			children, err := r.scanDirectory(filepath.Join(dirPath, name), urlPath, indexName)
			if err != nil {
				return nil, err
			}
			entries = append(entries, SitemapEntry{
				Name:     r.entryTitle(indexPath, name),
				URLPath:  urlPath,
				Children: children,
			})
			continue
		}

		if !strings.HasSuffix(name, mdExtension) {
			continue
		}
		if name == notFoundFilename || name == rootFilename || name == indexFilename {
			continue
		}

		base := strings.TrimSuffix(name, mdExtension)

		// A standalone file shadowed by a same-named directory index is
		// unreachable as its own route; the directory entry covers it.
		shadowIndex := filepath.Join(dirPath, base, name)
		shadowed, err := r.isFile(shadowIndex)
		if err != nil {
			return nil, err
		}
		if shadowed {
			continue
		}

		entries = append(entries, SitemapEntry{
			Name:    r.entryTitle(filepath.Join(dirPath, name), base),
			URLPath: urlPrefix + pathSeparator + base,
		})
	}

	return entries, nil
}

// entryTitle derives an entry's display title from the file's first
// level-1 heading, the same derivation the renderer uses for page titles.
// Unreadable or unparsable files fall back to the route name so one broken
// file cannot take down navigation.
func (r *Router) entryTitle(path, fallback string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback
	}
	doc, err := markup.Parse(string(data))
	if err != nil {
		return fallback
	}
	if len(doc.Sections) > 0 && doc.Sections[0].Level == 1 {
		if title := markup.InlineText(doc.Sections[0].Title); title != "" {
			return title
		}
	}
	return fallback
}
