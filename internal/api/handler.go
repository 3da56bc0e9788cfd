package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/gohashira/wtf/internal/htmlwriter"
	"github.com/gohashira/wtf/internal/markup"
	"github.com/gohashira/wtf/internal/router"
)

const (
	generic400Body = "<h1>400 Bad Request</h1><p>The requested path is not valid.</p>"
	generic404Body = "<h1>404 Not Found</h1><p>The requested page could not be found.</p>"
	generic500Body = "<h1>500 Internal Server Error</h1><p>Something went wrong while serving this page.</p>"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path

	resolved, err := s.router.ResolvePath(urlPath)
	if err != nil {
		var traversal *router.PathTraversalError
		if errors.As(err, &traversal) {
			s.log.Warn("rejected request path", "path", urlPath, "error", err)
			s.writeHTML(w, http.StatusBadRequest,
				htmlwriter.WrapDocument("400 Bad Request", generic400Body))
			return
		}
		s.log.Error("path resolution failed", "path", urlPath, "error", err)
		s.writeHTML(w, http.StatusInternalServerError,
			htmlwriter.WrapDocument("500 Internal Server Error", generic500Body))
		return
	}

	if resolved.IsFound() {
		s.servePage(w, resolved.Path, http.StatusOK, urlPath)
		return
	}

	s.log.Info("page not found", "path", urlPath, "attempted", resolved.Attempted)
	if fallback, ok := s.router.Resolve404(urlPath); ok {
		s.servePage(w, fallback, http.StatusNotFound, urlPath)
		return
	}
	s.serveGeneric404(w, urlPath)
}

// servePage reads, parses and renders a markup file, then writes it with the
// given status. Any failure along the way collapses to a generic 500; the
// detail goes to the log only.
func (s *Server) servePage(w http.ResponseWriter, filePath string, status int, urlPath string) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		s.log.Error("failed to read page", "file", filePath, "error", err)
		s.serveGeneric500(w)
		return
	}

	doc, err := markup.Parse(string(data))
	if err != nil {
		s.log.Error("failed to parse page", "file", filePath, "error", err)
		s.serveGeneric500(w)
		return
	}

	body, err := s.writer.WriteDocument(doc)
	if err != nil {
		s.log.Error("failed to render page", "file", filePath, "error", err)
		s.serveGeneric500(w)
		return
	}

	sitemap, err := s.router.BuildSitemap()
	if err != nil {
		s.log.Error("failed to build sitemap", "error", err)
		s.serveGeneric500(w)
		return
	}

	title := htmlwriter.ExtractTitle(doc)
	footer := htmlwriter.FooterHTML(sitemap, urlPath)
	s.writeHTML(w, status, htmlwriter.WrapDocument(title, body+footer))
}

func (s *Server) serveGeneric404(w http.ResponseWriter, urlPath string) {
	footer := ""
	if sitemap, err := s.router.BuildSitemap(); err == nil {
		footer = htmlwriter.FooterHTML(sitemap, urlPath)
	} else {
		s.log.Error("failed to build sitemap", "error", err)
	}
	s.writeHTML(w, http.StatusNotFound,
		htmlwriter.WrapDocument("404 Not Found", generic404Body+footer))
}

func (s *Server) serveGeneric500(w http.ResponseWriter) {
	s.writeHTML(w, http.StatusInternalServerError,
		htmlwriter.WrapDocument("500 Internal Server Error", generic500Body))
}

func (s *Server) writeHTML(w http.ResponseWriter, status int, html string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(html))
}
