package server

import (
	"net/http"
	"nutzy-site/feed"
)

func (s *Server) handleRSS(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.posts.Snapshot()
	if !snapshot.Available {
		writeUnavailable(w)
		return
	}
	body, err := feed.RSS(s.channel, snapshot.Entries(), s.now())
	if err != nil {
		s.log.Error("Unable to render rss feed", "error", err)
		writeError(w, http.StatusInternalServerError, "feed unavailable")
		return
	}
	writeXML(w, body)
}

// handleSitemap still lists the static routes when a collection is unavailable.
func (s *Server) handleSitemap(w http.ResponseWriter, _ *http.Request) {
	body, err := feed.Sitemap(s.siteURL, s.routes, s.posts.All(), s.events.All(), s.now())
	if err != nil {
		s.log.Error("Unable to render sitemap", "error", err)
		writeError(w, http.StatusInternalServerError, "sitemap unavailable")
		return
	}
	writeXML(w, body)
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", feedCacheHeader)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
