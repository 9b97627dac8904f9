package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// handleListCampaigns lists the ledger, newest first. With ?q= the list is
// a fuzzy search over title and repository, best match first.
func (s *Server) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	records := s.session.Ledger().Search(r.URL.Query().Get("q"))
	respondJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	rec, err := s.session.Ledger().Get(chi.URLParam(r, "id"))
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}
