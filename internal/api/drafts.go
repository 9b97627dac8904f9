package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
	"github.com/hugo-lorenzo-mato/devcontent/internal/service/drafts"
)

// DraftsResponse is the draft set plus the advisory tweet length.
type DraftsResponse struct {
	drafts.Set
	TwitterLength    int  `json:"twitter_length"`
	OverTwitterLimit bool `json:"over_twitter_limit"`
	TwitterLimit     int  `json:"twitter_limit"`
}

func newDraftsResponse(set drafts.Set) DraftsResponse {
	return DraftsResponse{
		Set:              set,
		TwitterLength:    set.Social.TwitterLength(),
		OverTwitterLimit: set.Social.OverTwitterLimit(),
		TwitterLimit:     drafts.TwitterLimit,
	}
}

func (s *Server) handleGetDrafts(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, newDraftsResponse(s.session.Drafts().Snapshot()))
}

// handlePutDraft replaces one bucket with the operator's edit.
func (s *Server) handlePutDraft(w http.ResponseWriter, r *http.Request) {
	store := s.session.Drafts()
	bucket := chi.URLParam(r, "bucket")

	switch bucket {
	case drafts.BucketEmail:
		var e drafts.EditableEmail
		if !decodeJSON(w, r, &e) {
			return
		}
		store.UpdateEmail(e)
	case drafts.BucketSocial:
		var v drafts.EditableSocial
		if !decodeJSON(w, r, &v) {
			return
		}
		store.UpdateSocial(v)
	case drafts.BucketBlog:
		var b drafts.EditableBlog
		if !decodeJSON(w, r, &b) {
			return
		}
		store.UpdateBlog(b)
	default:
		s.respondDomainError(w, core.ErrNotFound("draft bucket", bucket))
		return
	}

	respondJSON(w, http.StatusOK, newDraftsResponse(store.Snapshot()))
}
