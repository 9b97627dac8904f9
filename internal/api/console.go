package api

import (
	"net/http"
	"strings"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// ViewResponse is the current view and the navigation list.
type ViewResponse struct {
	View  core.View  `json:"view"`
	Views []ViewInfo `json:"views"`
}

// ViewInfo names one navigable view.
type ViewInfo struct {
	ID    core.View `json:"id"`
	Label string    `json:"label"`
}

type viewRequest struct {
	View string `json:"view"`
}

type applyTrendRequest struct {
	Name  string `json:"name"`
	Angle string `json:"angle"`
}

type applyTrendResponse struct {
	Focus string `json:"focus"`
}

type sampleRequest struct {
	Enabled *bool `json:"enabled"`
}

type sampleResponse struct {
	Enabled bool `json:"enabled"`
}

func (s *Server) viewResponse() ViewResponse {
	all := core.AllViews()
	views := make([]ViewInfo, 0, len(all))
	for _, v := range all {
		views = append(views, ViewInfo{ID: v, Label: v.Label()})
	}
	return ViewResponse{View: s.session.Navigation().Current(), Views: views}
}

func (s *Server) handleGetSession(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleGetView(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) handlePutView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := core.ParseView(req.View)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	s.session.Navigation().Select(view)
	respondJSON(w, http.StatusOK, s.viewResponse())
}

func (s *Server) handleApplyTrend(w http.ResponseWriter, r *http.Request) {
	var req applyTrendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		s.respondDomainError(w, core.ErrValidation(core.CodeInvalidInput, "A trend name is required."))
		return
	}
	focus := s.session.ApplyTrend(req.Name, req.Angle)
	respondJSON(w, http.StatusOK, applyTrendResponse{Focus: focus})
}

func (s *Server) handleGetSample(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, sampleResponse{Enabled: s.session.SampleMode()})
}

func (s *Server) handlePutSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Enabled == nil {
		s.respondDomainError(w, core.ErrValidation(core.CodeInvalidInput, "enabled is required."))
		return
	}
	s.session.SetSampleMode(*req.Enabled)
	respondJSON(w, http.StatusOK, sampleResponse{Enabled: s.session.SampleMode()})
}

func (s *Server) handleGetPresets(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Presets())
}

func (s *Server) handleListAgents(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Agents())
}

func (s *Server) handleGetSystem(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.host.Collect())
}
