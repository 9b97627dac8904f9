package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hugo-lorenzo-mato/devcontent/internal/core"
)

// StartResponse is returned by a successful workflow start.
type StartResponse struct {
	Kind         core.WorkflowKind `json:"kind"`
	InvocationID string            `json:"invocation_id"`
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.session.Runner().States())
}

func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}
	st, _ := s.session.Runner().State(kind)
	respondJSON(w, http.StatusOK, st)
}

func (s *Server) handleStartWorkflow(w http.ResponseWriter, r *http.Request) {
	kind, ok := s.kindParam(w, r)
	if !ok {
		return
	}

	input, err := decodeInput(kind, r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	id, err := s.session.Start(r.Context(), input)
	if err != nil {
		s.respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusAccepted, StartResponse{Kind: kind, InvocationID: id})
}

// kindParam resolves the {kind} path segment. Unknown kinds are 404.
func (s *Server) kindParam(w http.ResponseWriter, r *http.Request) (core.WorkflowKind, bool) {
	raw := chi.URLParam(r, "kind")
	kind, err := core.ParseKind(raw)
	if err != nil {
		s.respondDomainError(w, core.ErrNotFound("workflow", raw))
		return "", false
	}
	return kind, true
}

// decodeInput reads the kind-specific input. An empty body is the zero
// input, which the kind's own validation then judges.
func decodeInput(kind core.WorkflowKind, body io.Reader) (core.WorkflowInput, error) {
	var target core.WorkflowInput
	switch kind {
	case core.KindGenerate:
		target = &core.GenerateInput{}
	case core.KindDeliver:
		target = &core.DeliverInput{}
	case core.KindAnalyze:
		target = &core.AnalyzeInput{}
	case core.KindScan:
		target = &core.ScanInput{}
	default:
		return nil, errors.New("unknown workflow kind")
	}

	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return target, nil
}
