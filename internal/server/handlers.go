package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vocamap/vocamap/pkg/buildinfo"
	vocerrors "github.com/vocamap/vocamap/pkg/errors"
	"github.com/vocamap/vocamap/pkg/layout"
	"github.com/vocamap/vocamap/pkg/observability"
	"github.com/vocamap/vocamap/pkg/ontology"
	"github.com/vocamap/vocamap/pkg/pipeline"
	"github.com/vocamap/vocamap/pkg/store"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// putProjectResponse acknowledges a snapshot upsert.
type putProjectResponse struct {
	Project  string   `json:"project"`
	Classes  int      `json:"classes"`
	Warnings []string `json:"warnings,omitempty"`
}

// layoutResponse wraps a computed layout for JSON responses.
type layoutResponse struct {
	Project      string        `json:"project,omitempty"`
	SnapshotHash string        `json:"snapshot_hash,omitempty"`
	Layout       layout.Record `json:"layout"`
	Warnings     []string      `json:"warnings,omitempty"`
	CacheHit     bool          `json:"cache_hit"`
}

// adhocLayoutRequest is the body of POST /v1/layout.
type adhocLayoutRequest struct {
	Snapshot      ontology.Snapshot `json:"snapshot"`
	SelectedClass string            `json:"selected_class,omitempty"`
	Format        string            `json:"format,omitempty"`
	Style         string            `json:"style,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListProjects(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if infos == nil {
		infos = []store.ProjectInfo{}
	}
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handlePutProject(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")
	if err := vocerrors.ValidateProjectID(project); err != nil {
		s.writeError(w, r, err)
		return
	}

	var snap ontology.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid snapshot payload: " + err.Error(),
			Code:  string(vocerrors.ErrCodeInvalidSnapshot),
		})
		return
	}
	// The URL is authoritative for the project ID.
	snap.Project = project

	start := time.Now()
	if err := s.store.PutSnapshot(r.Context(), snap); err != nil {
		observability.Store().OnStoreError(r.Context(), "put", project, err)
		s.writeError(w, r, err)
		return
	}
	observability.Store().OnStorePut(r.Context(), project, len(snap.Classes), time.Since(start))

	writeJSON(w, http.StatusOK, putProjectResponse{
		Project:  project,
		Classes:  len(snap.Classes),
		Warnings: snap.Validate(),
	})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	start := time.Now()
	snap, err := s.store.GetSnapshot(r.Context(), project)
	observability.Store().OnStoreGet(r.Context(), project, err == nil, time.Since(start))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	if err := s.store.DeleteSnapshot(r.Context(), project); err != nil {
		observability.Store().OnStoreError(r.Context(), "delete", project, err)
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProjectLayout(w http.ResponseWriter, r *http.Request) {
	project := chi.URLParam(r, "project")

	start := time.Now()
	snap, err := s.store.GetSnapshot(r.Context(), project)
	observability.Store().OnStoreGet(r.Context(), project, err == nil, time.Since(start))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	selected := q.Get("class")
	if selected != "" {
		if err := vocerrors.ValidateClassURI(selected); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, vocerrors.Wrap(vocerrors.ErrCodeInvalidFormat, err, "%s", err.Error()))
		return
	}
	opts := pipeline.Options{
		SelectedClass: selected,
		Geometry:      s.geometry,
		Formats:       []string{format},
		Style:         q.Get("style"),
		Refresh:       q.Get("refresh") == "true",
		Logger:        s.logger,
	}

	result, err := s.runner.Execute(r.Context(), snap, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, layoutResponse{
			Project:      project,
			SnapshotHash: result.SnapshotHash,
			Layout:       result.Record,
			Warnings:     result.Warnings,
			CacheHit:     result.CacheInfo.LayoutHit,
		})
		return
	}
	writeArtifact(w, format, result.Artifacts[format])
}

func (s *Server) handleAdhocLayout(w http.ResponseWriter, r *http.Request) {
	var req adhocLayoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid layout request: " + err.Error(),
			Code:  string(vocerrors.ErrCodeInvalidSnapshot),
		})
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, vocerrors.Wrap(vocerrors.ErrCodeInvalidFormat, err, "%s", err.Error()))
		return
	}
	opts := pipeline.Options{
		SelectedClass: req.SelectedClass,
		Geometry:      s.geometry,
		Formats:       []string{format},
		Style:         req.Style,
		Logger:        s.logger,
	}

	result, err := s.runner.Execute(r.Context(), req.Snapshot, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if format == pipeline.FormatJSON {
		writeJSON(w, http.StatusOK, layoutResponse{
			SnapshotHash: result.SnapshotHash,
			Layout:       result.Record,
			Warnings:     result.Warnings,
			CacheHit:     result.CacheInfo.LayoutHit,
		})
		return
	}
	writeArtifact(w, format, result.Artifacts[format])
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// artifactContentTypes maps render formats to MIME types.
var artifactContentTypes = map[string]string{
	pipeline.FormatDOT: "text/vnd.graphviz",
	pipeline.FormatSVG: "image/svg+xml",
	pipeline.FormatPNG: "image/png",
	pipeline.FormatPDF: "application/pdf",
}

// writeArtifact writes a rendered artifact with the right content type.
func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	ct := artifactContentTypes[format]
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeError maps an error to an HTTP status and JSON envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, store.ErrNotFound):
		status = http.StatusNotFound
	default:
		switch vocerrors.GetCode(err) {
		case vocerrors.ErrCodeInvalidSnapshot, vocerrors.ErrCodeInvalidProject,
			vocerrors.ErrCodeInvalidClass, vocerrors.ErrCodeInvalidFormat,
			vocerrors.ErrCodeInvalidConfig:
			status = http.StatusBadRequest
		case vocerrors.ErrCodeNotFound, vocerrors.ErrCodeProjectNotFound,
			vocerrors.ErrCodeClassNotFound, vocerrors.ErrCodeFileNotFound:
			status = http.StatusNotFound
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestID(r.Context()))
	}

	code := vocerrors.GetCode(err)
	resp := errorResponse{Error: vocerrors.UserMessage(err)}
	if code != "" {
		resp.Code = string(code)
	}
	if errors.Is(err, store.ErrNotFound) {
		resp.Code = string(vocerrors.ErrCodeProjectNotFound)
	}
	writeJSON(w, status, resp)
}
