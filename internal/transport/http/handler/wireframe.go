package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-projects-nosql/internal/application/wireframe"
	"github.com/go-projects-nosql/internal/domain"
)

// WireframeHandler handles wireframe generation and snapshots.
type WireframeHandler struct {
	svc wireframe.Service
}

func NewWireframeHandler(svc wireframe.Service) *WireframeHandler {
	return &WireframeHandler{svc: svc}
}

type generateResponse struct {
	Success bool `json:"success"`
	Data    struct {
		RefinedHTML string `json:"refined_html"`
	} `json:"data"`
}

func (h *WireframeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.GenerateWireframeRequest
	if !decode(w, r, &req) {
		return
	}
	out, err := h.svc.Generate(r.Context(), userID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	var resp generateResponse
	resp.Success = true
	resp.Data.RefinedHTML = out
	writeJSON(w, http.StatusOK, resp)
}

func (h *WireframeHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	n, err := h.svc.Count(r.Context(), userID, chi.URLParam(r, "projectId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CountEnvelope{Count: n})
}

func (h *WireframeHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	if _, ok := callerID(w, r); !ok {
		return
	}
	var req domain.WireframeSnapshotRequest
	if !decode(w, r, &req) {
		return
	}
	snap, err := h.svc.Snapshot(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
