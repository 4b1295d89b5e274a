package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-projects-nosql/internal/application/design"
	"github.com/go-projects-nosql/internal/domain"
	"github.com/go-projects-nosql/internal/pkg/validate"
)

const maxDesignUpload = 10 << 20

// DesignHandler handles design images attached to a project.
type DesignHandler struct {
	svc design.Service
}

func NewDesignHandler(svc design.Service) *DesignHandler { return &DesignHandler{svc: svc} }

func (h *DesignHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	designs, err := h.svc.List(r.Context(), userID, chi.URLParam(r, "projectId"))
	if err != nil {
		httpError(w, err)
		return
	}
	if designs == nil {
		designs = []domain.Design{}
	}
	writeJSON(w, http.StatusOK, designs)
}

// Create accepts either a JSON body with image_url or a multipart form whose
// "image" part is uploaded to object storage.
func (h *DesignHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var (
		req    domain.CreateDesignRequest
		upload *design.Upload
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		r.Body = http.MaxBytesReader(w, r.Body, maxDesignUpload)
		if err := r.ParseMultipartForm(maxDesignUpload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		req.Title = r.FormValue("title")
		req.Description = r.FormValue("description")
		req.ImageURL = r.FormValue("image_url")
		if err := validate.Struct(req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		f, header, err := r.FormFile("image")
		if err == nil {
			defer f.Close()
			upload = &design.Upload{
				Body:        f,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
	} else if !decode(w, r, &req) {
		return
	}
	d, err := h.svc.Create(r.Context(), userID, chi.URLParam(r, "projectId"), req, upload)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (h *DesignHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	var req domain.UpdateDesignRequest
	if !decode(w, r, &req) {
		return
	}
	d, err := h.svc.Update(r.Context(), userID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DesignHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "design removed"})
}

func (h *DesignHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}
	st, err := h.svc.Stats(r.Context(), userID, chi.URLParam(r, "projectId"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}
