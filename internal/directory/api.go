package directory

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/medbook/platform/internal/shared/errors"
	"github.com/medbook/platform/internal/shared/types"
)

// Handler provides HTTP handlers for the directory module
type Handler struct {
	dir Directory
}

// NewHandler creates a new directory handler
func NewHandler(dir Directory) *Handler {
	return &Handler{dir: dir}
}

// Register registers the directory routes
func (h *Handler) Register(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{categoryID}/doctors", h.ListDoctorsByCategory)
	r.Get("/doctors", h.ListDoctors)
}

// ListCategories lists all categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.dir.ListCategories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []Category{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  categories,
		"total": len(categories),
	})
}

// ListDoctors lists all doctors
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.dir.ListDoctors(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if doctors == nil {
		doctors = []Doctor{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  doctors,
		"total": len(doctors),
	})
}

// ListDoctorsByCategory lists doctors for a category
func (h *Handler) ListDoctorsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := types.ParseID(chi.URLParam(r, "categoryID"))
	if err != nil {
		writeError(w, errors.BadRequest("invalid category ID"))
		return
	}

	doctors, err := h.dir.ListDoctorsByCategory(r.Context(), categoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	if doctors == nil {
		doctors = []Doctor{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  doctors,
		"total": len(doctors),
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	if appErr, ok := err.(*errors.AppError); ok {
		w.WriteHeader(appErr.HTTPStatus)
		json.NewEncoder(w).Encode(map[string]any{
			"error":   appErr.Message,
			"code":    appErr.Code,
			"details": appErr.Details,
		})
		return
	}

	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": "internal server error"})
}
