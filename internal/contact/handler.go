package contact

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ousadiats/website/pkg/clientip"
	"github.com/ousadiats/website/pkg/logger"
)

// response is the JSON body returned for every outcome.
type response struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Handler exposes the submission pipeline over HTTP.
type Handler struct {
	svc *Service
	log *slog.Logger
}

// NewHandler creates the HTTP handler for contact submissions.
func NewHandler(svc *Service, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{svc: svc, log: log.With(logger.Component("contact-http"))}
}

// Router mounts the submission endpoint on a fresh router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	h.Register(r)
	return r
}

// Register mounts the submission endpoint. Anything but POST gets the JSON
// method-rejection body rather than chi's plain-text default.
func (h *Handler) Register(r chi.Router) {
	r.MethodNotAllowed(h.methodNotAllowed)
	r.Post("/submit-contact", h.SubmitContact)
}

// SubmitContact handles one form submission synchronously: parse, build the
// submission from form fields and request metadata, run the pipeline, and
// render its terminal outcome.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.writeJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "Invalid form data",
		})
		return
	}

	sourceIP := clientip.GetIPFromContext(r.Context())
	if sourceIP == "" {
		sourceIP = clientip.GetIP(r)
	}

	sub := NewSubmission(r.PostForm, time.Now(), sourceIP, r.UserAgent())
	result := h.svc.Process(r.Context(), sub)

	h.writeJSON(w, result.StatusCode, response{
		Success: result.Success,
		Message: result.Message,
		Errors:  result.Errors,
	})
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusMethodNotAllowed, response{
		Success: false,
		Message: "Method not allowed",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("failed to encode response", logger.Error(err))
	}
}
