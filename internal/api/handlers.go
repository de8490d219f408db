// Package api exposes HTTP handlers for the roster service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"example.com/extracurricular/internal/domain"
)

const (
	detailActivityNotFound = "Activity not found"
	detailAlreadySignedUp  = "Student is already signed up"
	detailNotSignedUp      = "Student is not signed up for this activity"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  *zap.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/", h.activityByName)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	activities, err := h.service.ListActivities(r.Context())
	if err != nil {
		h.serverError(w, err)
		return
	}

	resp := make(map[string]ActivityView, len(activities))
	for name, a := range activities {
		resp[name] = toActivityView(a)
	}
	writeJSON(w, http.StatusOK, resp)
}

// activityByName serves /activities/{name} and /activities/{name}/{signup|unregister}.
func (h *Handler) activityByName(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	name, action := rest, ""
	if idx := strings.LastIndex(rest, "/"); idx >= 0 {
		name, action = rest[:idx], rest[idx+1:]
	}
	if name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "missing activity name")
		return
	}

	switch action {
	case "":
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		h.getActivity(w, r, name)
	case "signup", "unregister":
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
			return
		}
		email := strings.TrimSpace(r.URL.Query().Get("email"))
		if email == "" {
			writeError(w, http.StatusUnprocessableEntity, "validation_failed", "missing email parameter")
			return
		}
		if action == "signup" {
			h.signup(w, r, name, email)
		} else {
			h.unregister(w, r, name, email)
		}
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown activity operation")
	}
}

func (h *Handler) getActivity(w http.ResponseWriter, r *http.Request, name string) {
	activity, err := h.service.GetActivity(r.Context(), name)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	view := toActivityView(*activity)
	view.Name = activity.Name
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, name, email string) {
	if _, err := h.service.Signup(r.Context(), name, email); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Signed up %s for %s", email, name)})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request, name, email string) {
	if _, err := h.service.Unregister(r.Context(), name, email); err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("Unregistered %s from %s", email, name)})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "not_found", detailActivityNotFound)
	case errors.Is(err, domain.ErrAlreadySignedUp):
		writeError(w, http.StatusBadRequest, "conflict", detailAlreadySignedUp)
	case errors.Is(err, domain.ErrNotSignedUp):
		writeError(w, http.StatusBadRequest, "conflict", detailNotSignedUp)
	case errors.Is(err, domain.ErrInvalidEmail):
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
	default:
		h.serverError(w, err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "server_error", err.Error())
}

// ActivityView is the JSON representation of an activity.
type ActivityView struct {
	Name            string   `json:"name,omitempty"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse confirms a roster mutation.
type MessageResponse struct {
	Message string `json:"message"`
}

func toActivityView(a domain.Activity) ActivityView {
	participants := a.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     a.Description,
		Schedule:        a.Schedule,
		MaxParticipants: a.MaxParticipants,
		Participants:    participants,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
