package handler

import (
	"net/http"
	"strconv"

	"phone-kart/internal/model"
	"phone-kart/internal/service"

	"github.com/rs/zerolog"
)

// PhoneHandler handles catalogue HTTP requests.
type PhoneHandler struct {
	service service.PhoneService
	logger  zerolog.Logger
}

// NewPhoneHandler creates a new phone handler.
func NewPhoneHandler(service service.PhoneService, logger zerolog.Logger) *PhoneHandler {
	return &PhoneHandler{
		service: service,
		logger:  logger.With().Str("handler", "phone").Logger(),
	}
}

// GetAll handles GET /api/products requests with pagination.
func (h *PhoneHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidation, "method not allowed", h.logger)
		return
	}

	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 10 // default
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "invalid offset parameter", h.logger)
			return
		}
	}

	phones, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternal, "failed to retrieve phones", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, phones)
}

// GetByID handles GET /api/products/{id} requests. An optional ?campaign=
// query parameter applies a transient promotional discount to the response.
func (h *PhoneHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, model.ErrCodeValidation, "method not allowed", h.logger)
		return
	}

	// Expecting path: /api/products/{id}
	path := r.URL.Path
	if len(path) < len("/api/products/") {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "phone ID is required", h.logger)
		return
	}
	phoneID := path[len("/api/products/"):]

	if phoneID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "phone ID is required", h.logger)
		return
	}

	campaign := r.URL.Query().Get("campaign")

	phone, err := h.service.GetByID(r.Context(), phoneID, campaign)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, phone)
}
