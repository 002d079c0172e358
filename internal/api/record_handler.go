package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/rolodex-api/internal/api/shared"
	"github.com/phrazzld/rolodex-api/internal/platform/logger"
	"github.com/phrazzld/rolodex-api/internal/service"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes = 2000 * 1024

// RecordHandler handles record-related HTTP requests
type RecordHandler struct {
	recordService service.RecordService
	maxBodyBytes  int64
	logger        *slog.Logger
}

// NewRecordHandler creates a new RecordHandler. A non-positive maxBodyBytes
// falls back to DefaultMaxBodyBytes.
func NewRecordHandler(
	recordService service.RecordService,
	maxBodyBytes int64,
	logger *slog.Logger,
) *RecordHandler {
	if recordService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("recordService cannot be nil for RecordHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for RecordHandler")
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return &RecordHandler{
		recordService: recordService,
		maxBodyBytes:  maxBodyBytes,
		logger:        logger.With(slog.String("component", "record_handler")),
	}
}

// RegisterRoutes mounts the record routes on r. The static /users/search
// route takes precedence over /users/{id}, so "search" is not accepted as a
// record id on create.
func (h *RecordHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.CreateRecord)
		r.Get("/", h.ListRecords)
		r.Get("/search", h.SearchRecords)
		r.Get("/{id}", h.GetRecord)
		r.Put("/{id}", h.UpdateRecord)
		r.Delete("/{id}", h.DeleteRecord)
	})
}

// CreateRecord handles POST /users requests.
func (h *RecordHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateRecordRequest
	if err := shared.DecodeJSON(w, r, &req, h.maxBodyBytes); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := checkCreatableID(req.ID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.recordService.Create(r.Context(), req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create record")
		return
	}

	log.Debug("record created", slog.String("record_id", req.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, result)
}

// ListRecords handles GET /users requests.
func (h *RecordHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.recordService.List(r.Context(), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list records")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// SearchRecords handles GET /users/search requests. An empty q matches
// every record.
func (h *RecordHandler) SearchRecords(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.recordService.Search(r.Context(), r.URL.Query().Get("q"), page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to search records")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetRecord handles GET /users/{id} requests.
func (h *RecordHandler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	record, err := h.recordService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get record")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, record)
}

// UpdateRecord handles PUT /users/{id} requests. Updating an ID that does
// not exist succeeds with rowsAffected 0.
func (h *RecordHandler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateRecordRequest
	if err := shared.DecodeJSON(w, r, &req, h.maxBodyBytes); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.recordService.Update(r.Context(), id, req.ToDomain())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update record")
		return
	}

	log.Debug("record update handled",
		slog.String("record_id", id),
		slog.Int64("rows_affected", result.RowsAffected))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// DeleteRecord handles DELETE /users/{id} requests. Deleting an ID that does
// not exist succeeds with rowsAffected 0.
func (h *RecordHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.recordService.Delete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete record")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
