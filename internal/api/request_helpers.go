package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/rolodex-api/internal/domain"
)

var (
	// ErrInvalidPage is wrapped by the validation error for a bad page parameter.
	ErrInvalidPage = errors.New("invalid page number")

	// ErrReservedID is wrapped by the validation error for an id that a
	// static route under /users would shadow.
	ErrReservedID = errors.New("reserved record id")
)

// reservedIDs are the static path segments registered under /users.
var reservedIDs = map[string]struct{}{
	"search": {},
}

// parsePage reads the optional page query parameter. An absent parameter
// returns 0, meaning no page was requested.
func parsePage(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 0, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, domain.NewValidationError("page", "must be a positive integer", ErrInvalidPage)
	}
	return page, nil
}

// getPathID extracts and validates the record ID from the URL path.
//
// chi matches on RawPath when the request carries one, so the parameter is
// still escaped in that case; otherwise it is already decoded and must be
// used as is.
func getPathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")

	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(id)
		if err != nil {
			return "", domain.NewValidationError("id", "has invalid encoding", domain.ErrInvalidType)
		}
		id = unescaped
	}

	if err := domain.ValidateID(id); err != nil {
		return "", err
	}
	return id, nil
}

// checkCreatableID rejects ids that could never be read back through
// GET /users/{id}. CHAR padding is ignored because the store trims it.
func checkCreatableID(id string) error {
	if _, ok := reservedIDs[strings.TrimRight(id, " ")]; ok {
		return domain.NewValidationError("id", "is reserved", ErrReservedID)
	}
	return nil
}
