package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/rolodex-api/internal/api/shared"
)

// DecodeJSONResponse unmarshals the recorded body into v and fails the test
// if the body is not valid JSON.
func DecodeJSONResponse(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v),
		"Failed to unmarshal response: %s", rec.Body.String())
}

// AssertErrorResponse checks that rec carries expectedStatus and an
// ErrorResponse whose message equals expectedMsg.
func AssertErrorResponse(t *testing.T, rec *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, rec.Code, "Unexpected status code")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp shared.ErrorResponse
	DecodeJSONResponse(t, rec, &resp)
	assert.Equal(t, expectedMsg, resp.Error)
}
