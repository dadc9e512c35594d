package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrGys1986/TaskManager-Backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeEnvelope parses the uniform response body.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "response body is not valid JSON")
	return body
}

func newAuthHandler() *AuthHandler {
	// Validation failures never reach the database, so a service without a
	// collection is enough for these tests.
	return NewAuthHandler(services.NewAuthService(nil))
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	h := newAuthHandler()

	bodies := []string{
		`{}`,
		`{"email":"a@b.com"}`,
		`{"email":"a@b.com","password":"secret1"}`,
		`{"password":"secret1","username":"a"}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, false, env["success"])
	}
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	h := newAuthHandler()

	body := `{"email":"not-an-email","password":"secret1","username":"a"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, false, env["success"])
	assert.Equal(t, "Invalid email format.", env["message"])
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	h := newAuthHandler()

	body := `{"email":"a@b.com","password":"12345","username":"a"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterRejectsInvalidJSON(t *testing.T) {
	h := newAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginRejectsMissingCredentials(t *testing.T) {
	h := newAuthHandler()

	bodies := []string{
		`{}`,
		`{"email":"a@b.com"}`,
		`{"password":"secret1"}`,
	}
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
		rec := httptest.NewRecorder()

		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}
