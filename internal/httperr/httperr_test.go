package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, mode string, err error) (int, HTTPError) {
	t.Helper()
	prev := gin.Mode()
	gin.SetMode(mode)
	t.Cleanup(func() { gin.SetMode(prev) })

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(CodeMissingField))
	assert.Equal(t, http.StatusBadRequest, StatusFor(CodePastDateTime))
	assert.Equal(t, http.StatusNotFound, StatusFor(CodeServiceNotFound))
	assert.Equal(t, http.StatusConflict, StatusFor(CodeSlotConflict))
	assert.Equal(t, http.StatusForbidden, StatusFor(CodeForbidden))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(CodePersistence))
	assert.Equal(t, http.StatusBadRequest, StatusFor("something_else"))
}

func TestRespondBusinessError(t *testing.T) {
	status, body := respond(t, gin.TestMode, New(CodeSlotConflict, "Horário indisponível."))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, CodeSlotConflict, body.Code)
	assert.Equal(t, "Horário indisponível.", body.Message)
	assert.Empty(t, body.Detail)
}

func TestRespondHidesDetailInRelease(t *testing.T) {
	err := New(CodePersistence, "Erro ao salvar.").Wrap(errors.New("pq: connection refused"))

	status, body := respond(t, gin.ReleaseMode, err)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Empty(t, body.Detail)

	_, body = respond(t, gin.DebugMode, err)
	assert.Contains(t, body.Detail, "connection refused")
}

func TestRespondUnknownError(t *testing.T) {
	status, body := respond(t, gin.ReleaseMode, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, CodeInternal, body.Code)
	assert.Empty(t, body.Detail)
}

func TestBusinessErrorIsComparesCode(t *testing.T) {
	base := New(CodeNotFound, "x")
	wrapped := base.Wrap(errors.New("cause"))

	assert.True(t, errors.Is(wrapped, base))
	assert.True(t, IsBusiness(wrapped, CodeNotFound))
	assert.False(t, errors.Is(wrapped, New(CodeSlotConflict, "")))

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, code)
}
