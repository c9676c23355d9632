package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blue/core"
	"blue/pkg/logger"

	"github.com/bmizerany/assert"
)

func TestHealthCheck(t *testing.T) {
	h := New(nil, nil, "1.0.0").Handler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/hc", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, "", w.Header().Get(logger.RequestIDHeader))

	var body struct {
		Version string `json:"version"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1.0.0", body.Version)
}

func TestRequestID(t *testing.T) {
	h := New(nil, nil, "1.0.0").Handler()

	r := httptest.NewRequest(http.MethodGet, "/api/markets/0x01", nil)
	r.Header.Set(logger.RequestIDHeader, "req-1")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(logger.RequestIDHeader))

	var body struct {
		Code int `json:"code"`
	}
	assert.Equal(t, nil, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int(core.ErrInvalidInput), body.Code)
}
