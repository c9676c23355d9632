package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	entry := FromContext(context.Background())
	assert.Equal(t, logrus.StandardLogger(), entry.Logger)

	tagged := entry.WithField("market", "0x01")
	ctx := WithContext(context.Background(), tagged)
	assert.Equal(t, "0x01", FromContext(ctx).Data["market"])
}

func TestWithRequestID(t *testing.T) {
	var got interface{}
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context()).Data["request_id"]
	}))

	t.Run("header kept", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(RequestIDHeader, "abc")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, "abc", got)
		assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	})

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
		assert.Equal(t, w.Header().Get(RequestIDHeader), got)
	})
}
