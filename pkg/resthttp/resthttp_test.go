package resthttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"blue/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/snapshot.yaml" {
			http.NotFound(w, r)
			return
		}

		w.Header().Set(logger.RequestIDHeader, r.Header.Get(logger.RequestIDHeader))
		_, _ = w.Write([]byte("timestamp: 1\n"))
	}))
	defer srv.Close()

	ctx := logger.WithContext(context.Background(), logrus.WithField("request_id", "req-1"))
	body, err := Get(ctx, srv.URL+"/snapshot.yaml")
	require.NoError(t, err)
	assert.Equal(t, "timestamp: 1\n", string(body))

	_, err = Get(context.Background(), srv.URL+"/missing")
	assert.Error(t, err)
}

func TestRequestID(t *testing.T) {
	ctx := logger.WithContext(context.Background(), logrus.WithField("request_id", "req-1"))
	assert.Equal(t, "req-1", Request(ctx).Header.Get(logger.RequestIDHeader))
	assert.Empty(t, Request(context.Background()).Header.Get(logger.RequestIDHeader))
}
