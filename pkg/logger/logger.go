package logger

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader header carrying the request id
const RequestIDHeader = "X-Request-ID"

type contextKey struct{}

// FromContext logger carried by ctx, the standard logger when none
func FromContext(ctx context.Context) *logrus.Entry {
	if entry, ok := ctx.Value(contextKey{}).(*logrus.Entry); ok {
		return entry
	}

	return logrus.NewEntry(logrus.StandardLogger())
}

// WithContext ctx carrying entry
func WithContext(ctx context.Context, entry *logrus.Entry) context.Context {
	return context.WithValue(ctx, contextKey{}, entry)
}

// WithRequestID tags the request logger with the incoming request id,
// generating one when the header is missing
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.Must(uuid.NewV4()).String()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := r.Context()
		ctx = WithContext(ctx, FromContext(ctx).WithField("request_id", id))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestID request id tagged by WithRequestID, empty when none
func RequestID(ctx context.Context) string {
	id, _ := FromContext(ctx).Data["request_id"].(string)
	return id
}
