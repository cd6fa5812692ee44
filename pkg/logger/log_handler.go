package logger

import (
	"context"
	"log/slog"

	"inventory-service/pkg/ctxutil"
)

// RequestIDHandler tags records with the request id and, on authenticated
// routes, the user id found in the record's context.
type RequestIDHandler struct {
	slog.Handler
}

func (h *RequestIDHandler) Handle(ctx context.Context, r slog.Record) error {
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		r.AddAttrs(slog.String(string(ctxutil.RequestIDKey), requestID))
	}
	if userID, ok := ctxutil.GetUserID(ctx); ok {
		r.AddAttrs(slog.Int64(string(ctxutil.UserIDKey), userID))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *RequestIDHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &RequestIDHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *RequestIDHandler) WithGroup(name string) slog.Handler {
	return &RequestIDHandler{Handler: h.Handler.WithGroup(name)}
}
