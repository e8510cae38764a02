package state

import "context"

// ClientIDHeader carries the client id from the web server to the backend.
const ClientIDHeader = "X-Client-ID"

type ctxKey string

const (
	clientIDKey ctxKey = "client_id"
	issuedKey   ctxKey = "client_issued"
)

func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

func ClientIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey).(string)
	return id, ok && id != ""
}

// withIssued marks the client id on ctx as issued by this request.
func withIssued(ctx context.Context) context.Context {
	return context.WithValue(ctx, issuedKey, true)
}

// IssuedNow reports whether the client id was minted for this request, i.e.
// the caller presented no valid token.
func IssuedNow(ctx context.Context) bool {
	issued, _ := ctx.Value(issuedKey).(bool)
	return issued
}
