package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger records operational events outside the request path. The
// stdout implementation is the default; deployments can swap in a sink
// that ships entries elsewhere.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
