package tokenAuth

import "context"

// RequestMeta is caller information copied into audit events. It never
// influences an authentication decision.
type RequestMeta struct {
	ClientIP  string
	UserAgent string
}

type requestMetaKey struct{}

// WithRequestMeta attaches meta to ctx, replacing any earlier value.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// WithClientIP sets the client IP and keeps any user agent already on ctx.
func WithClientIP(ctx context.Context, ip string) context.Context {
	meta := RequestMetaFrom(ctx)
	meta.ClientIP = ip
	return WithRequestMeta(ctx, meta)
}

// WithUserAgent sets the user agent and keeps any client IP already on ctx.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	meta := RequestMetaFrom(ctx)
	meta.UserAgent = userAgent
	return WithRequestMeta(ctx, meta)
}

// RequestMetaFrom returns the metadata on ctx, or the zero value.
func RequestMetaFrom(ctx context.Context) RequestMeta {
	if ctx == nil {
		return RequestMeta{}
	}
	meta, _ := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta
}
