package httpx

import (
	"context"

	domainauth "github.com/megabox/megabox-web/internal/domain/auth"
	"github.com/megabox/megabox-web/internal/i18n"
)

// Unexported context key types avoid collisions across packages.
type (
	sessionKey    struct{}
	identityKey   struct{}
	translatorKey struct{}
	requestIDKey  struct{}
)

// SetSessionInContext returns a child context that carries the session.
// An anonymous session leaves ctx unchanged.
func SetSessionInContext(ctx context.Context, session domainauth.Session) context.Context {
	if !session.Present() {
		return ctx
	}
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSessionFromContext returns the session and whether one is present.
func GetSessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	return s, ok && s.Present()
}

// TokenFromContext returns the bearer token, or "" for anonymous requests.
func TokenFromContext(ctx context.Context) string {
	s, _ := GetSessionFromContext(ctx)
	return s.Token
}

// SetIdentityInContext stores the identity resolved by a gate.
func SetIdentityInContext(ctx context.Context, id *domainauth.Identity) context.Context {
	if id == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, id)
}

// GetIdentityFromContext returns the identity resolved for this request, or nil.
func GetIdentityFromContext(ctx context.Context) *domainauth.Identity {
	if id, ok := ctx.Value(identityKey{}).(*domainauth.Identity); ok {
		return id
	}
	return nil
}

// SetTranslatorInContext stores the request's translator.
func SetTranslatorInContext(ctx context.Context, t *i18n.Translator) context.Context {
	return context.WithValue(ctx, translatorKey{}, t)
}

// TranslatorFromContext returns the request's translator. A nil translator returns keys unchanged.
func TranslatorFromContext(ctx context.Context) *i18n.Translator {
	t, _ := ctx.Value(translatorKey{}).(*i18n.Translator)
	return t
}

// RequestIDFromContext returns the correlation ID set by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
