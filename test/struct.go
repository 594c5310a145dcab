package test

import (
	"context"

	"github.com/loopcontext/tscat"
)

// RequestContext carries a request language the way an HTTP middleware would.
type RequestContext struct {
	Ctx context.Context
}

func NewRequestContext() *RequestContext {
	return &RequestContext{Ctx: context.Background()}
}

// SetLanguage stores lang under the typed key the catalog reads by default.
func (rc *RequestContext) SetLanguage(lang string) *RequestContext {
	rc.Ctx = context.WithValue(rc.Ctx, tscat.ContextKey("language"), lang)
	return rc
}

// SetValue stores an arbitrary value, e.g. a custom language key.
func (rc *RequestContext) SetValue(key interface{}, value interface{}) *RequestContext {
	rc.Ctx = context.WithValue(rc.Ctx, key, value)
	return rc
}

func (rc *RequestContext) Context() context.Context {
	return rc.Ctx
}
