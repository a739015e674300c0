package main

import (
	"context"
	"net/http"
)

type contextKey string

const privilegedContextKey = contextKey("privileged")

func (app *application) createPrivilegedContext(r *http.Request, privileged bool) *http.Request {
	ctx := context.WithValue(r.Context(), privilegedContextKey, privileged)
	return r.WithContext(ctx)
}

func (app *application) isPrivileged(r *http.Request) bool {
	privileged, ok := r.Context().Value(privilegedContextKey).(bool)
	if !ok {
		return false
	}
	return privileged
}
