package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)

	// admin gate
	router.HandlerFunc(http.MethodPost, "/v1/admin/login", app.loginHandler)
	router.HandlerFunc(http.MethodPost, "/v1/admin/logout", app.logoutHandler)

	// entries
	router.HandlerFunc(http.MethodGet, "/v1/entries", app.listPublishedHandler)
	router.HandlerFunc(http.MethodPost, "/v1/entries", app.requirePrivileged(app.createEntryHandler))
	router.HandlerFunc(http.MethodGet, "/v1/entries/:slug", app.getEntryHandler)
	router.HandlerFunc(http.MethodPut, "/v1/entries/:slug", app.requirePrivileged(app.updateEntryHandler))
	router.HandlerFunc(http.MethodGet, "/v1/drafts", app.requirePrivileged(app.listDraftsHandler))

	// search
	router.HandlerFunc(http.MethodGet, "/v1/search", app.searchHandler)
	router.HandlerFunc(http.MethodPost, "/v1/search/rebuild", app.requirePrivileged(app.rebuildIndexHandler))

	return app.recoverPanic(app.rateLimit(app.logRequest(app.authenticate(router))))
}
