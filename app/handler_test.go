package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	app := newGateOnlyApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.get(t, "/v1/healthcheck", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "available", body["status"])
}

func TestAdminLogin(t *testing.T) {
	app := newGateOnlyApplication(t)
	ts := newTestServer(t, app.routes())

	code, _, body := ts.post(t, "/v1/admin/login", map[string]string{"password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.NotNil(t, body["error"])

	code, _, body = ts.post(t, "/v1/admin/login", map[string]string{"password": testAdminPassword}, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["token"])

	token := body["token"].(string)

	// logout invalidates the token
	code, _, _ = ts.post(t, "/v1/admin/logout", nil, &token)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, app.gate.Verify(token))
}

func TestEntryLifecycle(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, _, body := ts.post(t, "/v1/admin/login", map[string]string{"password": testAdminPassword}, nil)
	token := body["token"].(string)

	// creating without a token is rejected
	code, _, _ := ts.post(t, "/v1/entries", createEntryRequest{Title: "Hello, World!", Content: "First entry."}, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	// create a published entry
	code, _, body = ts.post(t, "/v1/entries", createEntryRequest{Title: "Hello, World!", Content: "First entry.", Published: true}, &token)
	assert.Equal(t, http.StatusCreated, code)
	entry := body["entry"].(map[string]any)
	assert.Equal(t, "hello-world", entry["slug"])

	// duplicate title collides on the derived slug
	code, _, _ = ts.post(t, "/v1/entries", createEntryRequest{Title: "Hello, World!", Content: "Second entry."}, &token)
	assert.Equal(t, http.StatusConflict, code)

	// missing fields are rejected before any write
	code, _, _ = ts.post(t, "/v1/entries", createEntryRequest{Title: "", Content: ""}, &token)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	// published entries are visible to everyone
	code, _, body = ts.get(t, "/v1/entries/hello-world", nil)
	assert.Equal(t, http.StatusOK, code)
	entry = body["entry"].(map[string]any)
	assert.Equal(t, "Hello, World!", entry["title"])

	// drafts are invisible to anonymous callers
	code, _, _ = ts.post(t, "/v1/entries", createEntryRequest{Title: "Draft Notes", Content: "ownership experiments"}, &token)
	assert.Equal(t, http.StatusCreated, code)

	code, _, _ = ts.get(t, "/v1/entries/draft-notes", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _, _ = ts.get(t, "/v1/entries/draft-notes", &token)
	assert.Equal(t, http.StatusOK, code)

	// drafts listing requires privilege
	code, _, _ = ts.get(t, "/v1/drafts", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, body = ts.get(t, "/v1/drafts", &token)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["entries"], 1)

	// published listing is public
	code, _, body = ts.get(t, "/v1/entries", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["entries"], 1)

	// updating an entry keeps its slug
	code, _, body = ts.put(t, "/v1/entries/hello-world", updateEntryRequest{Title: "Hello Again", Content: "Rewritten entry.", Published: true}, &token)
	assert.Equal(t, http.StatusOK, code)
	entry = body["entry"].(map[string]any)
	assert.Equal(t, "hello-world", entry["slug"])
	assert.Equal(t, "Hello Again", entry["title"])

	code, _, _ = ts.put(t, "/v1/entries/no-such-entry", updateEntryRequest{Title: "Hello", Content: "Body."}, &token)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSearchEndpoint(t *testing.T) {
	app, _ := newTestApplication(t)
	ts := newTestServer(t, app.routes())

	_, _, body := ts.post(t, "/v1/admin/login", map[string]string{"password": testAdminPassword}, nil)
	token := body["token"].(string)

	code, _, _ := ts.post(t, "/v1/entries", createEntryRequest{Title: "Rust Basics", Content: "ownership and borrowing", Published: true}, &token)
	assert.Equal(t, http.StatusCreated, code)
	code, _, _ = ts.post(t, "/v1/entries", createEntryRequest{Title: "Draft Notes", Content: "ownership experiments"}, &token)
	assert.Equal(t, http.StatusCreated, code)

	// anonymous search only sees published entries
	code, _, body = ts.get(t, "/v1/search?q=ownership", nil)
	assert.Equal(t, http.StatusOK, code)
	results := body["results"].([]any)
	assert.Len(t, results, 1)

	// privileged search sees drafts too
	code, _, body = ts.get(t, "/v1/search?q=ownership", &token)
	assert.Equal(t, http.StatusOK, code)
	results = body["results"].([]any)
	assert.Len(t, results, 2)

	// empty query matches nothing
	code, _, body = ts.get(t, "/v1/search?q=+++", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["results"])

	// rebuild requires privilege and leaves search working
	code, _, _ = ts.post(t, "/v1/search/rebuild", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _, _ = ts.post(t, "/v1/search/rebuild", nil, &token)
	assert.Equal(t, http.StatusOK, code)

	code, _, body = ts.get(t, "/v1/search?q=borrowing", nil)
	assert.Equal(t, http.StatusOK, code)
	results = body["results"].([]any)
	assert.Len(t, results, 1)
}
