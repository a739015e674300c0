package main

import (
	"errors"
	"net/http"

	"github.com/quillhq/quill/internal/adminauth"
	"github.com/quillhq/quill/internal/common"
	"github.com/quillhq/quill/internal/entryservice"
)

type loginRequest struct {
	Password string `json:"password"`
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	token, err := app.gate.Login(input.Password)
	if err != nil {
		switch {
		case errors.Is(err, adminauth.ErrInvalidCredentials):
			app.invalidCredentialsErrorResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"token": token}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	token := app.extractTokenFromHeader(r.Header.Get("Authorization"))
	app.gate.Logout(token)

	err := app.writeJSON(w, http.StatusOK, envelope{"message": "logged out"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type createEntryRequest struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

func (app *application) createEntryHandler(w http.ResponseWriter, r *http.Request) {
	var input createEntryRequest

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	req := &entryservice.CreateEntryRequest{
		Title:     input.Title,
		Slug:      input.Slug,
		Content:   input.Content,
		Published: input.Published,
	}

	entry, err := app.entryService.CreateEntry(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, entryservice.ErrDuplicateSlug):
			app.conflictErrorResponse(w, r, "an entry with this slug already exists")
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, envelope{"entry": entry}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

type updateEntryRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
}

func (app *application) updateEntryHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var input updateEntryRequest

	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	entry, err := app.entryService.UpdateEntry(r.Context(), slug, input.Title, input.Content, input.Published)
	if err != nil {
		switch {
		case errors.Is(err, entryservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"entry": entry}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) getEntryHandler(w http.ResponseWriter, r *http.Request) {
	slug, err := app.readSlugParam(r)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	entry, err := app.entryService.GetEntryBySlug(r.Context(), slug, app.isPrivileged(r))
	if err != nil {
		switch {
		case errors.Is(err, entryservice.ErrRecordNotFound):
			app.notFoundErrorResponse(w, r)
		case errors.As(err, &common.ValidationError{}):
			validationErr := err.(common.ValidationError)
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"entry": entry}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listPublishedHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := app.entryService.ListPublished(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"entries": entries}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) listDraftsHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := app.entryService.ListDrafts(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"entries": entries}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) searchHandler(w http.ResponseWriter, r *http.Request) {
	rawQuery := r.URL.Query().Get("q")

	results, err := app.entryService.Search(r.Context(), rawQuery, app.isPrivileged(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"results": results}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}

func (app *application) rebuildIndexHandler(w http.ResponseWriter, r *http.Request) {
	err := app.entryService.RebuildSearchIndex(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "search index rebuilt"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
}
