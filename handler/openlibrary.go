package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mvrana/libris/service"
)

func (h *Handler) createAuthorFromOpenLibraryHandler(w http.ResponseWriter, r *http.Request) {
	key, err := h.readKeyParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	author, err := h.service.CreateAuthorFromOpenLibrary(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrUpstreamFailure):
			h.badGatewayResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/authors/%d", *author.ID))
	err = h.encodeJSON(w, http.StatusCreated, envelope{"author": author}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) getOrCreateAuthorFromOpenLibraryHandler(w http.ResponseWriter, r *http.Request) {
	key, err := h.readKeyParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	author, err := h.service.GetOrCreateAuthorFromOpenLibrary(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrUpstreamFailure):
			h.badGatewayResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"author": author}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) createBookFromOpenLibraryHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.CreateBookFromOpenLibrary(r.Context(), isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrUpstreamFailure):
			h.badGatewayResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	headers := make(http.Header)
	headers.Set("Location", "/v1/books/"+*book.ISBN)
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showOpenLibraryBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetOpenLibraryBook(r.Context(), isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrUpstreamFailure):
			h.badGatewayResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
