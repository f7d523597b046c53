package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mvrana/libris/data/dto"
	"github.com/mvrana/libris/service"
)

func (h *Handler) createAuthorHandler(w http.ResponseWriter, r *http.Request) {
	var requestBody dto.Author
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	author, err := h.service.CreateAuthor(requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
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

func (h *Handler) showAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.readIDParam(r, "authorId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	author, err := h.service.GetAuthor(authorID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
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

func (h *Handler) listAuthorsHandler(w http.ResponseWriter, r *http.Request) {
	authors, err := h.service.ListAuthors()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"authors": authors}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateFullAuthorHandler(w http.ResponseWriter, r *http.Request) {
	h.updateAuthor(w, r, h.service.UpdateFullAuthor)
}

func (h *Handler) updatePartialAuthorHandler(w http.ResponseWriter, r *http.Request) {
	h.updateAuthor(w, r, h.service.UpdatePartialAuthor)
}

func (h *Handler) updateAuthor(w http.ResponseWriter, r *http.Request, update func(int64, dto.Author) (dto.Author, error)) {
	var requestBody dto.Author
	err := h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	authorID, err := h.readIDParam(r, "authorId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	author, err := update(authorID, requestBody)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		case errors.Is(err, service.ErrDuplicateRecord):
			h.recordAlreadyExistsResponse(w, r)
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

func (h *Handler) deleteAuthorHandler(w http.ResponseWriter, r *http.Request) {
	authorID, err := h.readIDParam(r, "authorId")
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteAuthor(authorID)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
