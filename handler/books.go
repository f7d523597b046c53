package handler

import (
	"errors"
	"net/http"

	"github.com/mvrana/libris/data"
	"github.com/mvrana/libris/data/dto"
	"github.com/mvrana/libris/internal/validator"
	"github.com/mvrana/libris/service"
)

func (h *Handler) createBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.Book
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := h.service.CreateBook(isbn, requestBody)
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
	headers := make(http.Header)
	headers.Set("Location", "/v1/books/"+*book.ISBN)
	err = h.encodeJSON(w, http.StatusCreated, envelope{"book": book}, headers)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) showBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	book, err := h.service.GetBook(isbn)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound):
			h.notFoundResponse(w, r)
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

func (h *Handler) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	var filters data.Filters
	v := validator.New()
	qs := r.URL.Query()
	title := h.readString(qs, "title", "")
	filters.Page = h.readInt(qs, "page", 1, v)
	filters.PageSize = h.readInt(qs, "page_size", 10, v)
	filters.Sort = h.readString(qs, "sort", "isbn")
	filters.SortSafeList = []string{"isbn", "title", "-isbn", "-title"}
	if !v.Valid() {
		h.failedValidationResponse(w, r, errors.New("invalid query string values"))
		return
	}
	books, metadata, err := h.service.ListBooks(title, filters)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFailedValidation):
			h.failedValidationResponse(w, r, err)
		default:
			h.serverErrorResponse(w, r, err)
		}
		return
	}
	err = h.encodeJSON(w, http.StatusOK, envelope{"books": books, "metadata": metadata}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) updateFullBookHandler(w http.ResponseWriter, r *http.Request) {
	h.updateBook(w, r, h.service.UpdateFullBook)
}

func (h *Handler) updatePartialBookHandler(w http.ResponseWriter, r *http.Request) {
	h.updateBook(w, r, h.service.UpdatePartialBook)
}

func (h *Handler) updateBook(w http.ResponseWriter, r *http.Request, update func(string, dto.Book) (dto.Book, error)) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	var requestBody dto.Book
	err = h.decodeJSON(w, r, &requestBody)
	if err != nil {
		h.badRequestResponse(w, r, err)
		return
	}
	book, err := update(isbn, requestBody)
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
	err = h.encodeJSON(w, http.StatusOK, envelope{"book": book}, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}

func (h *Handler) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	isbn, err := h.readISBNParam(r)
	if err != nil {
		h.notFoundResponse(w, r)
		return
	}
	err = h.service.DeleteBook(isbn)
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
