package handler

import (
	"expvar"
	"net/http"

	"github.com/julienschmidt/httprouter"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func (h *Handler) Routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(h.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(h.methodNotAllowed)

	router.HandlerFunc(http.MethodGet, "/v1/authors", h.listAuthorsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/authors", h.createAuthorHandler)
	router.HandlerFunc(http.MethodGet, "/v1/authors/:authorId", h.showAuthorHandler)
	router.HandlerFunc(http.MethodPut, "/v1/authors/:authorId", h.updateFullAuthorHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/authors/:authorId", h.updatePartialAuthorHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/authors/:authorId", h.deleteAuthorHandler)

	router.HandlerFunc(http.MethodPost, "/v1/openlibrary/authors/:authorKey", h.createAuthorFromOpenLibraryHandler)
	router.HandlerFunc(http.MethodPut, "/v1/openlibrary/authors/:authorKey", h.getOrCreateAuthorFromOpenLibraryHandler)

	router.HandlerFunc(http.MethodGet, "/v1/books", h.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books/:isbn", h.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:isbn", h.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/v1/books/:isbn", h.updateFullBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:isbn", h.updatePartialBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:isbn", h.deleteBookHandler)

	router.HandlerFunc(http.MethodPost, "/v1/openlibrary/books/:isbn", h.createBookFromOpenLibraryHandler)
	router.HandlerFunc(http.MethodGet, "/v1/openlibrary/books/:isbn", h.showOpenLibraryBookHandler)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", h.healthcheckHandler)

	if h.config.Metrics.Enabled {
		router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())
	}

	// Swagger routes
	router.HandlerFunc(http.MethodGet, "/spec", h.handleSwaggerFile())
	router.HandlerFunc(http.MethodGet, "/docs/*any", httpSwagger.Handler(httpSwagger.URL("/spec")))

	var chain http.Handler = router
	if h.config.Metrics.Enabled {
		chain = h.metrics(chain)
	}
	return h.recoverPanic(h.enableCORS(h.rateLimit(chain)))
}
