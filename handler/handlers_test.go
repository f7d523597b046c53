package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jellydator/ttlcache/v3"
	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/config"
	"github.com/mvrana/libris/data"
	"github.com/mvrana/libris/data/dto"
	"github.com/mvrana/libris/internal/jsonlog"
	"github.com/mvrana/libris/service"
	"golang.org/x/time/rate"
)

func i64ptr(i int64) *int64 { return &i }

// mockService stubs service.Service with overridable function fields.
type mockService struct {
	createAuthor           func(dto.Author) (dto.Author, error)
	getOrCreateAuthor      func(dto.Author) (dto.Author, error)
	createAuthorFromOL     func(context.Context, string) (dto.Author, error)
	getOrCreateAuthorOL    func(context.Context, string) (dto.Author, error)
	getAuthor              func(int64) (dto.Author, error)
	listAuthors            func() ([]dto.Author, error)
	updateFullAuthor       func(int64, dto.Author) (dto.Author, error)
	updatePartialAuthor    func(int64, dto.Author) (dto.Author, error)
	deleteAuthor           func(int64) error
	createBook             func(string, dto.Book) (dto.Book, error)
	createBookFromOL       func(context.Context, string) (dto.Book, error)
	getOpenLibraryBook     func(context.Context, string) (*openlibrary.Book, error)
	getBook                func(string) (dto.Book, error)
	listBooks              func(string, data.Filters) ([]dto.Book, data.Metadata, error)
	updateFullBook         func(string, dto.Book) (dto.Book, error)
	updatePartialBook      func(string, dto.Book) (dto.Book, error)
	deleteBook             func(string) error
}

func (m *mockService) CreateAuthor(b dto.Author) (dto.Author, error) { return m.createAuthor(b) }
func (m *mockService) GetOrCreateAuthor(b dto.Author) (dto.Author, error) {
	return m.getOrCreateAuthor(b)
}
func (m *mockService) CreateAuthorFromOpenLibrary(ctx context.Context, key string) (dto.Author, error) {
	return m.createAuthorFromOL(ctx, key)
}
func (m *mockService) GetOrCreateAuthorFromOpenLibrary(ctx context.Context, key string) (dto.Author, error) {
	return m.getOrCreateAuthorOL(ctx, key)
}
func (m *mockService) GetAuthor(id int64) (dto.Author, error) { return m.getAuthor(id) }
func (m *mockService) ListAuthors() ([]dto.Author, error)     { return m.listAuthors() }
func (m *mockService) UpdateFullAuthor(id int64, b dto.Author) (dto.Author, error) {
	return m.updateFullAuthor(id, b)
}
func (m *mockService) UpdatePartialAuthor(id int64, b dto.Author) (dto.Author, error) {
	return m.updatePartialAuthor(id, b)
}
func (m *mockService) DeleteAuthor(id int64) error { return m.deleteAuthor(id) }
func (m *mockService) CreateBook(isbn string, b dto.Book) (dto.Book, error) {
	return m.createBook(isbn, b)
}
func (m *mockService) CreateBookFromOpenLibrary(ctx context.Context, isbn string) (dto.Book, error) {
	return m.createBookFromOL(ctx, isbn)
}
func (m *mockService) GetOpenLibraryBook(ctx context.Context, isbn string) (*openlibrary.Book, error) {
	return m.getOpenLibraryBook(ctx, isbn)
}
func (m *mockService) GetBook(isbn string) (dto.Book, error) { return m.getBook(isbn) }
func (m *mockService) ListBooks(title string, f data.Filters) ([]dto.Book, data.Metadata, error) {
	return m.listBooks(title, f)
}
func (m *mockService) UpdateFullBook(isbn string, b dto.Book) (dto.Book, error) {
	return m.updateFullBook(isbn, b)
}
func (m *mockService) UpdatePartialBook(isbn string, b dto.Book) (dto.Book, error) {
	return m.updatePartialBook(isbn, b)
}
func (m *mockService) DeleteBook(isbn string) error { return m.deleteBook(isbn) }

func newTestHandler(svc *mockService) *Handler {
	var cfg config.Config
	cfg.Server.Env = "testing"
	logger := jsonlog.New(io.Discard, jsonlog.LevelFatal)
	cache := ttlcache.New[string, *rate.Limiter]()
	return New(cfg, logger, cache, svc)
}

func TestHealthcheck(t *testing.T) {
	h := newTestHandler(&mockService{})
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200; got %d", rr.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "available" {
		t.Errorf("unexpected status %v", body["status"])
	}
}

func TestCreateAuthor(t *testing.T) {
	svc := &mockService{
		createAuthor: func(b dto.Author) (dto.Author, error) {
			b.ID = i64ptr(1)
			return b, nil
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/authors", strings.NewReader(`{"name": "Abigail Rose", "birth_year": 80}`))

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201; got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Location"); got != "/v1/authors/1" {
		t.Errorf("unexpected Location header %q", got)
	}
}

func TestCreateAuthorConflict(t *testing.T) {
	svc := &mockService{
		createAuthor: func(b dto.Author) (dto.Author, error) {
			return dto.Author{}, service.ErrDuplicateRecord
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/authors", strings.NewReader(`{"key": "OL123A", "name": "Abigail Rose"}`))

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusConflict {
		t.Errorf("expected 409; got %d", rr.Code)
	}
}

func TestCreateAuthorFailedValidation(t *testing.T) {
	svc := &mockService{
		createAuthor: func(b dto.Author) (dto.Author, error) {
			return dto.Author{}, service.ErrFailedValidation
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/authors", strings.NewReader(`{"name": ""}`))

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422; got %d", rr.Code)
	}
}

func TestCreateAuthorBadJSON(t *testing.T) {
	h := newTestHandler(&mockService{})
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"name": `},
		{"unknown field", `{"nom": "Abigail Rose"}`},
		{"empty body", ``},
		{"multiple values", `{"name": "A"}{"name": "B"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/v1/authors", strings.NewReader(tt.body))
			h.Routes().ServeHTTP(rr, r)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("expected 400; got %d", rr.Code)
			}
		})
	}
}

func TestShowAuthorNotFound(t *testing.T) {
	svc := &mockService{
		getAuthor: func(id int64) (dto.Author, error) {
			return dto.Author{}, service.ErrRecordNotFound
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/authors/42", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404; got %d", rr.Code)
	}
}

func TestShowAuthorInvalidID(t *testing.T) {
	h := newTestHandler(&mockService{})
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/authors/abc", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404; got %d", rr.Code)
	}
}

func TestDeleteAuthorNoContent(t *testing.T) {
	svc := &mockService{
		deleteAuthor: func(id int64) error { return nil },
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/v1/authors/1", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusNoContent {
		t.Errorf("expected 204; got %d", rr.Code)
	}
}

func TestCreateBookUsesPathISBN(t *testing.T) {
	var gotISBN string
	svc := &mockService{
		createBook: func(isbn string, b dto.Book) (dto.Book, error) {
			gotISBN = isbn
			b.ISBN = &isbn
			return b, nil
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/books/978-1-2345-6789-0", strings.NewReader(`{"isbn": "999-9-9999-9999-9", "title": "The Shadow in the Attic"}`))

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201; got %d: %s", rr.Code, rr.Body.String())
	}
	if gotISBN != "978-1-2345-6789-0" {
		t.Errorf("expected the path isbn passed through; got %q", gotISBN)
	}
	if got := rr.Header().Get("Location"); got != "/v1/books/978-1-2345-6789-0" {
		t.Errorf("unexpected Location header %q", got)
	}
}

func TestShowOpenLibraryBookBadGateway(t *testing.T) {
	svc := &mockService{
		getOpenLibraryBook: func(ctx context.Context, isbn string) (*openlibrary.Book, error) {
			return nil, service.ErrUpstreamFailure
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/openlibrary/books/9788573025064", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected 502; got %d", rr.Code)
	}
}

func TestCreateBookFromOpenLibraryNotFound(t *testing.T) {
	svc := &mockService{
		createBookFromOL: func(ctx context.Context, isbn string) (dto.Book, error) {
			return dto.Book{}, service.ErrRecordNotFound
		},
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/v1/openlibrary/books/0000000000000", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404; got %d", rr.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(&mockService{})
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodDelete, "/v1/authors", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405; got %d", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	svc := &mockService{
		listAuthors: func() ([]dto.Author, error) { return []dto.Author{}, nil },
	}
	h := newTestHandler(svc)
	h.config.Limiter.Enabled = true
	h.config.Limiter.RPS = 1
	h.config.Limiter.Burst = 2
	routes := h.Routes()

	var lastCode int
	for i := 0; i < 4; i++ {
		rr := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/authors", nil)
		r.RemoteAddr = "10.0.0.1:4000"
		routes.ServeHTTP(rr, r)
		lastCode = rr.Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst exhaustion; got %d", lastCode)
	}
}

func TestRecoverPanic(t *testing.T) {
	svc := &mockService{
		listAuthors: func() ([]dto.Author, error) { panic("boom") },
	}
	h := newTestHandler(svc)
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/authors", nil)

	h.Routes().ServeHTTP(rr, r)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500; got %d", rr.Code)
	}
	if got := rr.Header().Get("Connection"); got != "close" {
		t.Errorf("expected the connection marked for closing; got %q", got)
	}
}

func TestEnableCORS(t *testing.T) {
	svc := &mockService{
		listAuthors: func() ([]dto.Author, error) { return []dto.Author{}, nil },
	}
	h := newTestHandler(svc)
	h.config.Cors.TrustedOrigins = []string{"https://example.com"}
	rr := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/authors", nil)
	r.Header.Set("Origin", "https://example.com")

	h.Routes().ServeHTTP(rr, r)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("unexpected Access-Control-Allow-Origin %q", got)
	}
}
