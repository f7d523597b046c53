package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetBookByISBN(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"title": "Laughable Loves", "authors": [{"key": "/authors/OL123A"}, {"key": "/authors/OL456B"}], "revision": 7}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	book, err := c.GetBookByISBN(context.Background(), "9780571206926")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/isbn/9780571206926.json" {
		t.Errorf("unexpected request path %s", gotPath)
	}
	if book.Title != "Laughable Loves" {
		t.Errorf("unexpected title %q", book.Title)
	}
	if len(book.Authors) != 2 || book.Authors[0].Key != "/authors/OL123A" {
		t.Errorf("unexpected authors %+v", book.Authors)
	}
}

func TestGetBookByISBNNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	_, err := c.GetBookByISBN(context.Background(), "0000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound; got %v", err)
	}
}

func TestGetBookByISBNUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	_, err := c.GetBookByISBN(context.Background(), "9780571206926")
	if err == nil {
		t.Fatal("expected an error")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("a 500 response must not be reported as not found")
	}
}

func TestGetBookByISBNMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":`))
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	_, err := c.GetBookByISBN(context.Background(), "9780571206926")
	if err == nil {
		t.Fatal("expected an error for a malformed body")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("a decode failure must not be reported as not found")
	}
}

func TestGetAuthorByKeyStripsReferencePrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"key": "/authors/OL123A", "name": "Milan Kundera", "birth_date": 1929}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	author, err := c.GetAuthorByKey(context.Background(), "/authors/OL123A")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/authors/OL123A.json" {
		t.Errorf("unexpected request path %s", gotPath)
	}
	if author.Name != "Milan Kundera" {
		t.Errorf("unexpected name %q", author.Name)
	}
	if author.BirthYear == nil || *author.BirthYear != 1929 {
		t.Errorf("unexpected birth year %v", author.BirthYear)
	}
}

func TestGetAuthorByKeyMissingBirthDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"key": "/authors/OL123A", "name": "Milan Kundera"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	author, err := c.GetAuthorByKey(context.Background(), "OL123A")
	if err != nil {
		t.Fatal(err)
	}
	if author.BirthYear != nil {
		t.Errorf("expected absent birth date to stay nil; got %v", *author.BirthYear)
	}
}

func TestGetAuthorByKeyEmptyKeyShortCircuits(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := New(srv.URL, "libris-test/1.0", 100)
	for _, key := range []string{"", AuthorKeyPrefix} {
		_, err := c.GetAuthorByKey(context.Background(), key)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("key %q: expected ErrNotFound; got %v", key, err)
		}
	}
	if requests != 0 {
		t.Errorf("expected no network calls for empty keys; got %d", requests)
	}
}
