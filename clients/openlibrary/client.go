// Package openlibrary implements a typed client for the openlibrary.org
// bibliographic API. Only the book-by-isbn and author-by-key lookups used by
// the catalog are covered.
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mvrana/libris/clients"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when openlibrary reports that the requested
// resource does not exist.
var ErrNotFound = errors.New("openlibrary resource not found")

// AuthorKeyPrefix is the path prefix openlibrary uses in author references
// embedded in book payloads, e.g. "/authors/OL123A".
const AuthorKeyPrefix = "/authors/"

// Client calls the openlibrary API. Calls are rate limited so that bulk
// enrichment stays within openlibrary's fair-use policy.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates an openlibrary client.
func New(baseURL, userAgent string, rps float64) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: clients.NewHTTPClient(15 * time.Second),
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Book matches the relevant fields of /isbn/{isbn}.json. The payload carries
// author references rather than embedded author data.
type Book struct {
	Title   string      `json:"title"`
	Authors []AuthorRef `json:"authors"`
}

// AuthorRef is a reference to an author record, e.g. {"key": "/authors/OL123A"}.
type AuthorRef struct {
	Key string `json:"key"`
}

// Author matches the relevant fields of /authors/{key}.json.
type Author struct {
	Key       string `json:"key"`
	Name      string `json:"name"`
	BirthYear *int32 `json:"birth_date"`
}

// GetBookByISBN fetches a book record keyed by its isbn.
func (c *Client) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if isbn == "" {
		return nil, ErrNotFound
	}
	var book Book
	err := c.get(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, url.PathEscape(isbn)), &book)
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAuthorByKey fetches an author record keyed by its openlibrary key. The
// key may carry the "/authors/" reference prefix; it is stripped before the
// request. An empty key short-circuits to ErrNotFound without a network call.
func (c *Client) GetAuthorByKey(ctx context.Context, key string) (*Author, error) {
	key = strings.TrimPrefix(key, AuthorKeyPrefix)
	if key == "" {
		return nil, ErrNotFound
	}
	var author Author
	err := c.get(ctx, fmt.Sprintf("%s/authors/%s.json", c.baseURL, url.PathEscape(key)), &author)
	if err != nil {
		return nil, err
	}
	return &author, nil
}

func (c *Client) get(ctx context.Context, url string, dst interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openlibrary request failed: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("openlibrary returned unexpected status %d", resp.StatusCode)
	}
	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("openlibrary returned a malformed body: %w", err)
	}
	return nil
}
