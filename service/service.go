package service

import (
	"context"

	"github.com/mvrana/libris/clients/openlibrary"
	"github.com/mvrana/libris/config"
	"github.com/mvrana/libris/internal/jsonlog"
	"github.com/mvrana/libris/repository"
)

// Service defines the app's business layer. It is composed of one capability
// interface per entity type.
type Service interface {
	authors
	books
}

// catalog is the slice of the openlibrary client the service depends on.
type catalog interface {
	GetBookByISBN(ctx context.Context, isbn string) (*openlibrary.Book, error)
	GetAuthorByKey(ctx context.Context, key string) (*openlibrary.Author, error)
}

type service struct {
	config  config.Config
	logger  *jsonlog.Logger
	repo    repository.Repository
	catalog catalog
}

// New creates a new instance of Service.
func New(cfg config.Config, logger *jsonlog.Logger, repo repository.Repository, catalog catalog) Service {
	return &service{
		config:  cfg,
		logger:  logger,
		repo:    repo,
		catalog: catalog,
	}
}
