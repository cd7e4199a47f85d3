package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/cache"
	"github.com/goliatone/go-catalog-query/catalog"
	"github.com/goliatone/go-catalog-query/pagination"
	"github.com/goliatone/go-catalog-query/resilience"
)

// CategoryService answers category queries. Categories publish no view
// events.
type CategoryService struct {
	repo    CategoryRepository
	keys    cache.KeySerializer
	logger  zerolog.Logger
	timeout time.Duration

	all    *resilience.Pipeline[pagination.Page[catalog.Category]]
	byID   *resilience.Pipeline[catalog.Category]
	bySlug *resilience.Pipeline[catalog.Category]
}

// NewCategoryService wires the category read pipelines.
func NewCategoryService(
	repo CategoryRepository,
	store *cache.Store,
	keys cache.KeySerializer,
	cfg resilience.Config,
	timeout time.Duration,
	logger zerolog.Logger,
	registry *resilience.Registry,
) *CategoryService {
	if timeout <= 0 {
		timeout = DefaultAccessorTimeout
	}

	s := &CategoryService{
		repo:    repo,
		keys:    keys,
		logger:  logger,
		timeout: timeout,
	}
	s.all = resilience.New[pagination.Page[catalog.Category]]("category.get_all", cache.ClassListing, store, cfg, logger)
	s.byID = resilience.New[catalog.Category]("category.get_by_id", cache.ClassEntity, store, cfg, logger)
	s.bySlug = resilience.New[catalog.Category]("category.get_by_slug", cache.ClassEntity, store, cfg, logger)

	registry.Register(s.all)
	registry.Register(s.byID)
	registry.Register(s.bySlug)
	return s
}

// GetAll returns one page of categories sorted by id.
func (s *CategoryService) GetAll(ctx context.Context, page, size int) (pagination.Page[catalog.Category], error) {
	key := s.keys.SerializeKey("category.get_all", page, size)
	return s.all.Execute(ctx, key, func(ctx context.Context) (pagination.Page[catalog.Category], error) {
		categories, err := s.findAll(ctx)
		if err != nil {
			return pagination.Page[catalog.Category]{}, err
		}
		pagination.SortByID(categories, func(c catalog.Category) string { return c.ID })
		return pagination.Slice(categories, nil, page, size), nil
	}, resilience.PageFallback[catalog.Category](page, size))
}

// GetByID returns the category stored under id.
func (s *CategoryService) GetByID(ctx context.Context, id string) (catalog.Category, error) {
	key := s.keys.SerializeKey("category.get_by_id", id)
	return s.byID.Execute(ctx, key, func(ctx context.Context) (catalog.Category, error) {
		return s.findByID(ctx, id)
	}, resilience.EntityFallback[catalog.Category]())
}

// GetBySlug returns the category with the given slug.
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	key := s.keys.SerializeKey("category.get_by_slug", slug)
	return s.bySlug.Execute(ctx, key, func(ctx context.Context) (catalog.Category, error) {
		return s.findBySlug(ctx, slug)
	}, resilience.EntityFallback[catalog.Category]())
}

func (s *CategoryService) findAll(ctx context.Context) ([]catalog.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindAll(ctx)
}

func (s *CategoryService) findByID(ctx context.Context, id string) (catalog.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindByID(ctx, id)
}

func (s *CategoryService) findBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.repo.FindBySlug(ctx, slug)
}
