package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"movies-backend/internal/config"
	infraCache "movies-backend/internal/infrastructure/cache"
	infraSearch "movies-backend/internal/infrastructure/search"
	"movies-backend/pkg/cache"
	"movies-backend/pkg/search"

	"movies-backend/internal/domains/film"
	filmHandler "movies-backend/internal/domains/film/handler"
	filmRepo "movies-backend/internal/domains/film/repository"
	filmService "movies-backend/internal/domains/film/service"
	"movies-backend/internal/domains/genre"
	genreHandler "movies-backend/internal/domains/genre/handler"
	genreRepo "movies-backend/internal/domains/genre/repository"
	genreService "movies-backend/internal/domains/genre/service"
	"movies-backend/internal/domains/person"
	personHandler "movies-backend/internal/domains/person/handler"
	personRepo "movies-backend/internal/domains/person/repository"
	personService "movies-backend/internal/domains/person/service"
)

const startupTimeout = 5 * time.Second

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
// Clients are built once and shared by all repositories.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config  *config.Config
	Store   search.DocumentStore     // breaker-wrapped when backed by Elasticsearch
	Breaker *infraSearch.BreakerStore // nil for the memory driver
	Cache   cache.Cache
	Aside   *infraCache.Aside

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	GenreRepo    genre.Repository
	FilmRepo     film.Repository
	PersonRepo   person.Repository
	RoleResolver person.RoleResolver

	// ========================================
	// SERVICE LAYER
	// ========================================
	GenreService  genre.Service
	FilmService   film.Service
	PersonService person.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	GenreHandler  *genreHandler.GenreHandler
	FilmHandler   *filmHandler.FilmHandler
	PersonHandler *personHandler.PersonHandler
}

// NewContainer loads the config from the environment and builds the graph.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("env", cfg.App.Environment).Msg("Config loaded")
	return Build(cfg)
}

// Build creates the dependency graph from cfg.
//
// Order matters:
// 1. Infrastructure (document store, cache)
// 2. Repositories
// 3. Services
// 4. Handlers
func Build(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: DOCUMENT STORE
	// ========================================
	if err := c.initStore(); err != nil {
		return nil, err
	}

	// ========================================
	// STEP 2: CACHE
	// ========================================
	c.initCache()
	c.Aside = infraCache.NewAside(c.Cache, infraCache.WithLoadTimeout(cfg.Cache.LoadTimeout))

	// ========================================
	// STEP 3: REPOSITORIES
	// ========================================
	c.initRepositories()

	// ========================================
	// STEP 4: SERVICES
	// ========================================
	c.GenreService = genreService.NewGenreService(c.GenreRepo)
	c.FilmService = filmService.NewFilmService(c.FilmRepo)
	c.PersonService = personService.NewPersonService(c.PersonRepo)

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.FilmHandler = filmHandler.NewFilmHandler(c.FilmService)
	c.PersonHandler = personHandler.NewPersonHandler(c.PersonService)

	log.Info().
		Str("search_driver", cfg.Search.Driver).
		Str("cache_driver", cfg.Cache.Driver).
		Msg("DI Container initialized")
	return c, nil
}

func (c *Container) initStore() error {
	cfg := c.Config

	if cfg.Search.Driver == config.DriverMemory {
		mem := infraSearch.NewMemoryStore()
		if cfg.Search.Fixtures != "" {
			if err := mem.LoadFile(cfg.Search.Fixtures); err != nil {
				return fmt.Errorf("failed to load search fixtures: %w", err)
			}
			log.Info().Str("file", cfg.Search.Fixtures).Msg("Search fixtures loaded")
		}
		c.Store = mem
		return nil
	}

	es, err := infraSearch.NewElasticStore(infraSearch.ElasticOptions{
		Addresses:  []string{cfg.Elastic.Address()},
		Username:   cfg.Elastic.Username,
		Password:   cfg.Elastic.Password,
		MaxRetries: cfg.Elastic.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	// Store outages are reported by /health; the breaker guards requests.
	if err := es.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Elastic.Address()).Msg("Elasticsearch unreachable at startup")
	}

	breakerCfg := infraSearch.DefaultBreakerConfig("elasticsearch")
	breakerCfg.FailureThreshold = uint32(cfg.Breaker.FailureThreshold)
	breakerCfg.Timeout = cfg.Breaker.Timeout
	c.Breaker = infraSearch.NewBreakerStore(es, breakerCfg)
	c.Store = c.Breaker
	return nil
}

func (c *Container) initCache() {
	cfg := c.Config

	if cfg.Cache.Driver == config.DriverMemory {
		c.Cache = infraCache.NewMemoryCache(time.Minute)
		return
	}

	rc := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()
	// Cache errors degrade to store reads, so a cold Redis is not fatal.
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Host).Msg("Redis unreachable at startup")
	}
	c.Cache = rc
}

func (c *Container) initRepositories() {
	cfg := c.Config

	c.GenreRepo = genreRepo.NewElasticRepository(c.Store, c.Aside, cfg.Elastic.GenresIndex, cfg.Cache.GenreTTL)
	c.FilmRepo = filmRepo.NewElasticRepository(c.Store, c.Aside, c.GenreRepo, film.GenreMapping(cfg.Search.GenreMapping), cfg.Elastic.FilmsIndex, cfg.Cache.FilmTTL)
	c.RoleResolver = personRepo.NewFilmRoleResolver(c.Store, cfg.Elastic.FilmsIndex, cfg.Search.PersonFilmsLimit)
	c.PersonRepo = personRepo.NewElasticRepository(c.Store, c.Aside, c.RoleResolver, cfg.Elastic.PersonsIndex, cfg.Cache.PersonTTL)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases the cache connection.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up resources...")
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close cache")
		}
	}
	log.Info().Msg("Cleanup completed")
}
