package catalog

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/feed"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new catalog feature.
func NewFeature(repo *Repository, pool *database.Pool, feeds feed.Config, logger *zap.Logger) *Feature {
	svc := NewService(repo, pool, feeds, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service exposes the feature's service for CLI use.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
