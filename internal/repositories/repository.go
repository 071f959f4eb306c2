package repositories

import "context"

// Repository groups the stores the assessment engine reads from and writes to
type Repository interface {
	// Assessment domain
	Assessment() AssessmentRepository

	// Course -> topic -> exercise -> template hierarchy (read side)
	Catalog() CatalogRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager interface for managing repository lifecycle
type RepositoryManager interface {
	// Initialize repositories with database connections
	Initialize() error

	// Get repository instance
	GetRepository() Repository

	// Health check for all repositories
	HealthCheck(ctx context.Context) error

	// Graceful shutdown
	Shutdown(ctx context.Context) error
}
