package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

var (
	// ErrConnectionFailed wraps any failure to establish a database connection.
	ErrConnectionFailed = errors.New("database connection failed")
	// ErrEmployeeNotFound is returned when no record matches the requested identifier.
	ErrEmployeeNotFound = errors.New("employee not found")
)

// Repository stores employees, opening a new connection for every operation.
type Repository struct {
	connector Connector
	log       *slog.Logger
	metrics   *metrics.Metrics
}

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	SaveEmployee(ctx context.Context, employee models.Employee) error
	GetEmployeeByID(ctx context.Context, identifier string) (models.Employee, error)
	Ping(ctx context.Context) error
}

// NewEmployeeRepository returns a Repository that obtains its connections from connector.
func NewEmployeeRepository(connector Connector, log *slog.Logger, metrics *metrics.Metrics) *Repository {
	return &Repository{connector: connector, log: log, metrics: metrics}
}
