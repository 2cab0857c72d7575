//go:build integration

package repository_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(t *testing.T) config.DatabaseConfig {
	t.Helper()

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("employees"),
		postgres.WithUsername("hestia"),
		postgres.WithPassword("hestia"),
		postgres.WithInitScripts(filepath.Join("testdata", "employee.sql")),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if termErr := testcontainers.TerminateContainer(ctr); termErr != nil {
			t.Logf("failed to terminate postgres container: %v", termErr)
		}
	})

	host, err := ctr.Host(ctx)
	require.NoError(t, err)
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return config.DatabaseConfig{
		Host:     host,
		Port:     port.Port(),
		User:     "hestia",
		Password: "hestia",
		Name:     "employees",
	}
}

func TestRepository_Integration(t *testing.T) {
	dbConfig := startPostgres(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.NewEmployeeRepository(
		repository.NewConnector(dbConfig), logger, metrics.NewMetrics(prometheus.NewRegistry()))
	ctx := context.Background()

	emp := models.Employee{ID: "101", FirstName: "Ann", LastName: "Lee", PrimarySkill: "Go", Location: "NY"}

	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, repo.SaveEmployee(ctx, emp))

	stored, err := repo.GetEmployeeByID(ctx, "101")
	require.NoError(t, err)
	assert.Equal(t, emp, stored)

	_, err = repo.GetEmployeeByID(ctx, "999")
	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)

	// duplicate identifiers are rejected by the primary key, not by the application
	err = repo.SaveEmployee(ctx, emp)
	require.Error(t, err)
	require.NotErrorIs(t, err, repository.ErrConnectionFailed)
}
