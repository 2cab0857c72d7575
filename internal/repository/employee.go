package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
)

const (
	insertEmployeeQuery = `INSERT INTO employee VALUES ($1, $2, $3, $4, $5)`
	fetchEmployeeQuery  = `SELECT emp_id, first_name, last_name, primary_skill, location FROM employee WHERE emp_id = $1`
)

// Connect opens a new connection. The caller hands it to exactly one of InsertEmployee,
// FetchEmployee or Release, each of which closes it.
func (r *Repository) Connect(ctx context.Context) (Conn, error) {
	conn, err := r.connector.Connect(ctx)
	if err != nil {
		r.metrics.DBConnects.WithLabelValues("failure").Inc()
		r.log.ErrorContext(ctx, "Error connecting to database", sl.Err(err))
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	r.metrics.DBConnects.WithLabelValues("success").Inc()
	r.log.DebugContext(ctx, "Database connection successful")

	return conn, nil
}

// Release closes the connection. It ignores cancellation of ctx so that the
// connection is still closed when the request has already gone away.
func (r *Repository) Release(ctx context.Context, conn Conn) {
	if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
		r.log.WarnContext(ctx, "Failed to close database connection", sl.Err(err))
	}
}

// InsertEmployee stores a new record in a single transaction and closes conn.
// On failure the transaction is rolled back and nothing is retried.
func (r *Repository) InsertEmployee(ctx context.Context, conn Conn, employee models.Employee) error {
	defer r.Release(ctx, conn)

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("insert_employee").Observe(duration)
	}()

	trx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = trx.Exec(ctx, insertEmployeeQuery,
		employee.ID, employee.FirstName, employee.LastName, employee.PrimarySkill, employee.Location)
	if err != nil {
		if rbErr := trx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			r.log.WarnContext(ctx, "Failed to roll back insert", sl.Err(rbErr))
		}
		return fmt.Errorf("failed to insert employee: %w", err)
	}

	if err = trx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit employee: %w", err)
	}

	r.metrics.EmployeesAdded.Inc()

	return nil
}

// FetchEmployee looks a record up by identifier and closes conn on every path.
// It returns ErrEmployeeNotFound when nothing matches.
func (r *Repository) FetchEmployee(ctx context.Context, conn Conn, identifier string) (models.Employee, error) {
	defer r.Release(ctx, conn)

	var result models.Employee

	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		r.metrics.DBQueryDuration.WithLabelValues("fetch_employee").Observe(duration)
	}()

	err := conn.QueryRow(ctx, fetchEmployeeQuery, identifier).Scan(
		&result.ID, &result.FirstName, &result.LastName, &result.PrimarySkill, &result.Location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Employee{}, ErrEmployeeNotFound
		}
		return models.Employee{}, fmt.Errorf("failed to fetch employee: %w", err)
	}

	return result, nil
}

// SaveEmployee opens a connection and inserts the record.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) error {
	conn, err := r.Connect(ctx)
	if err != nil {
		return err
	}

	return r.InsertEmployee(ctx, conn, employee)
}

// GetEmployeeByID opens a connection and fetches the record with the given identifier.
func (r *Repository) GetEmployeeByID(ctx context.Context, identifier string) (models.Employee, error) {
	conn, err := r.Connect(ctx)
	if err != nil {
		return models.Employee{}, err
	}

	return r.FetchEmployee(ctx, conn, identifier)
}

// Ping checks that a connection can be opened and used.
func (r *Repository) Ping(ctx context.Context) error {
	conn, err := r.Connect(ctx)
	if err != nil {
		return err
	}
	defer r.Release(ctx, conn)

	startTime := time.Now()
	defer func() {
		r.metrics.DBQueryDuration.WithLabelValues("ping").Observe(time.Since(startTime).Seconds())
	}()

	if err = conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}
