package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
)

const (
	maxFormMemory = 1 << 20

	msgConnectionFailed = "Database connection failed"
	msgInsertFailed     = "Error inserting data"
	msgFetchFailed      = "Error fetching data"
	msgNotFound         = "Employee not found"
	msgInvalidForm      = "Invalid form data"
)

var errInvalidForm = errors.New("invalid form data")

type missingFieldError struct {
	field string
}

func (e missingFieldError) Error() string {
	return "missing required field: " + e.field
}

// badRequestMessage is the plain-text body sent for a rejected form.
func badRequestMessage(err error) string {
	var missing missingFieldError
	if errors.As(err, &missing) {
		return "Missing required field: " + missing.field
	}
	return msgInvalidForm
}

func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "addemp.html", a.newPage(r.Context()))
}

func (a *App) handleAbout(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "about.html", a.newPage(r.Context()))
}

func (a *App) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, "getemp.html", a.newPage(r.Context()))
}

func (a *App) handleAddEmployee(w http.ResponseWriter, r *http.Request) {
	const opn = "App.AddEmployee"
	ctx := r.Context()
	log := a.initLogger(ctx, opn)

	data := a.newPage(ctx)

	values, err := formFields(r, "emp_id", "first_name", "last_name", "primary_skill", "location")
	if err != nil {
		log.InfoContext(ctx, "Rejected add employee request", sl.Err(err))
		http.Error(w, badRequestMessage(err), http.StatusBadRequest)
		return
	}

	employee := models.Employee{
		ID:           values[0],
		FirstName:    values[1],
		LastName:     values[2],
		PrimarySkill: values[3],
		Location:     values[4],
	}

	if err = a.repo.SaveEmployee(ctx, employee); err != nil {
		if errors.Is(err, repository.ErrConnectionFailed) {
			http.Error(w, msgConnectionFailed, http.StatusInternalServerError)
			return
		}
		log.ErrorContext(ctx, "Error during DB insert", sl.Err(err))
		http.Error(w, msgInsertFailed, http.StatusInternalServerError)
		return
	}

	log.InfoContext(ctx, "Employee added successfully", "emp_id", employee.ID)

	data.Name = employee.FullName()
	a.render(w, r, "addempoutput.html", data)
}

func (a *App) handleFetchData(w http.ResponseWriter, r *http.Request) {
	const opn = "App.FetchData"
	ctx := r.Context()
	log := a.initLogger(ctx, opn)

	data := a.newPage(ctx)

	values, err := formFields(r, "emp_id")
	if err != nil {
		log.InfoContext(ctx, "Rejected fetch request", sl.Err(err))
		http.Error(w, badRequestMessage(err), http.StatusBadRequest)
		return
	}

	employee, err := a.repo.GetEmployeeByID(ctx, values[0])
	switch {
	case errors.Is(err, repository.ErrConnectionFailed):
		http.Error(w, msgConnectionFailed, http.StatusInternalServerError)
		return
	case errors.Is(err, repository.ErrEmployeeNotFound):
		log.DebugContext(ctx, "Employee not found", "emp_id", values[0])
		data.Error = msgNotFound
	case err != nil:
		log.ErrorContext(ctx, "Error during DB fetch", sl.Err(err))
		http.Error(w, msgFetchFailed, http.StatusInternalServerError)
		return
	default:
		data.Employee = &employee
	}

	a.render(w, r, "getempoutput.html", data)
}

// formFields returns the values of the named fields in order. A field that is
// absent from the body is an error; a present but empty field is not.
func formFields(r *http.Request, names ...string) ([]string, error) {
	err := r.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, fmt.Errorf("%w: %w", errInvalidForm, err)
	}

	values := make([]string, 0, len(names))
	for _, name := range names {
		fieldValues, ok := r.PostForm[name]
		if !ok || len(fieldValues) == 0 {
			return nil, missingFieldError{field: name}
		}
		values = append(values, fieldValues[0])
	}

	return values, nil
}
