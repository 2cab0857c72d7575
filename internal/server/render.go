package server

import (
	"bytes"
	"context"
	"net/http"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// pageData is what every view receives.
type pageData struct {
	GroupName       string
	Slogan          string
	BackgroundImage string
	Name            string           // Name is the full name shown after an insert.
	Error           string           // Error is the informational message of a failed lookup.
	Employee        *models.Employee // Employee is set when a lookup found a record.
}

// newPage resolves the background image. It is called once per rendered page.
func (a *App) newPage(ctx context.Context) pageData {
	return pageData{
		GroupName:       a.display.GroupName,
		Slogan:          a.display.Slogan,
		BackgroundImage: a.backgrounds.Resolve(ctx),
	}
}

// render executes the page into a buffer first so a template failure never
// leaves a half-written 200 response.
func (a *App) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	var buf bytes.Buffer

	tmpl, ok := a.templates[page]
	if !ok {
		a.log.ErrorContext(r.Context(), "Unknown template", "page", page)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		a.log.ErrorContext(r.Context(), "Failed to render page", "page", page, sl.Err(err))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		a.log.WarnContext(r.Context(), "Failed to write response", sl.Err(err))
	}
}
