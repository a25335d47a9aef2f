package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/render"
	"aceh-poverty-dashboard/storage"
)

type pageData struct {
	View     *models.View
	Controls *models.Controls
	Query    template.URL
	ShowTopN bool
	ShowLine bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view, controls, ok := s.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := s.page.Execute(&buf, pageData{
		View:     view,
		Controls: controls,
		Query:    template.URL(view.Selection.Encode()),
		ShowTopN: len(controls.TopN) > 0,
		ShowLine: view.Selection.Chart == models.ChartPovertyLine,
	})
	if err != nil {
		s.logger.Error("Template: %v", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// handleChart serves one section's chart: interactive HTML, or PNG when the
// section ends in ".png".
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	section := chi.URLParam(r, "section")
	renderer := s.html
	if id, ok := strings.CutSuffix(section, ".png"); ok {
		section, renderer = id, s.png
	}

	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := s.dash.Render(sel)
	if err != nil {
		s.logger.Error("Render: %v", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	sec := view.Section(section)
	if sec == nil || sec.Chart == nil {
		http.Error(w, fmt.Sprintf("no chart %q on this page", section), http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, sec.Chart); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.logger.Error("Chart %s: %v", section, err)
		http.Error(w, "chart error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := s.dash.Render(sel)
	if err != nil {
		s.logger.Error("Render: %v", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, view)
}

func (s *Server) handleControls(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	controls, err := s.dash.Controls(sel)
	if err != nil {
		s.logger.Error("Controls: %v", err)
		http.Error(w, "controls error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, controls)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view, err := s.dash.Render(sel)
	if err != nil {
		s.logger.Error("Render: %v", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	book := storage.NewXLSXWriter("")
	defer book.Close()
	if _, err := storage.WriteView(book, view); err != nil {
		s.logger.Error("Export: %v", err)
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if _, err := book.WriteTo(&buf); err != nil {
		s.logger.Error("Export: %v", err)
		http.Error(w, "export error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.xlsx"`, view.Selection.Chart))
	_, _ = buf.WriteTo(w)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// build parses the selection and renders both the view and the sidebar,
// writing the error response itself when it fails.
func (s *Server) build(w http.ResponseWriter, r *http.Request) (*models.View, *models.Controls, bool) {
	sel, err := parseSelection(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, nil, false
	}
	view, err := s.dash.Render(sel)
	if err != nil {
		s.logger.Error("Render: %v", err)
		http.Error(w, "render error", http.StatusInternalServerError)
		return nil, nil, false
	}
	controls, err := s.dash.Controls(view.Selection)
	if err != nil {
		s.logger.Error("Controls: %v", err)
		http.Error(w, "controls error", http.StatusInternalServerError)
		return nil, nil, false
	}
	return view, controls, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
