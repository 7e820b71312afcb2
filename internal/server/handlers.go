package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/export"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/progress"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/schema"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/validation"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/worksheet"
)

var validate = validator.New()

// PutWorksheetRequest is the request body for PUT /pillars/{pillar}/worksheet.
type PutWorksheetRequest struct {
	Sections map[string]map[string]any `json:"sections" validate:"required"`
}

// EditRequest is the request body for POST /pillars/{pillar}/worksheet/edits.
type EditRequest struct {
	Path  string `json:"path" validate:"required"`
	Value any    `json:"value"`
}

// ValidateSectionRequest optionally carries an unsaved section value to
// validate instead of the stored one.
type ValidateSectionRequest struct {
	Value map[string]any `json:"value,omitempty"`
}

// WorksheetResponse pairs a document with its current validation result.
type WorksheetResponse struct {
	Document   *worksheet.Document `json:"document"`
	Validation validation.Result   `json:"validation"`
}

// ProgressResponse reports progression state plus derived flags.
type ProgressResponse struct {
	State        *progress.State `json:"state"`
	SectionCount int             `json:"section_count"`
	Complete     bool            `json:"complete"`
}

// BlockedResponse reports a rejected navigation attempt with its cause,
// so the UI can tell "finish the section" from "download the PDF first".
type BlockedResponse struct {
	Error   string         `json:"error"`
	Cause   progress.Cause `json:"cause"`
	Section int            `json:"section"`
}

// PillarSummary is the listing shape for GET /pillars.
type PillarSummary struct {
	ID       int              `json:"id"`
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Sections []SectionSummary `json:"sections"`
}

// SectionSummary names one section of a pillar.
type SectionSummary struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// pillarParam parses and checks the {pillar} path segment. On failure it
// writes the error response and returns false.
func (s *Server) pillarParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := r.PathValue("pillar")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid pillar id")
		return 0, false
	}
	if _, err := schema.Get(id); err != nil {
		s.errorResponse(w, http.StatusNotFound, "Unknown pillar")
		return 0, false
	}
	return id, true
}

// storeFailure maps persistence errors onto HTTP responses.
func (s *Server) storeFailure(w http.ResponseWriter, err error) {
	if errors.Is(err, worksheet.ErrSaveInFlight) {
		s.errorResponse(w, http.StatusConflict, "A save is already in progress for this worksheet")
		return
	}
	var storeErr *worksheet.StoreError
	if errors.As(err, &storeErr) {
		s.errorResponse(w, http.StatusInternalServerError, "Storage error: "+storeErr.Error())
		return
	}
	s.errorResponse(w, http.StatusInternalServerError, err.Error())
}

// handleListPillars lists the curriculum's pillars and their sections.
func (s *Server) handleListPillars(w http.ResponseWriter, _ *http.Request) {
	pillars := schema.Pillars()
	out := make([]PillarSummary, 0, len(pillars))
	for _, p := range pillars {
		summary := PillarSummary{ID: p.ID, Slug: p.Slug, Title: p.Title}
		for _, sec := range p.Sections {
			summary.Sections = append(summary.Sections, SectionSummary{Name: sec.Name, Title: sec.Title})
		}
		out = append(out, summary)
	}
	s.jsonResponse(w, http.StatusOK, out)
}

// handleGetSchema returns a pillar's structural JSON Schema.
func (s *Server) handleGetSchema(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	js, err := schema.JSONSchema(pillarID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, js)
}

// handleGetWorksheet returns the stored document, defaulted on first use.
func (s *Server) handleGetWorksheet(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return
	}

	result, err := validation.Validate(pillarID, doc.Sections)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, WorksheetResponse{Document: doc, Validation: result})
}

// handlePutWorksheet replaces the whole document. The body is checked
// structurally against the pillar's JSON Schema; field-level completeness
// is reported in the response, never a reason to reject a save (a
// half-finished worksheet is the normal case).
func (s *Server) handlePutWorksheet(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req PutWorksheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "sections is required")
		return
	}

	// Overlay the submitted sections onto defaults so partial payloads
	// never drop a section key.
	defaults, err := schema.DefaultSections(pillarID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	for name, sec := range req.Sections {
		defaults[name] = sec
	}

	problems, err := schema.CheckShape(pillarID, defaults)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(problems) > 0 {
		s.jsonResponse(w, http.StatusBadRequest, map[string]any{
			"error":    "worksheet shape is invalid",
			"problems": problems,
		})
		return
	}

	doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	doc.Sections = defaults

	if err := s.saver.Save(r.Context(), doc); err != nil {
		s.storeFailure(w, err)
		return
	}

	result, err := validation.Validate(pillarID, doc.Sections)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, WorksheetResponse{Document: doc, Validation: result})
}

// handleApplyEdit changes a single field and saves the result.
func (s *Server) handleApplyEdit(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "path is required")
		return
	}

	doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return
	}

	edited, err := worksheet.ApplyEdit(doc, req.Path, req.Value)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.saver.Save(r.Context(), edited); err != nil {
		s.storeFailure(w, err)
		return
	}

	result, err := validation.Validate(pillarID, edited.Sections)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, WorksheetResponse{Document: edited, Validation: result})
}

// handleValidate validates the stored document. Invalid data is a normal
// outcome: the result is returned with 200.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	result, err := validation.Validate(pillarID, doc.Sections)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleValidateSection validates one section, either an in-flight value
// from the request body or the stored one.
func (s *Server) handleValidateSection(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	sectionName := r.PathValue("section")

	var req ValidateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	value := req.Value
	if value == nil {
		doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
		if err != nil {
			s.storeFailure(w, err)
			return
		}
		value = doc.Sections[sectionName]
	}

	result, err := validation.ValidateSection(pillarID, sectionName, value)
	if err != nil {
		s.errorResponse(w, http.StatusNotFound, err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetProgress returns the progression state.
func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tracker, st, doc, ok := s.loadProgression(w, r, uid, pillarID)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, ProgressResponse{
		State:        st,
		SectionCount: tracker.SectionCount(),
		Complete:     tracker.Complete(st, doc.Sections),
	})
}

// handleAdvance moves to the next section if its gate is open.
func (s *Server) handleAdvance(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tracker, st, doc, ok := s.loadProgression(w, r, uid, pillarID)
	if !ok {
		return
	}

	if err := tracker.Advance(st, doc.Sections); err != nil {
		var blocked *progress.BlockedError
		if errors.As(err, &blocked) {
			s.jsonResponse(w, http.StatusConflict, BlockedResponse{
				Error:   blocked.Error(),
				Cause:   blocked.Cause,
				Section: blocked.Section,
			})
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.store.SaveProgress(r.Context(), uid, pillarID, st); err != nil {
		s.storeFailure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ProgressResponse{
		State:        st,
		SectionCount: tracker.SectionCount(),
		Complete:     tracker.Complete(st, doc.Sections),
	})
}

// handleRetreat steps back one section; always allowed above zero.
func (s *Server) handleRetreat(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tracker, st, doc, ok := s.loadProgression(w, r, uid, pillarID)
	if !ok {
		return
	}

	if !tracker.Retreat(st) {
		s.errorResponse(w, http.StatusBadRequest, "Already at the first section")
		return
	}

	if err := s.store.SaveProgress(r.Context(), uid, pillarID, st); err != nil {
		s.storeFailure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, ProgressResponse{
		State:        st,
		SectionCount: tracker.SectionCount(),
		Complete:     tracker.Complete(st, doc.Sections),
	})
}

// handleExport renders a section PDF and records the artifact, which is
// what unlocks the next section.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	pillarID, ok := s.pillarParam(w, r)
	if !ok {
		return
	}
	uid, ok := userID(r)
	if !ok {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	sectionName := r.PathValue("section")

	p := schema.MustGet(pillarID)
	sectionIndex := p.SectionIndex(sectionName)
	if sectionIndex < 0 {
		s.errorResponse(w, http.StatusNotFound, "Unknown section")
		return
	}

	doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return
	}

	pdf, err := s.exporter.ExportSection(r.Context(), pillarID, sectionName, doc.Sections[sectionName])
	if err != nil {
		var invalid *export.SectionInvalidError
		if errors.As(err, &invalid) {
			s.jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
				"error":      invalid.Error(),
				"validation": invalid.Result,
			})
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Export failed: "+err.Error())
		return
	}

	tracker, st, _, ok := s.loadProgression(w, r, uid, pillarID)
	if !ok {
		return
	}
	tracker.MarkArtifactProduced(st, sectionIndex)
	if err := s.store.SaveProgress(r.Context(), uid, pillarID, st); err != nil {
		s.storeFailure(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s-%s.pdf", p.Slug, sectionName))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("Error writing PDF response: %v", err)
	}
}

// loadProgression fetches the tracker, state and document together. On
// failure it writes the error response and returns ok=false.
func (s *Server) loadProgression(w http.ResponseWriter, r *http.Request, uid uuid.UUID, pillarID int) (*progress.Tracker, *progress.State, *worksheet.Document, bool) {
	tracker, err := progress.NewTracker(pillarID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return nil, nil, nil, false
	}
	st, err := s.store.LoadProgress(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return nil, nil, nil, false
	}
	doc, err := s.store.LoadWorksheet(r.Context(), uid, pillarID)
	if err != nil {
		s.storeFailure(w, err)
		return nil, nil, nil, false
	}
	return tracker, st, doc, true
}
