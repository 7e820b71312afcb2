package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sleyter2616/SiteHustle-sub000/internal/export"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/validation"
	"github.com/Sleyter2616/SiteHustle-sub000/internal/worksheet"
)

// fakeExporter honors the Exporter contract without launching a browser:
// invalid sections fail the same way, valid ones get placeholder bytes.
type fakeExporter struct {
	exports int
}

func (f *fakeExporter) ExportSection(_ context.Context, pillarID int, sectionName string, value map[string]any) ([]byte, error) {
	result, err := validation.ValidateSection(pillarID, sectionName, value)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, &export.SectionInvalidError{Section: sectionName, Result: result}
	}
	f.exports++
	return []byte("%PDF-1.4 fake"), nil
}

func newTestServer(t *testing.T) (http.Handler, string, *fakeExporter) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	exporter := &fakeExporter{}
	srv, err := New(Config{Port: 0}, worksheet.NewMemStore(), exporter)
	require.NoError(t, err)

	token, err := srv.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	return srv.Handler(), token, exporter
}

func doRequest(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out), "body: %s", rec.Body.String())
	return out
}

func validReflection() map[string]any {
	return map[string]any{
		"whoIAm":        "a hands-on builder",
		"whoIAmNot":     "a spectator",
		"whyBuildBrand": "ownership",
	}
}

func TestHealthEndpointIsOpen(t *testing.T) {
	handler, _, _ := newTestServer(t)
	rec := doRequest(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired(t *testing.T) {
	handler, _, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/pillars", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/pillars", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	handler, _, _ := newTestServer(t)

	// Token signed with a different secret.
	t.Setenv("JWT_SECRET", "another-secret")
	otherSrv, err := New(Config{Port: 0}, worksheet.NewMemStore(), &fakeExporter{})
	require.NoError(t, err)
	forged, err := otherSrv.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	rec := doRequest(t, handler, http.MethodGet, "/pillars", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListPillars(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/pillars", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	pillars := decode[[]PillarSummary](t, rec)
	require.Len(t, pillars, 6)
	assert.Equal(t, "foundation", pillars[0].Slug)
	assert.Len(t, pillars[0].Sections, 5)
	assert.Equal(t, "reflection", pillars[0].Sections[0].Name)
}

func TestGetSchema(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/pillars/1/schema", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	js := decode[map[string]any](t, rec)
	assert.Equal(t, "object", js["type"])
}

func TestPillarParamErrors(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/pillars/abc/worksheet", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, "/pillars/9/worksheet", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetWorksheet_DefaultOnFirstUse(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodGet, "/pillars/3/worksheet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[WorksheetResponse](t, rec)
	assert.Equal(t, 3, resp.Document.Pillar)
	assert.Contains(t, resp.Document.Sections, "contentPillars")
	assert.False(t, resp.Validation.Success, "a fresh worksheet is never complete")
}

func TestPutWorksheet_RoundTrip(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPut, "/pillars/1/worksheet", token, map[string]any{
		"sections": map[string]any{"reflection": validReflection()},
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	resp := decode[WorksheetResponse](t, rec)
	assert.Equal(t, "a hands-on builder", resp.Document.Sections["reflection"]["whoIAm"])
	assert.False(t, resp.Validation.Success, "other sections are still empty")
	assert.NotContains(t, resp.Validation.Errors, "reflection.whoIAm")

	// The save sticks.
	rec = doRequest(t, handler, http.MethodGet, "/pillars/1/worksheet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[WorksheetResponse](t, rec)
	assert.Equal(t, "a hands-on builder", resp.Document.Sections["reflection"]["whoIAm"])
}

func TestPutWorksheet_RejectsBadShape(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPut, "/pillars/1/worksheet", token, map[string]any{
		"sections": map[string]any{
			"reflection": map[string]any{"whoIAm": 42},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.NotEmpty(t, body["problems"])
}

func TestPutWorksheet_RequiresSections(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPut, "/pillars/1/worksheet", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyEdit(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/worksheet/edits", token, map[string]any{
		"path":  "reflection.whoIAm",
		"value": "edited",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	resp := decode[WorksheetResponse](t, rec)
	assert.Equal(t, "edited", resp.Document.Sections["reflection"]["whoIAm"])

	// Bad paths are the caller's fault.
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/worksheet/edits", token, map[string]any{
		"path":  "whoIAm",
		"value": "not section-qualified",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/worksheet/edits", token, map[string]any{
		"value": "missing path",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateEndpoint_InvalidIs200(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/validate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[validation.Result](t, rec)
	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "reflection.whoIAm")
}

func TestValidateSection_WithBodyValue(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/sections/reflection/validate", token, map[string]any{
		"value": validReflection(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	result := decode[validation.Result](t, rec)
	assert.True(t, result.Success, "errors: %v", result.Errors)
}

func TestValidateSection_StoredValueAndUnknownSection(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/sections/reflection/validate", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	result := decode[validation.Result](t, rec)
	assert.False(t, result.Success, "stored worksheet is still empty")

	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/sections/bogus/validate", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgressFlow_GatesOnValidationThenArtifact(t *testing.T) {
	handler, token, exporter := newTestServer(t)

	// Fresh state.
	rec := doRequest(t, handler, http.MethodGet, "/pillars/1/progress", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prog := decode[ProgressResponse](t, rec)
	assert.Equal(t, 0, prog.State.CurrentSection)
	assert.Equal(t, 5, prog.SectionCount)
	assert.False(t, prog.Complete)

	// Advancing off an empty section is blocked by validation.
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/progress/advance", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	blocked := decode[BlockedResponse](t, rec)
	assert.Equal(t, "validation", string(blocked.Cause))
	assert.Equal(t, 0, blocked.Section)

	// Fill the first section: now the missing artifact is the gate.
	rec = doRequest(t, handler, http.MethodPut, "/pillars/1/worksheet", token, map[string]any{
		"sections": map[string]any{"reflection": validReflection()},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/progress/advance", token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	blocked = decode[BlockedResponse](t, rec)
	assert.Equal(t, "artifact_missing", string(blocked.Cause))

	// Export the PDF; that records the artifact.
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/sections/reflection/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "foundation-reflection.pdf")
	assert.Equal(t, 1, exporter.exports)

	// The gate is open now.
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/progress/advance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	prog = decode[ProgressResponse](t, rec)
	assert.Equal(t, 1, prog.State.CurrentSection)
	assert.Equal(t, 1, prog.State.UnlockedUpTo)
}

func TestExport_IncompleteSectionIs422(t *testing.T) {
	handler, token, exporter := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/sections/reflection/export", token, nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Contains(t, body, "validation")
	assert.Equal(t, 0, exporter.exports)

	// No artifact was recorded, so advancing is still blocked.
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/progress/advance", token, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestExport_UnknownSection(t *testing.T) {
	handler, token, _ := newTestServer(t)
	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/sections/bogus/export", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRetreat(t *testing.T) {
	handler, token, _ := newTestServer(t)

	// At the first section there is nowhere to go back to.
	rec := doRequest(t, handler, http.MethodPost, "/pillars/1/progress/retreat", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unlock and advance, then retreat.
	rec = doRequest(t, handler, http.MethodPut, "/pillars/1/worksheet", token, map[string]any{
		"sections": map[string]any{"reflection": validReflection()},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/sections/reflection/export", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/progress/advance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, handler, http.MethodPost, "/pillars/1/progress/retreat", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	prog := decode[ProgressResponse](t, rec)
	assert.Equal(t, 0, prog.State.CurrentSection)
	assert.Equal(t, 1, prog.State.UnlockedUpTo, "retreating keeps the unlock")
}

func TestUsersAreIsolated(t *testing.T) {
	handler, token, _ := newTestServer(t)

	rec := doRequest(t, handler, http.MethodPut, "/pillars/1/worksheet", token, map[string]any{
		"sections": map[string]any{"reflection": validReflection()},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// A second user sees a pristine worksheet.
	t.Setenv("JWT_SECRET", "test-secret-key")
	otherSrv, err := New(Config{Port: 0}, worksheet.NewMemStore(), &fakeExporter{})
	require.NoError(t, err)
	otherToken, err := otherSrv.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	rec = doRequest(t, handler, http.MethodGet, "/pillars/1/worksheet", otherToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[WorksheetResponse](t, rec)
	assert.Equal(t, "", resp.Document.Sections["reflection"]["whoIAm"])
}

func TestCORSPreflights(t *testing.T) {
	handler, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/pillars", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestJWTService_Roundtrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	srv, err := New(Config{Port: 0}, worksheet.NewMemStore(), &fakeExporter{})
	require.NoError(t, err)

	uid := uuid.New()
	token, err := srv.jwtService.GenerateToken(uid)
	require.NoError(t, err)

	claims, err := srv.jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uid, claims.UserID)

	_, err = srv.jwtService.ValidateToken("")
	assert.Error(t, err)
	_, err = srv.jwtService.ValidateToken(token + "tampered")
	assert.Error(t, err)
}

func TestServerRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := New(Config{Port: 0}, worksheet.NewMemStore(), &fakeExporter{})
	assert.Error(t, err)
}
