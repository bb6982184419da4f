package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"git.lost.host/meutraa/chunichart/internal/catalog"
	"git.lost.host/meutraa/chunichart/internal/fixture"
	"git.lost.host/meutraa/chunichart/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestDecode(t *testing.T) {
	h := (&Server{}).Handler()

	rec := post(t, h, "/decode/sus", fixture.MustGet("sample.sus"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Format string         `json:"format"`
		Title  string         `json:"title"`
		Notes  int            `json:"notes"`
		Kinds  map[string]int `json:"kinds"`
		Chart  struct {
			Notes []struct {
				Kind string `json:"kind"`
			} `json:"notes"`
		} `json:"chart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sus", body.Format)
	assert.Equal(t, "Test Song", body.Title)
	assert.Equal(t, 14, body.Notes)
	assert.Equal(t, 4, body.Kinds["TAP"])
	require.Len(t, body.Chart.Notes, 14)
	assert.Equal(t, "ADW", body.Chart.Notes[13].Kind)
}

func TestDecodeStatusCodes(t *testing.T) {
	h := (&Server{}).Handler()

	var statusTests = map[string]int{
		"/decode/c2s": http.StatusOK,
		"/decode/UGC": http.StatusOK,
		"/decode/bms": http.StatusBadRequest,
	}
	for path, status := range statusTests {
		assert.Equal(t, status, post(t, h, path, "").Code, path)
	}

	assert.Equal(t, http.StatusUnprocessableEntity, post(t, h, "/decode/ugc", "#0'0:q12").Code)

	req := httptest.NewRequest(http.MethodGet, "/decode/c2s", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDecodeSkipChildren(t *testing.T) {
	text := "#0'0:h24\n#480>s24\n"
	assert.Equal(t, http.StatusUnprocessableEntity, post(t, (&Server{}).Handler(), "/decode/ugc", text).Code)

	h := (&Server{Options: parser.Options{SkipChildren: true}}).Handler()
	assert.Equal(t, http.StatusOK, post(t, h, "/decode/ugc", text).Code)
}

func TestFormats(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/formats", nil)
	rec := httptest.NewRecorder()
	(&Server{}).Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["c2s","sus","ugc"]`, rec.Body.String())
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/decode/c2s", strings.NewReader(""))
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	(&Server{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCatalog(t *testing.T) {
	cat := &catalog.DefaultCatalog{}
	require.NoError(t, cat.Init(filepath.Join(t.TempDir(), "charts.db")))
	defer cat.Deinit()
	h := (&Server{Catalog: cat}).Handler()

	chart := fixture.MustGet("comprehensive.c2s")
	require.Equal(t, http.StatusOK, post(t, h, "/decode/c2s", chart).Code)

	req := httptest.NewRequest(http.MethodGet, "/charts?sum="+url.QueryEscape(parser.Sum(chart)), nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, 18, entries[0].Notes)
	assert.Equal(t, parser.C2S, entries[0].Format)
}

func TestChartsWithoutCatalog(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/charts?sum=x", nil)
	rec := httptest.NewRecorder()
	(&Server{}).Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
