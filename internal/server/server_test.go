package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-jobdemand-scraper/internal/logging"
	"go-jobdemand-scraper/internal/scraper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubScraper struct {
	outcomes []scraper.Outcome
	err      error
	panics   bool
	// entered, when set, makes ScrapeAll block until ctx is done.
	entered chan struct{}

	gotSkills []string
}

func (s *stubScraper) ScrapeAll(ctx context.Context, skills []string) ([]scraper.Outcome, error) {
	if s.panics {
		panic("boom")
	}
	s.gotSkills = skills
	if s.entered != nil {
		close(s.entered)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return s.outcomes, s.err
}

func (s *stubScraper) Portals() []scraper.Portal {
	return []scraper.Portal{{
		Name:              "LinkedIn",
		Description:       "Red profesional",
		SearchURL:         "https://www.linkedin.com/jobs/search/?keywords={query}",
		SettleDelay:       6 * time.Second,
		NavigationTimeout: 45 * time.Second,
		WaitUntil:         "networkidle",
		Estimate:          scraper.Range{Min: 10000, Max: 15000},
	}}
}

func init() {
	gin.SetMode(gin.TestMode)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestScrapeAll_OK(t *testing.T) {
	stub := &stubScraper{outcomes: []scraper.Outcome{
		{Name: "LinkedIn", Jobs: 15234, URL: "https://www.linkedin.com/jobs/search/?keywords=python%20django", Description: "d", Status: scraper.StatusLive},
		{Name: "Indeed", Jobs: 9876, URL: "https://www.indeed.com/jobs?q=python%20django", Description: "d", Status: scraper.StatusLive},
	}}
	r := New(stub, nil).Router()

	w := do(t, r, http.MethodPost, "/api/scrape/all", `{"skills":["python","django"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"python", "django"}, stub.gotSkills)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "LinkedIn", got[0]["name"])
	assert.EqualValues(t, 15234, got[0]["jobs"])
	assert.Equal(t, "live", got[0]["status"])
	assert.NotContains(t, got[0], "estimated")
	assert.NotContains(t, got[0], "error")
}

func TestScrapeAll_EmptySkillsAccepted(t *testing.T) {
	stub := &stubScraper{outcomes: []scraper.Outcome{
		{Name: "LinkedIn", Jobs: 12001, URL: "https://www.linkedin.com/jobs/search/?keywords=", Status: scraper.StatusEstimated, Estimated: true},
	}}

	w := do(t, New(stub, nil).Router(), http.MethodPost, "/api/scrape/all", `{"skills":[]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{}, stub.gotSkills)
	assert.Contains(t, w.Body.String(), `"estimated":true`)
}

func TestScrapeAll_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing skills", `{}`},
		{"null skills", `{"skills":null}`},
		{"string instead of array", `{"skills":"python"}`},
		{"numbers in array", `{"skills":[1,2]}`},
		{"not json", `skills=python`},
		{"empty body", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubScraper{}
			w := do(t, New(stub, nil).Router(), http.MethodPost, "/api/scrape/all", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, stub.gotSkills, "orchestrator must not run")

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, msgSkillsRequired, resp.Error)
			assert.NotEmpty(t, resp.Details)
		})
	}
}

func TestScrapeAll_ValidationMessageUsesJSONName(t *testing.T) {
	w := do(t, New(&stubScraper{}, nil).Router(), http.MethodPost, "/api/scrape/all", `{}`)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"skills is a required field"}, resp.Details)
}

func TestScrapeAll_InternalError(t *testing.T) {
	stub := &stubScraper{err: scraper.ErrNoEstimates}
	w := do(t, New(stub, nil).Router(), http.MethodPost, "/api/scrape/all", `{"skills":["go"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"no portal has a fallback estimate range"}`, w.Body.String())
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(scraper.InvalidInput("skills: %s", "missing")))
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("bind: %w", scraper.InvalidInput("bad"))))
	assert.Equal(t, http.StatusInternalServerError, statusFor(scraper.ErrNoEstimates))
	assert.Equal(t, http.StatusInternalServerError, statusFor(&scraper.Error{Kind: scraper.KindBrowserLaunch}))
}

func TestNewHTTPServer_ShutdownCancelsInFlightScrape(t *testing.T) {
	stub := &stubScraper{entered: make(chan struct{})}
	srv := New(stub, nil).NewHTTPServer("127.0.0.1:0")

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()

	codes := make(chan int, 1)
	go func() {
		resp, err := http.Post("http://"+ln.Addr().String()+"/api/scrape/all", "application/json", strings.NewReader(`{"skills":["go"]}`))
		if err != nil {
			codes <- 0
			return
		}
		resp.Body.Close()
		codes <- resp.StatusCode
	}()

	select {
	case <-stub.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("scrape never started")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, srv.Shutdown(ctx), "drain must not wait for the deadline")
	assert.Less(t, time.Since(start), time.Second)

	select {
	case code := <-codes:
		assert.Equal(t, http.StatusInternalServerError, code)
	case <-time.After(2 * time.Second):
		t.Fatal("in-flight request never answered")
	}
}

func TestScrapeAll_PanicRecovered(t *testing.T) {
	w := do(t, New(&stubScraper{panics: true}, nil).Router(), http.MethodPost, "/api/scrape/all", `{"skills":["go"]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestListPortals(t *testing.T) {
	w := do(t, New(&stubScraper{}, nil).Router(), http.MethodGet, "/api/portals", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.JSONEq(t, `[{
		"name": "LinkedIn",
		"description": "Red profesional",
		"search_url": "https://www.linkedin.com/jobs/search/?keywords={query}",
		"settle_delay": "6s",
		"navigation_timeout": "45s",
		"wait_until": "networkidle",
		"estimate": {"min": 10000, "max": 15000}
	}]`, w.Body.String())
}

func TestHealth(t *testing.T) {
	w := do(t, New(&stubScraper{}, nil).Router(), http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
}

func TestRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := New(&stubScraper{}, logging.FromZap(zap.New(core))).Router()

	w := do(t, r, http.MethodGet, "/", "")
	id := w.Header().Get(headerRequestID)
	_, err := uuid.Parse(id)
	require.NoError(t, err, "generated id is a uuid")

	entries := logs.FilterMessage("http").All()
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ContextMap()["request_id"])
	assert.EqualValues(t, http.StatusOK, entries[0].ContextMap()["status"])

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerRequestID, "caller-supplied")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "caller-supplied", w.Header().Get(headerRequestID))
}
