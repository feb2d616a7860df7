package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/models"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/parser"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/report"
	"github.com/ukaji3/attendsheet-go/pkg/attendsheet/source"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	// The Sheets client pulls in opencensus, whose view worker starts in init.
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

type memSelections map[int64]int

func (m memSelections) Get(_ context.Context, user int64) (int, bool, error) {
	w, ok := m[user]
	return w, ok, nil
}

func (m memSelections) Set(_ context.Context, user int64, week int) error {
	m[user] = week
	return nil
}

// twoWeekSheet starts on Saturday 01.02.2025; person 555 works weekdays.
func twoWeekSheet() *models.Grid {
	rows := make([][]models.Cell, 4)
	for i := range rows {
		rows[i] = make([]models.Cell, 4+14)
	}
	set := func(r, c int, v any) { rows[r][c] = parser.ParseValue(v) }
	set(1, 3, "февраль")
	for i := 0; i < 14; i++ {
		set(1, 4+i, i+1)
		set(2, 4+i, parser.Weekdays[i%7])
		if i%7 >= 2 {
			set(3, 4+i, 1)
		}
	}
	set(2, 1, "ID")
	set(3, 1, 555)
	set(3, 2, "Смирнова О.")
	return models.NewGrid("табель", rows)
}

type fixture struct {
	srv  *Server
	fail *atomic.Bool
	sel  memSelections
}

func newFixture(t *testing.T, load bool) fixture {
	t.Helper()
	var fail atomic.Bool
	src := source.Func(func(ctx context.Context) (*models.Grid, error) {
		if fail.Load() {
			return nil, source.ErrUnavailable
		}
		return twoWeekSheet(), nil
	})

	opts := attendsheet.DefaultOptions()
	opts.Year = 2025
	opts.Location = time.UTC
	opts.Now = func() time.Time { return time.Date(2025, time.February, 5, 9, 0, 0, 0, time.UTC) }
	tbl := attendsheet.NewTable(src, opts)
	if load {
		_, err := tbl.Load(context.Background())
		require.NoError(t, err)
	}

	sel := memSelections{}
	srv := New(tbl, report.New(tbl, sel), WithLogger(zaptest.NewLogger(t)))
	return fixture{srv: srv, fail: &fail, sel: sel}
}

func (f fixture) do(t *testing.T, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.srv.Handler().ServeHTTP(rec, req)

	var payload map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	}
	return rec, payload
}

func TestHealth(t *testing.T) {
	f := newFixture(t, false)

	rec, body := f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["loaded"])

	rec, body = f.do(t, http.MethodPost, "/reload", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["weeks"])

	_, body = f.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, true, body["loaded"])
}

func TestNotLoaded(t *testing.T) {
	f := newFixture(t, false)

	for _, target := range []string{"/weeks", "/weeks/current", "/weeks/month", "/people/555", "/people/555/days", "/people/555/salary"} {
		rec, body := f.do(t, http.MethodGet, target, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		assert.Equal(t, "not_loaded", body["code"], target)
	}
}

func TestWeeks(t *testing.T) {
	f := newFixture(t, true)

	rec, _ := f.do(t, http.MethodGet, "/weeks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var weeks []attendsheet.WeekSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &weeks))
	require.Len(t, weeks, 2)
	assert.Equal(t, "08.02.2025–14.02.2025", weeks[1].Label)

	rec, body := f.do(t, http.MethodGet, "/weeks/current", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["global"])
	assert.Equal(t, "01.02.2025–07.02.2025", body["label"])
}

func TestDaysAndSalary(t *testing.T) {
	f := newFixture(t, true)

	rec, body := f.do(t, http.MethodGet, "/people/555/days?week=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(5), body["days"])

	rec, body = f.do(t, http.MethodGet, "/people/555/salary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	pay := body["pay"].(map[string]any)
	assert.Equal(t, "15000", pay["amount"])
}

func TestErrorStatuses(t *testing.T) {
	f := newFixture(t, true)

	tests := []struct {
		target string
		status int
		code   string
	}{
		{"/people/123456/days", http.StatusNotFound, "identifier_not_found"},
		{"/people/555/days?week=3", http.StatusBadRequest, "week_out_of_range"},
		{"/people/555/days?week=x", http.StatusBadRequest, "bad_request"},
		{"/people/abc", http.StatusBadRequest, "bad_request"},
		{"/people/123456", http.StatusNotFound, "identifier_not_found"},
	}
	for _, tt := range tests {
		rec, body := f.do(t, http.MethodGet, tt.target, "")
		assert.Equal(t, tt.status, rec.Code, tt.target)
		assert.Equal(t, tt.code, body["code"], tt.target)
	}
}

func TestSelection(t *testing.T) {
	f := newFixture(t, true)

	rec, body := f.do(t, http.MethodPut, "/people/555/selection", `{"local_week": 2}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["global"])
	assert.Equal(t, 2, f.sel[555])

	rec, _ = f.do(t, http.MethodPut, "/people/555/selection", `{"local_week": 0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.sel[555])

	rec, body = f.do(t, http.MethodPut, "/people/555/selection", `{"local_week": 7}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "week_out_of_range", body["code"])

	rec, _ = f.do(t, http.MethodPut, "/people/555/selection", `nope`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	f.sel[555] = 2
	rec, body = f.do(t, http.MethodPut, "/people/555/selection", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["local"])
	assert.Equal(t, 1, f.sel[555])
}

func TestFailedReloadKeepsServing(t *testing.T) {
	f := newFixture(t, true)
	f.fail.Store(true)

	rec, body := f.do(t, http.MethodPost, "/reload", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "load_failed", body["code"])

	rec, _ = f.do(t, http.MethodGet, "/people/555/days?week=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	f := newFixture(t, true)

	rec, _ := f.do(t, http.MethodGet, "/reload", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestServeLifecycle(t *testing.T) {
	f := newFixture(t, true)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Serve(ctx, "127.0.0.1:0") }()

	require.Eventually(t, func() bool { return f.srv.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + f.srv.Addr() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.Empty(t, f.srv.Addr())
}
