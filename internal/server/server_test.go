package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/schedule-viewer/internal/schedule"
	"github.com/username/schedule-viewer/internal/viewer"
)

type stubSource struct {
	records     []schedule.Record
	holidays    map[string]struct{}
	scheduleErr error
}

func (s *stubSource) FetchScheduleRange(ctx context.Context, start, end string) ([]schedule.Record, error) {
	if s.scheduleErr != nil {
		return nil, s.scheduleErr
	}
	return s.records, nil
}

func (s *stubSource) FetchHolidays(ctx context.Context, start, end string) (map[string]struct{}, error) {
	return s.holidays, nil
}

func newTestServer(source *stubSource) *Server {
	v := viewer.New(source, zap.NewNop())
	return New(v, zap.NewNop())
}

func doRequest(s *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func TestIndexServesEmbeddedPage(t *testing.T) {
	s := newTestServer(&stubSource{})

	rec := doRequest(s, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "근무표")
}

func TestHealthz(t *testing.T) {
	s := newTestServer(&stubSource{})

	rec := doRequest(s, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFetchReturnsGrid(t *testing.T) {
	source := &stubSource{
		records: []schedule.Record{
			{Position: "기관사", Name: "Kim", Date: "2024-06-01", Turn: "31"},
			{Position: "기관사", Name: "Kim", Date: "2024-06-02", Turn: "휴"},
		},
		holidays: map[string]struct{}{"2024-06-06": {}},
	}
	s := newTestServer(source)

	// Future month relative to any test run date, so validation passes
	month := time.Now().AddDate(0, 2, 0).Format("2006-01")
	rec := doRequest(s, http.MethodPost, "/api/fetch", `{"month":"`+month+`"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"기관사", "차장"}, resp.Tabs)
	assert.Equal(t, []string{"Kim"}, resp.Names)
	assert.NotEmpty(t, resp.Dates)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Rows, 1)
	assert.Len(t, resp.Rows[0].Cells, len(resp.Dates))
}

func TestFetchInitialRangeWhenMonthEmpty(t *testing.T) {
	source := &stubSource{holidays: map[string]struct{}{}}
	s := newTestServer(source)

	rec := doRequest(s, http.MethodPost, "/api/fetch", `{"month":""}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// 30-day inclusive default range
	assert.Len(t, resp.Dates, 31)
	assert.Equal(t, "표시할 데이터가 없습니다. 조회를 눌러주세요.", resp.Message)
}

func TestFetchPastMonthIsUnprocessable(t *testing.T) {
	s := newTestServer(&stubSource{})

	rec := doRequest(s, http.MethodPost, "/api/fetch", `{"month":"2020-01"}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "이미 지난 월입니다")
}

func TestFetchBackendFailureIsBadGateway(t *testing.T) {
	source := &stubSource{scheduleErr: errors.New("backend returned status 500: boom")}
	s := newTestServer(source)

	rec := doRequest(s, http.MethodPost, "/api/fetch", `{"month":""}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var resp gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "boom")
	assert.Empty(t, resp.Names)
}

func TestGridFiltersWithoutRefetch(t *testing.T) {
	source := &stubSource{
		records: []schedule.Record{
			{Position: "기관사", Name: "Kim", Date: "2024-06-01", Turn: "31"},
			{Position: "차장", Name: "Park", Date: "2024-06-01", Turn: "12"},
		},
		holidays: map[string]struct{}{},
	}
	s := newTestServer(source)

	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/api/fetch", `{"month":""}`).Code)

	// Swap the backend out from under the server: /api/grid must not notice
	source.scheduleErr = errors.New("must not be called")

	rec := doRequest(s, http.MethodGet, "/api/grid?tab=차장", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Park"}, resp.Names)
	assert.Empty(t, resp.Error)

	rec = doRequest(s, http.MethodGet, "/api/grid?tab=차장&search=zzz", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "검색 결과가 없습니다.", resp.Message)
}

func TestGridDefaultsToDriverTab(t *testing.T) {
	source := &stubSource{
		records: []schedule.Record{
			{Position: "기관사", Name: "Kim", Date: "2024-06-01", Turn: "31"},
		},
		holidays: map[string]struct{}{},
	}
	s := newTestServer(source)
	require.Equal(t, http.StatusOK, doRequest(s, http.MethodPost, "/api/fetch", `{"month":""}`).Code)

	rec := doRequest(s, http.MethodGet, "/api/grid", "")

	var resp gridResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Kim"}, resp.Names)
}
