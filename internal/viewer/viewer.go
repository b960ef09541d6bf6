package viewer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/username/schedule-viewer/internal/backend"
	"github.com/username/schedule-viewer/internal/schedule"
	"github.com/username/schedule-viewer/pkg/dateutil"
)

// User-facing messages (the roster audience is Korean-speaking, matching the
// turn codes themselves)
const (
	msgFetchFailed   = "데이터 로딩 실패"
	msgMonthRequired = "조회할 월을 선택해주세요."
	msgNoData        = "표시할 데이터가 없습니다. 조회를 눌러주세요."
	msgNoSearchHits  = "검색 결과가 없습니다."
)

// Validation-failure sentinels. These never reach the backend.
var (
	ErrPastMonth     = errors.New("selected month is entirely in the past")
	ErrMonthRequired = errors.New("no month selected")
)

// Viewer owns all schedule state and is the only writer to it. It is the Go
// rendition of the original single-page state: one mutex stands in for the
// UI event loop, fetches commit their triple atomically, and tab/search
// reads never touch the network.
type Viewer struct {
	source backend.Source
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	records  []schedule.Record
	dates    []string
	holidays map[string]struct{}
	errMsg   string
	busy     bool
}

// Snapshot is one consistent view of the grid for a (tab, search) selection
type Snapshot struct {
	Names    []string
	Dates    []string
	Cells    map[string]map[string]string
	Holidays map[string]struct{}
	Error    string
	Busy     bool
	Message  string // empty-state hint when there is nothing to render
}

// New creates a Viewer backed by the given data source
func New(source backend.Source, logger *zap.Logger) *Viewer {
	return &Viewer{
		source:   source,
		logger:   logger,
		now:      time.Now,
		holidays: make(map[string]struct{}),
	}
}

// FetchInitial loads the default range: today through today + 30 days
func (v *Viewer) FetchInitial(ctx context.Context) error {
	start, end := schedule.InitialRange(v.now())
	return v.fetch(ctx, start, end)
}

// FetchMonth validates the month selection and, if it resolves to a range,
// fetches it. A month entirely in the past is a validation failure: no
// network call is made and prior records are cleared.
func (v *Viewer) FetchMonth(ctx context.Context, month string) error {
	if month == "" {
		v.setValidationError(msgMonthRequired)
		return ErrMonthRequired
	}

	start, end, ok := schedule.MonthRange(month, v.now())
	if !ok {
		v.setValidationError(fmt.Sprintf("%s월은 이미 지난 월입니다.", month))
		v.logger.Info("Month rejected as past",
			zap.String("month", month),
			zap.String("today", dateutil.FormatDate(v.now())))
		return ErrPastMonth
	}

	return v.fetch(ctx, start, end)
}

// fetch issues the schedule and holiday queries concurrently, waits for both,
// then commits either an error state or the full records/axis/holidays triple.
// Overlapping fetches are not cancelled; the last one to settle wins.
func (v *Viewer) fetch(ctx context.Context, start, end string) error {
	fetchID := uuid.NewString()

	v.mu.Lock()
	v.busy = true
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		v.busy = false
		v.mu.Unlock()
	}()

	v.logger.Info("Fetch started",
		zap.String("fetch_id", fetchID),
		zap.String("start", start),
		zap.String("end", end))

	var (
		records  []schedule.Record
		holidays map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = v.source.FetchScheduleRange(gctx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		holidays, err = v.source.FetchHolidays(gctx, start, end)
		return err
	})

	if err := g.Wait(); err != nil {
		msg := err.Error()
		if msg == "" {
			msg = msgFetchFailed
		}

		v.mu.Lock()
		v.records = nil
		v.errMsg = msg
		v.mu.Unlock()

		v.logger.Error("Fetch failed",
			zap.String("fetch_id", fetchID),
			zap.Error(err))
		return err
	}

	dates, err := schedule.DateRange(start, end)
	if err != nil {
		v.mu.Lock()
		v.records = nil
		v.errMsg = msgFetchFailed
		v.mu.Unlock()

		v.logger.Error("Date axis construction failed",
			zap.String("fetch_id", fetchID),
			zap.Error(err))
		return err
	}

	if holidays == nil {
		holidays = make(map[string]struct{})
	}

	v.mu.Lock()
	v.records = records
	v.dates = dates
	v.holidays = holidays
	v.errMsg = ""
	v.mu.Unlock()

	v.logger.Info("Fetch completed",
		zap.String("fetch_id", fetchID),
		zap.Int("rows", len(records)),
		zap.Int("days", len(dates)),
		zap.Int("holidays", len(holidays)))

	return nil
}

// setValidationError records an inline error and drops stale records so the
// grid never shows data that contradicts the rejected selection
func (v *Viewer) setValidationError(msg string) {
	v.mu.Lock()
	v.records = nil
	v.errMsg = msg
	v.mu.Unlock()
}

// Snapshot recomputes the grid for the given role tab and name search. This
// is a pure local operation over the last committed fetch.
func (v *Viewer) Snapshot(tab, search string) Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	grid := schedule.BuildGrid(v.records, tab, search)

	snap := Snapshot{
		Names:    grid.Names,
		Dates:    v.dates,
		Cells:    grid.Cells,
		Holidays: v.holidays,
		Error:    v.errMsg,
		Busy:     v.busy,
	}

	if snap.Busy || snap.Error != "" {
		return snap
	}
	switch {
	case len(v.records) == 0:
		snap.Message = msgNoData
	case len(grid.Names) == 0 && search != "":
		snap.Message = msgNoSearchHits
	case len(grid.Names) == 0:
		snap.Message = fmt.Sprintf("%q 탭의 데이터가 없습니다.", tab)
	}

	return snap
}
