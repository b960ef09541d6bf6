package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/username/schedule-viewer/internal/schedule"
	"github.com/username/schedule-viewer/internal/viewer"
)

// DefaultTab is the role tab shown before the user picks one
const DefaultTab = "기관사"

// Tabs are the two fixed role categories of the roster
var Tabs = []string{"기관사", "차장"}

type fetchRequest struct {
	Month  string `json:"month"`
	Tab    string `json:"tab"`
	Search string `json:"search"`
}

type dateHeader struct {
	Date    string `json:"date"`
	Label   string `json:"label"` // MM-dd, what the column header shows
	DayName string `json:"dayName"`
	Class   string `json:"class"`
}

type gridCell struct {
	Turn  string `json:"turn"`
	Class string `json:"class"`
}

type gridRow struct {
	Name  string     `json:"name"`
	Cells []gridCell `json:"cells"` // aligned with the dates array
}

type gridResponse struct {
	Tabs    []string     `json:"tabs"`
	Names   []string     `json:"names"`
	Dates   []dateHeader `json:"dates"`
	Rows    []gridRow    `json:"rows"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// handleFetch runs the remote fetch path: empty month loads the initial
// 30-day range, anything else goes through month validation. The response
// carries the freshly recomputed grid so the page needs no second request.
func (s *Server) handleFetch(c echo.Context) error {
	var req fetchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Tab == "" {
		req.Tab = DefaultTab
	}

	ctx := c.Request().Context()

	var err error
	if req.Month == "" {
		err = s.viewer.FetchInitial(ctx)
	} else {
		err = s.viewer.FetchMonth(ctx, req.Month)
	}

	snap := s.viewer.Snapshot(req.Tab, req.Search)
	resp := buildGridResponse(snap)

	switch {
	case errors.Is(err, viewer.ErrPastMonth), errors.Is(err, viewer.ErrMonthRequired):
		return c.JSON(http.StatusUnprocessableEntity, resp)
	case err != nil:
		return c.JSON(http.StatusBadGateway, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// handleGrid recomputes the grid for a tab/search selection without touching
// the backend
func (s *Server) handleGrid(c echo.Context) error {
	tab := c.QueryParam("tab")
	if tab == "" {
		tab = DefaultTab
	}
	search := c.QueryParam("search")

	snap := s.viewer.Snapshot(tab, search)
	return c.JSON(http.StatusOK, buildGridResponse(snap))
}

// buildGridResponse flattens a viewer snapshot into the wire shape, applying
// the header and cell styling rules per date
func buildGridResponse(snap viewer.Snapshot) gridResponse {
	resp := gridResponse{
		Tabs:    Tabs,
		Names:   snap.Names,
		Dates:   make([]dateHeader, 0, len(snap.Dates)),
		Rows:    make([]gridRow, 0, len(snap.Names)),
		Message: snap.Message,
		Error:   snap.Error,
	}

	for _, date := range snap.Dates {
		label := date
		if len(date) > 5 {
			label = date[5:]
		}
		resp.Dates = append(resp.Dates, dateHeader{
			Date:    date,
			Label:   label,
			DayName: schedule.DayName(date),
			Class:   schedule.DayColorClass(date, snap.Holidays),
		})
	}

	grid := schedule.Grid{Names: snap.Names, Cells: snap.Cells}
	for _, name := range snap.Names {
		row := gridRow{Name: name, Cells: make([]gridCell, 0, len(snap.Dates))}
		for _, date := range snap.Dates {
			turn := grid.Turn(name, date)
			row.Cells = append(row.Cells, gridCell{
				Turn:  turn,
				Class: schedule.TurnColorClass(turn, date, snap.Holidays),
			})
		}
		resp.Rows = append(resp.Rows, row)
	}

	return resp
}
