package schedule

import (
	"sort"
	"strings"

	"github.com/username/schedule-viewer/pkg/dateutil"
)

// Record is one shift-turn assignment row as returned by the backend.
// Date is kept as raw backend text; rows with unusable dates still count
// toward the name list but contribute no grid cell.
type Record struct {
	Position string `json:"staff_position"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Turn     string `json:"turn"`
}

// Grid is the name × date pivot of a record set. Names are sorted ascending
// and deduplicated; Cells maps name → yyyy-MM-dd → turn code.
type Grid struct {
	Names []string
	Cells map[string]map[string]string
}

// Turn returns the cell value for (name, date), or "-" when no assignment
// exists.
func (g Grid) Turn(name, date string) string {
	if turn, ok := g.Cells[name][date]; ok {
		return turn
	}
	return "-"
}

// BuildGrid filters records by position (trimmed exact match) and name
// search (trimmed, case-insensitive substring; empty matches everything),
// then groups them by name. For duplicate (name, date) pairs the last record
// wins.
func BuildGrid(records []Record, position, search string) Grid {
	trimmedPosition := strings.TrimSpace(position)
	query := strings.ToLower(strings.TrimSpace(search))

	cells := make(map[string]map[string]string)
	for _, record := range records {
		if strings.TrimSpace(record.Position) != trimmedPosition {
			continue
		}
		if !strings.Contains(strings.ToLower(record.Name), query) {
			continue
		}

		row, ok := cells[record.Name]
		if !ok {
			row = make(map[string]string)
			cells[record.Name] = row
		}

		// A filtered record always registers its name; only rows with a
		// parseable date get a cell.
		date, err := dateutil.ParseDate(record.Date)
		if err != nil {
			continue
		}
		row[dateutil.FormatDate(date)] = record.Turn
	}

	names := make([]string, 0, len(cells))
	for name := range cells {
		names = append(names, name)
	}
	sort.Strings(names)

	return Grid{Names: names, Cells: cells}
}
