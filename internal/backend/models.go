package backend

import (
	"encoding/json"

	"github.com/username/schedule-viewer/pkg/dateutil"
)

// FlexibleDate handles the backend's inconsistent date columns.
// The stored procedure returns some date fields as plain "2006-01-02" strings
// and others as full timestamps, depending on the column type in the hosted
// database. Parseable values are normalized to yyyy-MM-dd on receipt; raw
// text is kept otherwise so the grid layer can apply its own exclusion rule.
type FlexibleDate string

// UnmarshalJSON implements json.Unmarshaler for FlexibleDate
func (d *FlexibleDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if t, err := dateutil.ParseDate(s); err == nil {
		*d = FlexibleDate(dateutil.FormatDate(t))
		return nil
	}

	*d = FlexibleDate(s)
	return nil
}

// String returns string representation
func (d FlexibleDate) String() string {
	return string(d)
}

// scheduleRow is one row from the get_schedule_by_range procedure
type scheduleRow struct {
	StaffPosition string       `json:"staff_position"`
	Name          string       `json:"name"`
	Date          FlexibleDate `json:"date"`
	Turn          string       `json:"turn"`
}

// holidayRow is one row from the holiday reference table
type holidayRow struct {
	Locdate FlexibleDate `json:"locdate"`
}

// scheduleRangeRequest is the stored-procedure argument payload
type scheduleRangeRequest struct {
	StartDate string `json:"p_start_date"`
	EndDate   string `json:"p_end_date"`
}
