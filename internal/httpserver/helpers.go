package httpserver

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sursrinu/artandcraft-platform/internal/apperr"
	"github.com/sursrinu/artandcraft-platform/internal/util"
)

const dateLayout = "2006-01-02"

func idParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Validation(apperr.CodeValidation, "invalid id")
	}
	return uint(id), nil
}

func pageParams(c echo.Context) (page, offset, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("per_page"))
	if page < 1 {
		page = 1
	}
	offset, limit = util.Calculate(page, size)
	return page, offset, limit
}

// parseDateRange reads start/end as YYYY-MM-DD; end is inclusive through the
// end of that day.
func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, apperr.Validation(apperr.CodeValidation, "start date and end date are required")
	}
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation(apperr.CodeValidation, "invalid start date, want YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation(apperr.CodeValidation, "invalid end date, want YYYY-MM-DD")
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, nil
}
