package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func rangeFor(t *testing.T, query string) (from, to *time.Time, code int) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x?"+query, nil)
	from, to, ok := dateRange(c)
	if !ok {
		return nil, nil, w.Code
	}
	return from, to, http.StatusOK
}

func TestDateRange(t *testing.T) {
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		query string
		to    time.Time
	}{
		{"bare date covers the day", "to=2026-03-01", day.Add(24*time.Hour - time.Nanosecond)},
		{"slash date covers the day", "to=01/03/2026", day.Add(24*time.Hour - time.Nanosecond)},
		{"midnight instant is exact", "to=2026-03-01T00:00:00Z", day},
		{"offset instant in utc", "to=2026-03-01T07:00:00%2B07:00", day},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, to, code := rangeFor(t, tt.query)
			if code != http.StatusOK {
				t.Fatalf("code = %d", code)
			}
			if !to.Equal(tt.to) || to.Location() != time.UTC {
				t.Errorf("to = %v, want %v UTC", to, tt.to)
			}
		})
	}

	if _, _, code := rangeFor(t, "from=2026-03-02&to=2026-03-01"); code != http.StatusBadRequest {
		t.Errorf("inverted range: code = %d", code)
	}
	if _, _, code := rangeFor(t, "from=soon"); code != http.StatusBadRequest {
		t.Errorf("bad from: code = %d", code)
	}
}
