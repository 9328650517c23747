package controllers

import (
	"errors"
	"strconv"
	"time"

	"dashboard/pkg/resp"
	"dashboard/services"
	"dashboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fail maps service errors to the response envelope. Unexpected errors are logged.
func fail(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		resp.NotFound(c, err.Error())
	case errors.Is(err, services.ErrValidation):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInvalidTransition):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		resp.Unauthorized(c, "invalid credentials")
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		resp.ServerError(c, err)
	}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// queryUint reads an optional unsigned query value; missing gives 0.
func queryUint(c *gin.Context, name string) (uint, bool) {
	v := c.Query(name)
	if v == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) int {
	n, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return n
}

// dateRange reads ?from= and ?to=. A bare "to" date covers the whole day;
// a "to" with a clock time is taken as given.
func dateRange(c *gin.Context) (from, to *time.Time, ok bool) {
	from, err := utils.ParseDateFlexible(c.Query("from"))
	if err != nil {
		resp.BadRequest(c, "invalid from")
		return nil, nil, false
	}
	to, dateOnly, err := utils.ParseDateBound(c.Query("to"))
	if err != nil {
		resp.BadRequest(c, "invalid to")
		return nil, nil, false
	}
	if from != nil {
		f := from.UTC()
		from = &f
	}
	if to != nil {
		end := *to
		if dateOnly {
			end = utils.EndOfDay(end)
		}
		end = end.UTC()
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		resp.BadRequest(c, "to is before from")
		return nil, nil, false
	}
	return from, to, true
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
