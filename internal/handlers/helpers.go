package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-catalog/internal/httperr"
	"github.com/BruksfildServices01/service-catalog/internal/httpresp"
	"github.com/BruksfildServices01/service-catalog/internal/middleware"
)

// Observer counts catalog operations. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveOperation(entity, operation string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveOperation(string, string, error) {}

func observerOrNop(obs Observer) Observer {
	if obs == nil {
		return nopObserver{}
	}
	return obs
}

func tenantID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextTenantID).(uint)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return false
	}
	return true
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, dst any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, dst)
}

func respond(c *gin.Context, err error, status int, extra gin.H) {
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	httpresp.Success(c, status, extra)
}

// --------- query parsing ---------

type queryError struct{ param string }

func (e queryError) Error() string { return "invalid " + e.param }

func queryUint(c *gin.Context, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, queryError{key}
	}
	id := uint(v)
	return &id, nil
}

func queryBool(c *gin.Context, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, queryError{key}
	}
	return &v, nil
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, queryError{key}
	}
	return &v, nil
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, queryError{key}
	}
	return v, nil
}

func badQuery(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_query", err.Error())
}

func writeCreated(c *gin.Context, err error, extra gin.H) {
	respond(c, err, http.StatusCreated, extra)
}

func writeOK(c *gin.Context, err error, extra gin.H) {
	respond(c, err, http.StatusOK, extra)
}
