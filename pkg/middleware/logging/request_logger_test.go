package loggingmw

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/magazin/pkg/logging"
)

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	e := echo.New()
	e.Use(RequestLogger(logging.NewWithWriter(&buf, "info")))

	var ctxLoggerSet bool
	e.GET("/product/:id", func(c echo.Context) error {
		ctxLoggerSet = logging.FromContext(c.Request().Context()) != nil
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	})

	req := httptest.NewRequest(http.MethodGet, "/product/9", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, ctxLoggerSet)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "/product/:id", line["path"])
	assert.Equal(t, "rid-1", line["request_id"])
	assert.EqualValues(t, http.StatusNotFound, line["status"])
}
