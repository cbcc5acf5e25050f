package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"meditrack/internal/anomaly"
)

// predict forwards a vitals reading to the anomaly detection service and
// returns its verdict. 503 when no service is configured.
func (s *Server) predict(c echo.Context) error {
	if s.anomaly == nil || !s.anomaly.Enabled() {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "anomaly detection is not configured")
	}

	var reading anomaly.Reading
	if err := c.Bind(&reading); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	prediction, err := s.anomaly.Predict(c.Request().Context(), reading)
	if err != nil {
		s.log.Error().Err(err).Msg("anomaly prediction failed")
		return echo.NewHTTPError(http.StatusBadGateway, "anomaly service unavailable")
	}
	return c.JSON(http.StatusOK, prediction)
}
