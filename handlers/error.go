package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"wayfindr-map/store"
	"wayfindr-map/utils"
)

// HandleStoreError converts a store error into the matching HTTP response.
// Each error kind has a fixed status so clients can react without parsing
// messages. A PersistenceFailure means the in-memory mutation IS applied and
// only the durable mirror lagged; the 500 carries that distinction in its
// code so callers know to re-read rather than retry the write.
func HandleStoreError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	status := http.StatusInternalServerError
	switch {
	case store.IsUnknownFloor(err), store.IsNotFound(err):
		status = http.StatusNotFound
	case store.IsDuplicateID(err), store.IsZoneExpired(err):
		status = http.StatusConflict
	case store.IsDanglingConnection(err), store.IsInvalidGeometry(err):
		status = http.StatusBadRequest
	}

	return c.JSON(status, utils.ErrorResponseWithCode(err.Error(), store.ErrorCode(err)))
}

// NewHTTPErrorHandler returns the central error handler for the echo
// application. Handlers normally respond themselves via HandleStoreError;
// this catches binding failures, echo's own routing errors, and anything
// that escaped.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	errorLogger := logger.With("component", "error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if httpErr, ok := err.(*echo.HTTPError); ok {
			message := http.StatusText(httpErr.Code)
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
			_ = c.JSON(httpErr.Code, utils.ErrorResponse(message))
			return
		}

		errorLogger.Error("Unhandled error occurred",
			"path", c.Request().URL.Path, slog.Any("error", err))
		_ = c.JSON(http.StatusInternalServerError,
			utils.ErrorResponse("An unexpected internal error occurred."))
	}
}
