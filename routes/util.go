package routes

import (
	"errors"
	"time"

	"github.com/fulltechdev/kiame-hotel/services"
	"github.com/fulltechdev/kiame-hotel/utils"

	"github.com/kataras/iris/v12"
)

const dateLayout = "2006-01-02"

// parseDate parses a user-entered calendar date. The engine treats all dates
// as timezone-naive.
func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

// handleBookingError maps the engine's error taxonomy onto HTTP statuses.
// Unknown errors are infrastructure failures and stay opaque to the client.
func handleBookingError(err error, ctx iris.Context) {
	switch {
	case errors.Is(err, services.ErrInvalidRange):
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_range", "check-out must be after check-in")
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "Selected dates are no longer available")
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(ctx, iris.StatusForbidden, "forbidden", "You may not perform this action")
	case errors.Is(err, services.ErrIllegalTransition):
		utils.JSONError(ctx, iris.StatusConflict, "illegal_transition", "Status change not permitted from current state")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(ctx, iris.StatusNotFound, "not_found", "Resource not found")
	default:
		utils.CreateInternalServerError(ctx)
	}
}
