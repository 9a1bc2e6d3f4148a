package transport

import (
	"errors"
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/utils"

	"go.uber.org/zap"
)

const genericErrorMessage = "something went wrong, please try again later"

var errInvalidBody = errors.New("invalid JSON payload")

// writeServiceError maps domain errors to a status code. Anything it does not
// recognise is logged and answered with a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, method string, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("layer", "transport"),
			zap.String("method", method),
			zap.Error(err),
		)
		utils.WriteJSONError(w, genericErrorMessage, code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrConcurrentUpdate):
		return http.StatusConflict
	case errors.Is(err, errInvalidBody), order.IsValidation(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
