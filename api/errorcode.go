package api

import "github.com/bitmark-inc/ncp-map/aggregator"

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1010: "invalid parameters",

		1200: aggregator.ErrDayNotCollected.Error(),
	}

	errorInternalServer    = errorJSON(999)
	errorInvalidParameters = errorJSON(1010)
	errorDayNotCollected   = errorJSON(1200)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
