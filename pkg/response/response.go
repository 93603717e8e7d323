package response

import "errors"

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error Codes
type ErrCode string

var (
	FAILED_REQUEST  ErrCode = "REQUEST_FAILED"
	BAD_REQUEST     ErrCode = "FAILED_TO_DECODE"
	INVALID_REQUEST ErrCode = "INVALID_REQUEST"
	NOT_FOUND       ErrCode = "NOT_FOUND"
	UNKNOWN_SERVICE ErrCode = "UNKNOWN_SERVICE"
)

var (
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidID      = errors.New("invalid id")
	ErrNotFound       = errors.New("resource not found")
	ErrUnknownService = errors.New("unknown service")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}
