package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// Error taxonomy shared by gateways, the aggregator and the HTTP layer.
var (
	ErrMissingParameter    = errors.New("missing required parameter")
	ErrNotFound            = errors.New("place not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrAuthFailure         = errors.New("system error, please retry")
	ErrInternal            = errors.New("internal error")
)

// Messages shown to the client. The client is Thai-first, so these follow
// the wording it already displays.
const (
	MsgMissingQuery     = "กรุณาระบุชื่อสถานที่"
	MsgMissingPlanField = "กรุณาระบุข้อมูลที่จำเป็น: จุดเริ่มต้น, ปลายทาง, และงบประมาณ"
	MsgNotFound         = "ไม่พบสถานที่"
	MsgSystemError      = "ระบบขัดข้อง กรุณาลองใหม่ภายหลัง"
	MsgInternalError    = "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่ภายหลัง"
)

// ClientError carries the message to expose alongside a taxonomy sentinel.
type ClientError struct {
	Kind    error
	Message string
}

func (e *ClientError) Error() string { return e.Message }

func (e *ClientError) Unwrap() error { return e.Kind }

func MissingParameter(message string) error {
	return &ClientError{Kind: ErrMissingParameter, Message: message}
}

func NotFound(message string) error {
	return &ClientError{Kind: ErrNotFound, Message: message}
}

// StatusFromError maps an error to the HTTP status and the message returned to
// the caller. Internal details never reach the response body.
func StatusFromError(err error) (int, string) {
	var ce *ClientError
	message := ""
	if errors.As(err, &ce) {
		message = ce.Message
	}

	switch {
	case errors.Is(err, ErrMissingParameter):
		if message == "" {
			message = MsgMissingQuery
		}
		return http.StatusBadRequest, message
	case errors.Is(err, ErrNotFound):
		if message == "" {
			message = MsgNotFound
		}
		return http.StatusNotFound, message
	case errors.Is(err, ErrAuthFailure):
		return http.StatusInternalServerError, MsgSystemError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, MsgSystemError
	default:
		return http.StatusInternalServerError, MsgInternalError
	}
}

// HandleError logs err and writes the mapped JSON error response.
func HandleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, message := StatusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", slog.Any("error", err), slog.Int("status", status))
	} else {
		logger.WarnContext(r.Context(), "Request rejected", slog.Any("error", err), slog.Int("status", status))
	}
	ErrorResponse(w, r, status, message)
}
