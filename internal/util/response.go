package util

import (
	"errors"

	apperrors "github.com/fadilmartias/job-portal/internal/errors"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const internalServerErrorMessage = "Internal server error"

type ErrorBody struct {
	Error string `json:"error"`
}

// SuccessResponse writes body as JSON. Code 0 means 200.
func SuccessResponse(c *fiber.Ctx, code int, body any) error {
	if code == 0 {
		code = fiber.StatusOK
	}
	return c.Status(code).JSON(body)
}

// ErrorResponse maps err onto a status code and an {"error": ...} body.
// Internal failures never leak their cause to the caller; it is logged instead.
func ErrorResponse(c *fiber.Ctx, logger *zap.Logger, err error) error {
	code, message := StatusOf(err)
	if code >= fiber.StatusInternalServerError {
		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			fields = append(fields, zap.String("request_id", rid))
		}
		var de *apperrors.DomainError
		if errors.As(err, &de) && len(de.StackTrace()) > 0 {
			fields = append(fields, zap.ByteString("stack", de.StackTrace()))
		}
		logger.Error("request failed", fields...)
	}
	return c.Status(code).JSON(ErrorBody{Error: message})
}

// StatusOf reports the HTTP status and public message for err.
func StatusOf(err error) (int, string) {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		switch apperrors.TypeOf(err) {
		case apperrors.ErrTypeNotFound:
			return fiber.StatusNotFound, de.Message
		case apperrors.ErrTypeInvalidInput:
			return fiber.StatusBadRequest, de.Message
		case apperrors.ErrTypeUnavailable:
			return fiber.StatusServiceUnavailable, de.Message
		}
		return fiber.StatusInternalServerError, internalServerErrorMessage
	}

	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return fe.Code, fe.Message
	}
	return fiber.StatusInternalServerError, internalServerErrorMessage
}
