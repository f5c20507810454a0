package handlers

import (
	"errors"
	"net/http"

	"neuronex/internal/ai"
	"neuronex/internal/logger"
	"neuronex/internal/service"

	"go.uber.org/zap"
)

func mapBusinessErrorToHTTP(code string) int {
	switch code {
	case service.CodeValidation, service.CodeAlreadyExists:
		return http.StatusBadRequest
	case service.CodeUnauthorized:
		return http.StatusUnauthorized
	case service.CodeAccessDenied:
		return http.StatusForbidden
	case service.CodeNotFound:
		return http.StatusNotFound
	case service.CodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// handleServiceError переводит ошибку сервиса в HTTP-ответ.
// Всё, что не бизнес-ошибка и не сбой внешней модели, наружу уходит
// как 500 с общим сообщением.
func handleServiceError(w http.ResponseWriter, err error, defaultMessage string) {
	var busErr *service.BusinessError
	if errors.As(err, &busErr) {
		statusCode := mapBusinessErrorToHTTP(busErr.Code)

		logger.Warn("HTTP: Бизнес-ошибка",
			zap.String("error_code", busErr.Code),
			zap.Int("http_status", statusCode))

		payloads := []Payload{toPayload("message", busErr.Message)}
		if len(busErr.Details) > 0 {
			payloads = append(payloads, toPayload("details", busErr.Details))
		}
		responseWithJSON(w, statusCode, payloads...)
		return
	}

	if errors.Is(err, ai.ErrUpstream) {
		logger.Error("HTTP: Сбой внешней модели", err)
		responseWithError(w, http.StatusBadGateway, defaultMessage)
		return
	}

	logger.Error("HTTP: Внутренняя ошибка", err)
	responseWithError(w, http.StatusInternalServerError, defaultMessage)
}
