// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Success payloads are written as-is; every failure, whatever layer it comes
// from, is written through [Error] as the same envelope:
//
//	{"timestamp": "...", "path": "/api/v1/...", "status": 404,
//	 "code": "NOT_FOUND", "message": "Course not found", "details": null}
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/ctxutil"
	"github.com/donghun712/wsd-term-proj/pkg/pagination"
)

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Timestamp string              `json:"timestamp"`
	Path      string              `json:"path"`
	Status    int                 `json:"status"`
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Details   []apperr.FieldError `json:"details"`
}

// MessageBody is the payload for endpoints that only acknowledge an action.
type MessageBody struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.MIMEApplicationJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// Paginated writes a 200 OK response with a page envelope.
func Paginated[T any](writer http.ResponseWriter, page pagination.Page[T]) {
	JSON(writer, http.StatusOK, page)
}

// Message writes a 200 OK response with a single message field.
func Message(writer http.ResponseWriter, message string) {
	JSON(writer, http.StatusOK, MessageBody{Message: message})
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into the standardized JSON error envelope.
//
// The mapping is total: an error that is not an [*apperr.AppError] becomes
// a 500 INTERNAL_SERVER_ERROR and its cause is logged, never returned.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	logger := ctxutil.GetLogger(request.Context())

	if appError == nil {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      request.URL.Path,
		Status:    appError.HTTPStatus,
		Code:      appError.Code,
		Message:   appError.Message,
		Details:   appError.Details,
	})
}
