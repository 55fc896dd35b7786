// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	requestutil "github.com/donghun712/wsd-term-proj/internal/platform/request"
	"github.com/donghun712/wsd-term-proj/internal/platform/respond"
)

// multipartMemory is the part of a form kept in memory before spilling to disk.
const multipartMemory = 8 << 20

type Handler struct {
	service  *Service
	maxBytes int64
	throttle func(http.Handler) http.Handler
}

// NewHandler builds the file handler. throttle guards the upload route.
func NewHandler(service *Service, maxBytes int64, throttle func(http.Handler) http.Handler) *Handler {
	return &Handler{service: service, maxBytes: maxBytes, throttle: throttle}
}

// Routes returns the file endpoints.
//
// # Endpoints
//   - POST /upload : Multipart upload (field "file").
//   - GET  /{name} : Download by stored name.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.With(handler.throttle).Post("/upload", handler.upload)
	router.Get("/{name}", handler.download)

	return router
}

/*
POST /api/v1/files/upload.

Response:
  - 201: Upload
  - 413: Body larger than UPLOAD_MAX_BYTES
  - 422: Missing file field
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	if request.ContentLength > handler.maxBytes {
		respond.Error(writer, request, apperr.PayloadTooLarge(handler.maxBytes))
		return
	}
	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxBytes)

	if err := request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge(handler.maxBytes))
			return
		}
		respond.Error(writer, request, apperr.BadRequest("Invalid multipart form"))
		return
	}
	defer func() { _ = request.MultipartForm.RemoveAll() }()

	content, header, err := request.FormFile(FieldFile)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldFile, Message: "This field is required"}))
		return
	}
	defer content.Close()

	upload, err := handler.service.Save(request.Context(), header.Filename, content, header.Size)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, upload)
}

// GET /api/v1/files/{name}.
func (handler *Handler) download(writer http.ResponseWriter, request *http.Request) {
	name := requestutil.Param(request, "name")

	reader, contentType, err := handler.service.Open(request.Context(), name)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	defer reader.Close()

	writer.Header().Set(constants.HeaderContentType, contentType)
	writer.Header().Set("X-Content-Type-Options", "nosniff")
	if !ServedInline(contentType) {
		writer.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	}
	writer.WriteHeader(http.StatusOK)
	_, _ = io.Copy(writer, reader)
}
