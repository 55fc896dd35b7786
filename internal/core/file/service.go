// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package file

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/donghun712/wsd-term-proj/internal/platform/apperr"
	"github.com/donghun712/wsd-term-proj/internal/platform/constants"
	"github.com/donghun712/wsd-term-proj/internal/platform/storage"
	"github.com/donghun712/wsd-term-proj/pkg/uuid"
)

// sniffLength is how many leading bytes are inspected to detect the type.
const sniffLength = 3072

type Service struct {
	store  storage.ObjectStorage
	logger *slog.Logger
}

func NewService(store storage.ObjectStorage, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

/*
Save stores the content of an uploaded file.

Description: The content type is sniffed from the first bytes and the stored
extension follows it. The client's filename is only echoed back, so a page
uploaded as "photo.png" is stored as ".html" and downloaded as an attachment.

Parameters:
  - originalName: string (client filename, echoed only)
  - content: io.Reader
  - size: int64 (-1 when unknown)

Returns:
  - *Upload: Names and public URL of the stored object
  - error: Internal on storage failures
*/
func (service *Service) Save(context context.Context, originalName string, content io.Reader, size int64) (*Upload, error) {

	// ── 1. Content Sniffing ──────────────────────────────────────────────
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, apperr.Internal(err)
	}
	head = head[:n]
	detected := mimetype.Detect(head)

	// ── 2. Naming ────────────────────────────────────────────────────────
	savedName := uuid.New() + extensionFor(detected)

	// ── 3. Persistence ───────────────────────────────────────────────────
	body := io.MultiReader(bytes.NewReader(head), content)
	if err := service.store.Put(context, savedName, body, size, detected.String()); err != nil {
		return nil, apperr.Internal(err)
	}

	service.logger.Info("file_uploaded",
		slog.String("saved_name", savedName),
		slog.String("content_type", detected.String()),
		slog.Int64("size", size),
	)

	return &Upload{
		OriginalName: originalName,
		SavedName:    savedName,
		URL:          PublicPrefix + savedName,
	}, nil
}

/*
Open returns a stored file and its content type. The caller closes the reader.

Returns:
  - error: NotFound for malformed or unknown names
*/
func (service *Service) Open(context context.Context, name string) (io.ReadCloser, string, error) {
	if !storedNameRegex.MatchString(name) {
		return nil, "", apperr.NotFound("File")
	}

	reader, err := service.store.Get(context, name)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, "", apperr.NotFound("File")
		}
		return nil, "", apperr.Internal(err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = constants.MIMEOctetStream
	}
	return reader, contentType, nil
}

func extensionFor(detected *mimetype.MIME) string {
	ext := strings.ToLower(detected.Extension())
	if len(ext) > maxExtensionLength || !extensionRegex.MatchString(ext) {
		return ""
	}
	return ext
}
