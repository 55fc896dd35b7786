// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package file accepts uploads and serves them back by their stored name.

Stored names are generated (a UUIDv7 plus an extension), so clients can never
choose or overwrite a key. Bytes live in whichever object storage backend is
configured.
*/
package file

import (
	"regexp"
	"strings"
)

// Upload describes a stored file.
type Upload struct {
	OriginalName string `json:"original_name"`
	SavedName    string `json:"saved_name"`
	URL          string `json:"url"`
}

const (
	FieldFile = "file"

	// PublicPrefix is the URL path files are served under.
	PublicPrefix = "/api/v1/files/"

	maxExtensionLength = 10
)

var (
	// storedNameRegex matches names this package generates.
	storedNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*(\.[A-Za-z0-9]+)?$`)

	extensionRegex = regexp.MustCompile(`^\.[a-z0-9]+$`)
)

// ServedInline reports whether a stored type may be rendered by the browser.
// Everything else, markup and SVG included, is sent as an attachment.
func ServedInline(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))

	if mediaType == "image/svg+xml" {
		return false
	}
	for _, prefix := range []string{"image/", "video/", "audio/"} {
		if strings.HasPrefix(mediaType, prefix) {
			return true
		}
	}
	return false
}
