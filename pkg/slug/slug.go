// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Category slugs are derived from their names ("Data Science" becomes
// "data-science", "데이터 과학" becomes "데이터-과학") and used by the course
// listing filter.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented letters and drops the combining marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From converts s into a lowercase, hyphen-separated slug.
//
// Accents are stripped from Latin letters. Letters and digits of any script
// are kept, runs of anything else collapse into a single hyphen, and the
// result never starts or ends with one. Names made only of symbols give "".
func From(s string) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}

	var builder strings.Builder
	builder.Grow(len(plain))

	pendingHyphen := false
	for _, r := range strings.ToLower(plain) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}
