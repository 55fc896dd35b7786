// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"
)

// ErrGoogleNotConfigured is returned when no OAuth client ID is set.
var ErrGoogleNotConfigured = errors.New("auth: google sign-in is not configured")

// GoogleVerifier exchanges a Google ID token for the email it was issued to.
type GoogleVerifier interface {
	VerifyEmail(context context.Context, token string) (string, error)
}

// IDTokenVerifier validates Google ID tokens against a fixed OAuth client ID.
type IDTokenVerifier struct {
	clientID string
}

// NewIDTokenVerifier returns a verifier bound to clientID.
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: strings.TrimSpace(clientID)}
}

/*
VerifyEmail validates signature, audience and expiry of a Google ID token.

Returns:
  - string: The email claim, empty if the token carries none
  - error: ErrGoogleNotConfigured, or a validation failure
*/
func (verifier *IDTokenVerifier) VerifyEmail(context context.Context, token string) (string, error) {
	if verifier.clientID == "" {
		return "", ErrGoogleNotConfigured
	}

	payload, err := idtoken.Validate(context, token, verifier.clientID)
	if err != nil {
		return "", err
	}

	email, _ := payload.Claims["email"].(string)
	return strings.TrimSpace(email), nil
}
