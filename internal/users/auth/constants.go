// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constraints

const (
	// MinPasswordLength is the shortest password accepted at signup and on change.
	MinPasswordLength = 8

	// UnusablePasswordLength is the byte length of the random secret hashed
	// into accounts created through Google sign-in. Nobody ever learns it.
	UnusablePasswordLength = 32
)
