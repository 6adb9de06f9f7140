// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist or belongs to
// another tenant.
var ErrNotFound = errors.New("not found")

// ErrConflict indicates a uniqueness conflict (duplicate subdomain, reference,
// field name, or an already-active subscription).
var ErrConflict = errors.New("already exists")

// ErrValidation indicates malformed input rejected before any write.
var ErrValidation = errors.New("validation failed")
