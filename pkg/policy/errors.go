package policy

import "errors"

var (
	// ErrInvalidPolicy is returned when a document cannot be decoded or fails validation.
	ErrInvalidPolicy = errors.New("policy.invalid")

	// ErrUnknownRole is returned when a grant names a role the document does not declare.
	ErrUnknownRole = errors.New("policy.unknown_role")

	// ErrDuplicateRole is returned when a role is declared twice.
	ErrDuplicateRole = errors.New("policy.duplicate_role")
)
