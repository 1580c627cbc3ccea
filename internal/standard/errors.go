package standard

import "errors"

// Sentinel errors returned (wrapped) by the loader.
var (
	ErrMissingField   = errors.New("standard: required field missing")
	ErrInvalidPattern = errors.New("standard: invalid pattern")
	ErrRuleDepth      = errors.New("standard: rule tree nested too deeply")
	ErrRuleCycle      = errors.New("standard: rule tree contains a cycle")
	ErrUnknownDecoder = errors.New("standard: unknown decoder")
	ErrUnknownFormat  = errors.New("standard: unknown file format")
)
