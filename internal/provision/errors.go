package provision

import "errors"

var (
	// ErrAborted means the operator declined the confirmation gate. It is
	// a clean exit, not a failure.
	ErrAborted = errors.New("aborted by operator")

	// ErrNoStorage means discovery found no storage pool with a required
	// content capability.
	ErrNoStorage = errors.New("no suitable storage found")

	// ErrTemplateNotFound means no catalog entry matched the configured
	// template pattern.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNetworkTimeout means the readiness probe budget was exhausted.
	ErrNetworkTimeout = errors.New("container network never became ready")
)
