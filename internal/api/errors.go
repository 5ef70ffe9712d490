// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package api

import (
	"errors"
	"fmt"
	"syscall"

	"resty.dev/v3"
)

// RemoteOperationError is returned for every failed call to the remote API or
// the image server.
type RemoteOperationError struct {
	Operation  string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteOperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, e.Body)
}

func (e *RemoteOperationError) Unwrap() error {
	return e.Err
}

// IsConnectionRefused reports whether the remote side could not be reached at
// all.
func IsConnectionRefused(err error) bool {
	return errors.Is(err, syscall.ECONNREFUSED)
}

func transportError(operation string, err error) error {
	return &RemoteOperationError{Operation: operation, Err: err}
}

func statusError(operation string, resp *resty.Response) error {
	return &RemoteOperationError{
		Operation:  operation,
		StatusCode: resp.StatusCode(),
		Body:       resp.String(),
	}
}
