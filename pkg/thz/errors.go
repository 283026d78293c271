// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"errors"
	"fmt"
)

// ErrorKind classifies protocol failures.
type ErrorKind int

const (
	// ErrFraming indicates a corrupted or unrecognized byte stream. The
	// decoder recovers by resynchronizing on the next header byte.
	ErrFraming ErrorKind = iota
	// ErrChecksum indicates a telegram whose checksum did not verify. The
	// telegram is discarded and the exchange retried.
	ErrChecksum
	// ErrUnsupportedFirmware indicates that no register map matches the
	// detected firmware, even after lower-version fallback. Fatal for the
	// session.
	ErrUnsupportedFirmware
	// ErrUnknownRegister indicates a structurally valid telegram for a
	// register the active map does not describe.
	ErrUnknownRegister
	// ErrTruncatedPayload indicates register data shorter than a field
	// descriptor requires. Reported per field, never aborting siblings.
	ErrTruncatedPayload
	// ErrNotWritable indicates a write request for a setting the active map
	// does not mark writable.
	ErrNotWritable
	// ErrValueOutOfRange indicates a write value outside the setting's
	// declared range or not exactly representable in its encoding.
	ErrValueOutOfRange
	// ErrTimeout indicates an exchange that exhausted its bounded wait.
	ErrTimeout
	// ErrDevice indicates a NAK reported by the controller itself.
	ErrDevice
)

// String returns a human-readable kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrFraming:
		return "framing error"
	case ErrChecksum:
		return "checksum mismatch"
	case ErrUnsupportedFirmware:
		return "unsupported firmware"
	case ErrUnknownRegister:
		return "unknown register"
	case ErrTruncatedPayload:
		return "truncated payload"
	case ErrNotWritable:
		return "not writable"
	case ErrValueOutOfRange:
		return "value out of range"
	case ErrTimeout:
		return "timeout"
	case ErrDevice:
		return "device error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ProtocolError is the error type returned by the codec, the register map,
// the command builder and the session.
type ProtocolError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *ProtocolError) Unwrap() error {
	return e.Err
}

func newErrorf(kind ErrorKind, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapErrorf(kind ErrorKind, err error, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the ErrorKind from err, reporting false for errors that did
// not originate in this package.
func KindOf(err error) (ErrorKind, bool) {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

func isKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsChecksumError reports whether err is a checksum mismatch.
func IsChecksumError(err error) bool { return isKind(err, ErrChecksum) }

// IsTimeout reports whether err is an exchange timeout.
func IsTimeout(err error) bool { return isKind(err, ErrTimeout) }

// IsFramingError reports whether err is a stream framing failure.
func IsFramingError(err error) bool { return isKind(err, ErrFraming) }

// IsUnknownRegister reports whether err names a register the active map does
// not describe.
func IsUnknownRegister(err error) bool { return isKind(err, ErrUnknownRegister) }

// IsUnsupportedFirmware reports whether err is a failed register map
// selection.
func IsUnsupportedFirmware(err error) bool { return isKind(err, ErrUnsupportedFirmware) }

// IsNotWritable reports whether err is a rejected write to a read-only name.
func IsNotWritable(err error) bool { return isKind(err, ErrNotWritable) }

// IsValueOutOfRange reports whether err is a rejected out-of-range write.
func IsValueOutOfRange(err error) bool { return isKind(err, ErrValueOutOfRange) }

// IsDeviceError reports whether err is a NAK from the controller.
func IsDeviceError(err error) bool { return isKind(err, ErrDevice) }

// IsRetryable reports whether an exchange failing with err should be retried.
// Checksum mismatches and timeouts are transient; everything else is not.
func IsRetryable(err error) bool {
	k, ok := KindOf(err)
	return ok && (k == ErrChecksum || k == ErrTimeout)
}
