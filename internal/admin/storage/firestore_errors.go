package storage

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreError annotates Firestore failures with repository semantics.
type FirestoreError struct {
	Op          string
	Err         error
	NotFound    bool
	Conflict    bool
	Unavailable bool
}

// Error implements the error interface.
func (e *FirestoreError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *FirestoreError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrNotFound) match missing documents.
func (e *FirestoreError) Is(target error) bool {
	return target == ErrNotFound && e.NotFound
}

// wrapFirestoreError classifies err by its gRPC status. Context cancellations pass through unchanged.
func wrapFirestoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	code := status.Code(err)
	switch code {
	case codes.Canceled:
		return context.Canceled
	case codes.DeadlineExceeded:
		return context.DeadlineExceeded
	}

	e := &FirestoreError{Op: op, Err: err}
	switch code {
	case codes.NotFound:
		e.NotFound = true
	case codes.AlreadyExists, codes.FailedPrecondition, codes.Aborted, codes.OutOfRange:
		e.Conflict = true
	case codes.Unavailable, codes.ResourceExhausted, codes.Internal:
		e.Unavailable = true
	}
	return e
}
