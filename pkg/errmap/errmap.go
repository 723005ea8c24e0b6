// Package errmap classifies core errors into stable codes and HTTP statuses
// so handlers build precise user-facing messages without string matching.
package errmap

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tierlab/ranklist/pkg/etag"
	"github.com/tierlab/ranklist/pkg/medialink"
	"github.com/tierlab/ranklist/pkg/permcheck"
	"github.com/tierlab/ranklist/pkg/reorder"
	"github.com/tierlab/ranklist/pkg/service/scontributor"
	"github.com/tierlab/ranklist/pkg/service/screator"
	"github.com/tierlab/ranklist/pkg/service/sitem"
	"github.com/tierlab/ranklist/pkg/stoken"
)

// Code classifies high-level error categories.
type Code string

const (
	CodeInvalidPosition    Code = "invalid_position"
	CodeInvalidRequirement Code = "invalid_requirement"
	CodeInvalidMediaLink   Code = "invalid_media_link"
	CodeMalformedPatch     Code = "malformed_patch"
	CodePreconditionFailed Code = "precondition_failed"
	CodeNotFound           Code = "not_found"
	CodePermissionDenied   Code = "permission_denied"
	CodeUnauthenticated    Code = "unauthenticated"
	CodeInternal           Code = "internal"
)

// Error carries a code and optional structured detail while preserving the
// original cause via Unwrap.
type Error struct {
	Code   Code
	Status int
	Detail map[string]any
	cause  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Code, e.cause.Error())
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error { return e.cause }

// Map classifies err into an Error with its HTTP status. Unknown errors map
// to internal; callers only expose the message for non-internal codes.
func Map(err error) *Error {
	var mapped *Error
	if errors.As(err, &mapped) {
		return mapped
	}

	var invalidPos *reorder.InvalidPositionError
	switch {
	case errors.As(err, &invalidPos):
		return &Error{
			Code:   CodeInvalidPosition,
			Status: http.StatusUnprocessableEntity,
			Detail: map[string]any{"maximal": invalidPos.Maximal},
			cause:  err,
		}
	case errors.Is(err, sitem.ErrInvalidRequirement):
		return &Error{Code: CodeInvalidRequirement, Status: http.StatusUnprocessableEntity, cause: err}
	case errors.Is(err, medialink.ErrInvalidMediaLink):
		return &Error{Code: CodeInvalidMediaLink, Status: http.StatusUnprocessableEntity, cause: err}
	case errors.Is(err, sitem.ErrUnexpectedNull):
		return &Error{Code: CodeMalformedPatch, Status: http.StatusUnprocessableEntity, cause: err}
	case errors.Is(err, etag.ErrPreconditionFailed):
		return &Error{Code: CodePreconditionFailed, Status: http.StatusPreconditionFailed, cause: err}
	case errors.Is(err, sitem.ErrNoItemFound),
		errors.Is(err, scontributor.ErrNoContributorFound),
		errors.Is(err, screator.ErrCreatorNotFound):
		return &Error{Code: CodeNotFound, Status: http.StatusNotFound, cause: err}
	case errors.Is(err, permcheck.ErrPermissionDenied):
		return &Error{Code: CodePermissionDenied, Status: http.StatusForbidden, cause: err}
	case errors.Is(err, stoken.ErrInvalidToken):
		return &Error{Code: CodeUnauthenticated, Status: http.StatusUnauthorized, cause: err}
	default:
		return &Error{Code: CodeInternal, Status: http.StatusInternalServerError, cause: err}
	}
}
