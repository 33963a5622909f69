package graphql

import (
	"errors"

	"github.com/dmitrijs2005/gophchat/internal/common"
)

// Extension codes reported to clients.
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// clientError is what resolvers hand to graphql-go; its Extensions end up
// in the "extensions" member of the response error.
type clientError struct {
	message string
	code    string
	fields  map[string]string
}

func (e *clientError) Error() string { return e.message }

func (e *clientError) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"code": e.code}
	if e.fields != nil {
		ext["errors"] = e.fields
	}
	return ext
}

// toClientError maps service errors onto the public error shape. Anything
// unrecognised is reported as an internal error without detail.
func toClientError(err error) *clientError {
	var input *common.InputError
	switch {
	case errors.As(err, &input):
		return &clientError{message: input.Message, code: CodeBadUserInput, fields: input.Fields}
	case errors.Is(err, common.ErrUnauthenticated):
		return &clientError{message: common.ErrUnauthenticated.Error(), code: CodeUnauthenticated}
	default:
		return &clientError{message: common.ErrorInternal.Error(), code: CodeInternal}
	}
}

// outcome labels err for metrics.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	switch toClientError(err).code {
	case CodeBadUserInput:
		return "bad_input"
	case CodeUnauthenticated:
		return "unauthenticated"
	}
	return "error"
}
