package services

import (
	"errors"
)

var (
	// ErrUnknownOrder is a validation failure: the order key is none of
	// newest, unanswered, active.
	ErrUnknownOrder = errors.New("unknown order")

	// ErrInvalidID rejects malformed identifiers before any write happens.
	ErrInvalidID = errors.New("invalid question id")

	// ErrQuestionNotFound means the target question does not resolve.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrCommentSave wraps a persistence failure while appending a comment.
	ErrCommentSave = errors.New("error adding comment")
)
