package service

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrValidation         = errors.New("validation_failed")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrQuestionNotFound   = errors.New("question_not_found")
	ErrChoiceNotFound     = errors.New("choice_not_found")
	ErrChoiceMismatch     = errors.New("choice_not_in_question")
	ErrAlreadyVoted       = errors.New("already_voted")
)

// ValidationError carries one message per offending input field. It matches
// ErrValidation with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// orNil returns e when at least one field failed.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Summary joins the messages ordered by field name.
func (e *ValidationError) Summary() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, e.Fields[k])
	}
	return strings.Join(msgs, " ")
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
