package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyDiff    = errors.New("diff cannot be empty")
	ErrNoCandidates = errors.New("the model returned no usable commit messages")
)

type ErrGeneratingCommit struct {
	Msg string
	Err error
}

func (e *ErrGeneratingCommit) Error() string {
	return fmt.Sprintf("failed to generate commit: %s: %v", e.Msg, e.Err)
}

func (e *ErrGeneratingCommit) Unwrap() error {
	return e.Err
}
