package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidParent = errors.New("invalid parent task")
	ErrInternal      = errors.New("internal error")
)

// Entity errors, each satisfying errors.Is(err, ErrNotFound).
var (
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrContactNotFound = fmt.Errorf("contact %w", ErrNotFound)
	ErrCompanyNotFound = fmt.Errorf("company %w", ErrNotFound)
	ErrDealNotFound    = fmt.Errorf("deal %w", ErrNotFound)
	ErrLeadNotFound    = fmt.Errorf("lead %w", ErrNotFound)
)
