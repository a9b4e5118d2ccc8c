package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrNoMatchingSkills  = errors.New("you have no skills this user wants")
	ErrInvalidSkill      = errors.New("skill is not available for this pair")
	ErrNotPending        = errors.New("swap request is no longer pending")
	ErrUnknownUser       = errors.New("unknown user")
	ErrInvalidStatus     = errors.New("status must be accepted or rejected")
	ErrBanned            = errors.New("user is banned")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnknownReport     = errors.New("unknown report")
)
