package group

import "errors"

var (
	ErrGroupNotFound      = errors.New("attendance group not found")
	ErrDuplicateName      = errors.New("attendance group with this name already exists")
	ErrMembershipExists   = errors.New("user is already assigned to this group")
	ErrMembershipNotFound = errors.New("user is not assigned to this group")
)
