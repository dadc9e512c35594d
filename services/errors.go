package services

import "errors"

// Domain failures returned by the services. Handlers map these onto HTTP
// status codes; anything else is treated as an internal error.
var (
	ErrEmailTaken        = errors.New("email is already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("incorrect password")
	ErrTaskNotFound      = errors.New("task not found")
	ErrGroupNotFound     = errors.New("group not found")
	ErrGroupTaskNotFound = errors.New("group task not found")
	ErrNotGroupCreator   = errors.New("only the group creator can create tasks in this group")
	ErrNotAuthorized     = errors.New("no permission to change the status of this task")
	ErrNoUsersFound      = errors.New("no users found")
)
