package service

import "errors"

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrChannelForbidden     = errors.New("channel is not joinable for this user")
	ErrInternalServer       = errors.New("internal server error")
)
