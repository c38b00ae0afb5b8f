package domain

import (
	"errors"
)

var ErrInvalidShape = errors.New("invalid request body")
var ErrVerifyFailed = errors.New("smtp connection verification failed")
var ErrSendFailed = errors.New("failed to send email")
var ErrRenderFailed = errors.New("failed to render email")
