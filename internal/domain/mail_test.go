package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryOutcome(t *testing.T) {
	ok := DeliverySucceeded("<id@example.com>")
	assert.True(t, ok.Success)
	assert.Equal(t, "<id@example.com>", ok.MessageId)
	assert.Empty(t, ok.Error)

	failed := DeliveryFailed(errors.New("connection refused"))
	assert.False(t, failed.Success)
	assert.Empty(t, failed.MessageId)
	assert.Equal(t, "connection refused", failed.Error)

	assert.Equal(t, "unknown error occurred", DeliveryFailed(nil).Error)
}

func TestFailedSubmission(t *testing.T) {
	result := FailedSubmission(ErrVerifyFailed)

	assert.False(t, result.Notification.Success)
	assert.False(t, result.AutoReply.Success)
	assert.Equal(t, result.Notification, result.AutoReply)
	assert.Equal(t, ErrVerifyFailed.Error(), result.AutoReply.Error)
}
