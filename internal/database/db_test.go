package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolNilBeforeConnect(t *testing.T) {
	assert.Nil(t, Pool())
	assert.Nil(t, Stats())
}

func TestStatusErrorsWhenDisconnected(t *testing.T) {
	err := Status(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}

func TestCloseWithoutConnectIsSafe(t *testing.T) {
	assert.NotPanics(t, func() { Close() })
	assert.Nil(t, Pool())
}
