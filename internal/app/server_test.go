package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShutdownBeforeStart(t *testing.T) {
	srv := NewServer()
	assert.NoError(t, srv.Shutdown(context.Background()))
}
