package repository

import (
	"context"
	"testing"

	"github.com/Muppalavinisree/vibecommerce/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnsupportedDriver(t *testing.T) {
	stores, err := Open(context.Background(), &config.Config{Storage: config.Storage{Driver: "sqlite"}})

	require.Error(t, err)
	assert.Nil(t, stores)
	assert.Contains(t, err.Error(), "unsupported storage driver")
}

func TestStores_Close(t *testing.T) {
	assert.NoError(t, (&Stores{}).Close(context.Background()))

	closed := false
	stores := &Stores{close: func(context.Context) error { closed = true; return nil }}

	require.NoError(t, stores.Close(context.Background()))
	assert.True(t, closed)
}
