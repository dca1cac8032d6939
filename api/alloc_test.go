package api_test

import "testing"

import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

import "github.com/bnclabs/mempool/api"
import "github.com/bnclabs/mempool/malloc"

// the pool shall satisfy the exported allocator surface.
var _ api.Mallocer = (*malloc.Pool)(nil)

func TestErrorOutofmemory(t *testing.T) {
	require.Error(t, api.ErrorOutofmemory)
	assert.Equal(t, "mempool.outofmemory", api.ErrorOutofmemory.Error())
	assert.Equal(t, -1, api.ExitOutofmemory)
}
