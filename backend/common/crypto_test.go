package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordHash(t *testing.T) {
	hash, err := Password2Hash("testpass")
	assert.NoError(t, err)
	assert.NotEqual(t, "testpass", hash)
	assert.True(t, ValidatePasswordAndHash("testpass", hash))
	assert.False(t, ValidatePasswordAndHash("wrongpass", hash))
}

func TestPasswordHash_UniqueSalts(t *testing.T) {
	first, err := Password2Hash("testpass")
	assert.NoError(t, err)
	second, err := Password2Hash("testpass")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
