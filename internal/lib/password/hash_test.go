package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHashAndCompare(t *testing.T) {
	hash, err := GetHash("student-secret")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "student-secret", hash)

	assert.NoError(t, CompareHash(hash, "student-secret"))
	assert.Error(t, CompareHash(hash, "wrong-password"))
}
