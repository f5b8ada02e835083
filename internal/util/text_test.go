package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "http://test.com", Truncate("http://test.com", 20))
	assert.Equal(t, "http…", Truncate("http://test.com", 5))
	assert.Equal(t, "h", Truncate("http://test.com", 1))
	assert.Equal(t, "", Truncate("http://test.com", 0))
	assert.Equal(t, "żó…", Truncate("żółw", 3))
}
