package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	key := GenerateCacheKey("questions", "page", "step1")
	assert.Equal(t, "medprep:questions:page:step1", key)
}

func TestGenerateCacheKeyWithParams(t *testing.T) {
	key := GenerateCacheKey("questions", "page", "step1", "Cardiology", "50", "0")
	assert.Equal(t, "medprep:questions:page:step1:Cardiology_50_0", key)
}
