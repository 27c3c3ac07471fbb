package olami

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSign_KnownFixture(t *testing.T) {
	// md5("s1api=nliappkey=k1timestamp=1000s1")
	assert.Equal(t, "7bc9ca48a1bc32becb2ed1e1b8e864c8", Sign("k1", "s1", 1000))
}

func TestSign_Deterministic(t *testing.T) {
	assert.Equal(t, Sign("k1", "s1", 1000), Sign("k1", "s1", 1000))
}

func TestSign_Format(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), Sign("app-key", "app-secret", 1717171717171))
}

func TestSign_InputsChangeDigest(t *testing.T) {
	base := Sign("k1", "s1", 1000)

	tests := []struct {
		name string
		sign string
	}{
		{"app key", Sign("k2", "s1", 1000)},
		{"app secret", Sign("k1", "s2", 1000)},
		{"timestamp", Sign("k1", "s1", 1001)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.sign)
		})
	}
}
