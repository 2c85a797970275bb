package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameFromEmail(t *testing.T) {
	assert.Equal(t, "ann", NameFromEmail("ann@example.com"))
	assert.Equal(t, "no-at-sign", NameFromEmail("no-at-sign"))
	assert.Equal(t, "", NameFromEmail(""))
}
