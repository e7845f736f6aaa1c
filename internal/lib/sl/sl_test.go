package sl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErr(t *testing.T) {
	attr := Err(errors.New("database is down"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "database is down", attr.Value.String())
}
