// SPDX-License-Identifier: MIT

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.0.0"
	assert.Equal(t, "v1.0.0 (commit: unknown, built: unknown)", String())
}
