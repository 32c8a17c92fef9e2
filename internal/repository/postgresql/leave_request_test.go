package postgresql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDParam_EmptyBecomesNull(t *testing.T) {
	t.Parallel()

	// No exclusion must reach the uuid codec as NULL, never as "".
	assert.Nil(t, uuidParam(""))
}

func TestUUIDParam_PassesValueThrough(t *testing.T) {
	t.Parallel()

	id := "019235c9-8f1e-7c7a-b7a1-3f2d6a9e0c41"
	got := uuidParam(id)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}
