package yml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode(t *testing.T) {
	node, err := Parse([]byte(`{"name":"app","version":"1.0.0","workspaces":["packages/*","!packages/skip"],"dependencies":{"lib":"^1.0.0","nested":{"x":1}}}`))
	require.NoError(t, err)
	assert.True(t, node.IsMap())
	assert.Equal(t, "app", node.Lookup("name").String())
	patterns, err := node.Lookup("workspaces").Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"packages/*", "!packages/skip"}, patterns)
	assert.Equal(t, map[string]string{"lib": "^1.0.0"}, node.Lookup("dependencies").StringMap())
	assert.Nil(t, node.Lookup("missing"))
	assert.Equal(t, "", node.Lookup("missing").String())

	_, err = node.Lookup("dependencies").Strings()
	assert.Error(t, err)
}

func TestParse_YAML(t *testing.T) {
	node, err := Parse([]byte("packages:\n  - 'apps/*'\n  - libs/**\n"))
	require.NoError(t, err)
	patterns, err := node.Lookup("packages").Strings()
	require.NoError(t, err)
	assert.Equal(t, []string{"apps/*", "libs/**"}, patterns)

	empty, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsMap())

	_, err = Parse([]byte("{invalid"))
	assert.Error(t, err)
}
