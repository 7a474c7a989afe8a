package inspect

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientAgainstLiveServer(t *testing.T) {
	s := New(Config{}, testSnapshot())
	ts := httptest.NewServer(s.router)
	defer ts.Close()

	client, err := NewClient(ts.URL)
	require.NoError(t, err)

	assert.True(t, client.Healthy())

	recipes, err := client.Recipes()
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "cake", recipes[0].Name)

	ready, waiting, err := client.Orders()
	require.NoError(t, err)
	require.Len(t, ready, 1)
	assert.Empty(t, waiting)
}
