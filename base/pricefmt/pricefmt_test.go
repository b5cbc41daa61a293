package pricefmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	require.Equal(t, "1.05", Format("1050000", 6))
	require.Equal(t, "0.000001", Format("1", 6))
	require.Equal(t, "1000", Format("1000", 0))
	require.Equal(t, "", Format("abc", 6))
}

func TestParse(t *testing.T) {
	v, err := Parse("1.05", 6)
	require.NoError(t, err)
	require.Equal(t, "1050000", v)

	v, err = Parse("0.0000001", 6)
	require.NoError(t, err)
	require.Equal(t, "0", v)

	_, err = Parse("abc", 6)
	require.Error(t, err)
}
