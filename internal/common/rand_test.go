package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	s1, err := MakeRandHexString(32)
	require.NoError(t, err)
	require.Len(t, s1, 64)

	_, err = hex.DecodeString(s1)
	require.NoError(t, err)

	s2, err := MakeRandHexString(32)
	require.NoError(t, err)
	require.NotEqual(t, s1, s2)
}
