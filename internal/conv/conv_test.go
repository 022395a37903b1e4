package conv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBytesToString(t *testing.T) {
	b := []byte("ToClnt")
	s := BytesToString(b)
	require.Equal(t, "ToClnt", s)

	require.Equal(t, "", BytesToString(nil))
	require.Equal(t, "", BytesToString([]byte{}))
}

func TestStringToBytes(t *testing.T) {
	b := StringToBytes("Buy")
	require.Equal(t, []byte("Buy"), b)

	require.Len(t, StringToBytes(""), 0)
}

func TestRoundTrip(t *testing.T) {
	in := "ABC,Sell,100"
	require.Equal(t, in, BytesToString(StringToBytes(in)))
}
