package utils

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func TestBufferedWriteCloserFlushesBeforeClosing(t *testing.T) {
	buf := &bytes.Buffer{}

	w := bufio.NewWriter(buf)
	wc := NewBufferedWriteCloser(w, &nopCloser{})
	wc.Write([]byte("foobar"))
	require.Zero(t, buf.Len())
	require.NoError(t, wc.Close())
	require.Equal(t, "foobar", buf.String())
}
