package client

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halfmoss/quern/internal/kernel"
)

// startLoop runs an in-process kernel over pipes and returns an attached
// client plus the stderr buffer.
func startLoop(t *testing.T) (*Client, *bytes.Buffer) {
	t.Helper()

	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	errOut := &bytes.Buffer{}

	loop := kernel.NewLoop(kernel.Options{In: cmdR, Out: outW, ErrOut: errOut})
	done := make(chan error, 1)
	go func() {
		err := loop.Run(context.Background())
		outW.Close()
		done <- err
	}()

	c := Attach(cmdW, outR)
	t.Cleanup(func() {
		cmdW.Close()
		require.NoError(t, <-done)
	})
	return c, errOut
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestClient_LoadAndGetInfo(t *testing.T) {
	t.Parallel()

	c, errOut := startLoop(t)
	path := writeCSV(t, "a,b\n1,x\n2,y\n")

	out, err := c.Load("df", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Successfully loaded")
	assert.Contains(t, out, "'df'")

	report, err := c.GetInfo("df")
	require.NoError(t, err)
	assert.Contains(t, report, "--- METADATA FOR df ---")
	assert.Contains(t, report, "**First 5 Rows:**")
	assert.Empty(t, errOut.String())
}

func TestClient_Execute(t *testing.T) {
	t.Parallel()

	c, _ := startLoop(t)
	path := writeCSV(t, "a\n1\n2\n3\n")

	_, err := c.Load("nums", path)
	require.NoError(t, err)

	out, err := c.Execute("print(nums.shape)")
	require.NoError(t, err)
	assert.Equal(t, "(3, 1)", out)
}

func TestClient_ExecuteIn(t *testing.T) {
	t.Parallel()

	c, _ := startLoop(t)
	path := writeCSV(t, "a\n1\n2\n")

	_, err := c.Load("nums", path)
	require.NoError(t, err)

	out, err := c.ExecuteIn("cel", "size(nums)")
	require.NoError(t, err)
	assert.Equal(t, "2", out)
}

func TestClient_ErrorsGoToErrStream(t *testing.T) {
	t.Parallel()

	c, errOut := startLoop(t)

	out, err := c.GetInfo("missing")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut.String(), "KERNEL_ERROR:")
	assert.Contains(t, errOut.String(), "missing")
}

func TestClient_SendRawMalformedLine(t *testing.T) {
	t.Parallel()

	c, errOut := startLoop(t)

	out, err := c.Send("this is not json")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut.String(), "invalid JSON received")

	// The loop survives and keeps answering.
	out, err = c.Send(`{"type":"NoSuchCommand"}`)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestClient_CloseUnblocksLoop(t *testing.T) {
	t.Parallel()

	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()

	loop := kernel.NewLoop(kernel.Options{In: cmdR, Out: outW, ErrOut: io.Discard})
	done := make(chan error, 1)
	go func() {
		err := loop.Run(context.Background())
		outW.Close()
		done <- err
	}()

	c := Attach(cmdW, outR)
	require.NoError(t, cmdW.Close())
	require.NoError(t, <-done)

	// After shutdown a round trip fails cleanly instead of hanging.
	_, err := c.GetInfo("df")
	require.Error(t, err)
}
