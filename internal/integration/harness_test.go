package integration

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halfmoss/quern/internal/client"
	"github.com/halfmoss/quern/internal/kernel"
)

// syncBuffer lets the test read stderr while the loop goroutine writes it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// session is one kernel loop wired to a client over in-memory pipes, the
// way a host drives the subprocess over stdio.
type session struct {
	Client *client.Client
	ErrOut *syncBuffer
}

func startSession(t *testing.T) *session {
	t.Helper()

	cmdR, cmdW := io.Pipe()
	outR, outW := io.Pipe()
	errOut := &syncBuffer{}

	loop := kernel.NewLoop(kernel.Options{In: cmdR, Out: outW, ErrOut: errOut})
	done := make(chan error, 1)
	go func() {
		err := loop.Run(context.Background())
		outW.Close()
		done <- err
	}()

	t.Cleanup(func() {
		cmdW.Close()
		require.NoError(t, <-done)
	})

	return &session{
		Client: client.Attach(cmdW, outR),
		ErrOut: errOut,
	}
}
