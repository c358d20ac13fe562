// Package client is the host side of the kernel protocol: it writes one
// JSON command per line and collects output until the sentinel. It backs
// the integration tests and gives embedders a typed driver, whether the
// kernel runs as a subprocess or in-process over pipes.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/halfmoss/quern/internal/kernel"
)

// maxLineBytes mirrors the kernel's line limit; metadata reports for wide
// frames can run long.
const maxLineBytes = 16 * 1024 * 1024

// command is the wire shape the kernel decodes.
type command struct {
	Type     string `json:"type"`
	Path     string `json:"path,omitempty"`
	VarName  string `json:"varName,omitempty"`
	Code     string `json:"code,omitempty"`
	Language string `json:"language,omitempty"`
}

// Client drives one kernel over a command stream and a result stream.
// Methods issue one command each and block until its sentinel arrives;
// calls are serialized, matching the kernel's one-at-a-time contract.
type Client struct {
	mu  sync.Mutex
	w   io.Writer
	r   *bufio.Scanner
	cmd *exec.Cmd
	in  io.Closer
}

// Attach wires a client to an already-connected pair of streams: w feeds
// the kernel's input, r carries its output.
func Attach(w io.Writer, r io.Reader) *Client {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Client{w: w, r: scanner}
}

// Spawn starts the kernel binary as a subprocess and attaches to its
// stdio. The subprocess's stderr passes through to the host's. Close
// shuts the kernel down by closing its stdin.
func Spawn(ctx context.Context, binary string, args ...string) (*Client, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("creating stdout pipe: %w", err)
	}
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting kernel: %w", err)
	}

	c := Attach(stdin, stdout)
	c.cmd = cmd
	c.in = stdin
	return c, nil
}

// Load asks the kernel to read the file at path into the named dataset.
func (c *Client) Load(name, path string) (string, error) {
	return c.roundTrip(command{Type: "LoadCommand", Path: path, VarName: name})
}

// Execute runs code with the kernel's default engine.
func (c *Client) Execute(code string) (string, error) {
	return c.roundTrip(command{Type: "ExecuteCommand", Code: code})
}

// ExecuteIn runs code with the named engine.
func (c *Client) ExecuteIn(language, code string) (string, error) {
	return c.roundTrip(command{Type: "ExecuteCommand", Code: code, Language: language})
}

// GetInfo fetches the metadata report for the named dataset.
func (c *Client) GetInfo(name string) (string, error) {
	return c.roundTrip(command{Type: "GetInfoCommand", VarName: name})
}

// Send writes a raw command line verbatim and collects the response. It
// exists so tests can exercise the kernel's handling of malformed and
// unrecognized input.
func (c *Client) Send(line string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, err := fmt.Fprintln(c.w, line); err != nil {
		return "", fmt.Errorf("writing command: %w", err)
	}
	return c.collect()
}

// Close ends the session. For a spawned kernel it closes stdin and waits
// for the process to exit.
func (c *Client) Close() error {
	if c.in != nil {
		if err := c.in.Close(); err != nil {
			return err
		}
	}
	if c.cmd != nil {
		return c.cmd.Wait()
	}
	return nil
}

func (c *Client) roundTrip(cmd command) (string, error) {
	data, err := json.Marshal(cmd)
	if err != nil {
		return "", fmt.Errorf("encoding command: %w", err)
	}
	return c.Send(string(data))
}

// collect reads output lines up to the sentinel and returns them joined.
func (c *Client) collect() (string, error) {
	var out []byte
	for c.r.Scan() {
		line := c.r.Text()
		if line == kernel.Sentinel {
			if len(out) > 0 {
				out = out[:len(out)-1] // trailing newline
			}
			return string(out), nil
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	if err := c.r.Err(); err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return "", io.ErrUnexpectedEOF
}
