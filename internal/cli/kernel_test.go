package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halfmoss/quern/internal/kernel"
)

func resetKernelFlags() {
	kernelConfigPath = ""
	kernelLogLevel = ""
	kernelEngine = ""
}

func TestKernelCommand_Transcript(t *testing.T) {
	resetKernelFlags()
	t.Chdir(t.TempDir())
	path := writeCSV(t, "data.csv", "a,b\n1,x\n2,y\n")

	input := fmt.Sprintf(`{"type":"LoadCommand","path":%q,"varName":"df"}
{"type":"GetInfoCommand","varName":"df"}
`, path)

	var out, errOut bytes.Buffer
	kernelCmd.SetIn(strings.NewReader(input))
	kernelCmd.SetOut(&out)
	kernelCmd.SetErr(&errOut)
	kernelCmd.SetContext(context.Background())
	defer func() {
		kernelCmd.SetIn(nil)
		kernelCmd.SetOut(nil)
		kernelCmd.SetErr(nil)
	}()

	err := runKernel(kernelCmd, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out.String(), kernel.Sentinel))
	assert.Contains(t, out.String(), "Successfully loaded")
	assert.Contains(t, out.String(), "--- METADATA FOR df ---")
	assert.Empty(t, errOut.String())
}

func TestKernelCommand_BadConfigPath(t *testing.T) {
	resetKernelFlags()
	kernelConfigPath = "/nonexistent/quern.yaml"

	err := runKernel(kernelCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestKernelCommand_BadLogLevel(t *testing.T) {
	resetKernelFlags()
	t.Chdir(t.TempDir())
	kernelLogLevel = "loud"

	err := runKernel(kernelCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}
