package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// Envelope is the JSON shape every --json command writes.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code       string `json:"code"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion"`
	} `json:"error"`
}

// CaptureOutput returns what fn writes to stdout.
func CaptureOutput(t *testing.T, fn func()) string {
	t.Helper()
	stdout, _ := CaptureStreams(t, fn)
	return stdout
}

// CaptureStreams returns what fn writes to stdout and stderr.
func CaptureStreams(t *testing.T, fn func()) (stdout, stderr string) {
	t.Helper()

	oldOut, oldErr := os.Stdout, os.Stderr
	outR, outW := pipe(t)
	errR, errW := pipe(t)
	os.Stdout, os.Stderr = outW, errW
	defer func() { os.Stdout, os.Stderr = oldOut, oldErr }()

	outC := drain(outR)
	errC := drain(errR)

	fn()

	_ = outW.Close()
	_ = errW.Close()
	return <-outC, <-errC
}

func pipe(t *testing.T) (*os.File, *os.File) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	return r, w
}

func drain(r io.Reader) <-chan string {
	c := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		c <- buf.String()
	}()
	return c
}

// ExecuteCommand runs a command that needs no catalog and returns its stdout.
func ExecuteCommand(t *testing.T, cmd *cobra.Command) (string, error) {
	t.Helper()

	var executeErr error
	output := CaptureOutput(t, func() {
		executeErr = cmd.Execute()
	})
	return output, executeErr
}

// ParseEnvelope decodes a --json response.
func ParseEnvelope(t *testing.T, output string) Envelope {
	t.Helper()

	var env Envelope
	if err := json.Unmarshal([]byte(output), &env); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return env
}

// SetupCobraCommand sets args and silences cobra's own error printing.
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
