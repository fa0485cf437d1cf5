package executil

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestRunPipelineSingleStage(t *testing.T) {
	out, err := RunPipeline(exec.Command("echo", "hello"))
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("output: got %q, want %q", out, "hello")
	}
}

func TestRunPipelineChainsStages(t *testing.T) {
	out, err := RunPipeline(
		exec.Command("echo", "hello world"),
		exec.Command("tr", "[:lower:]", "[:upper:]"),
	)
	if err != nil {
		t.Fatalf("RunPipeline failed: %v", err)
	}
	if out != "HELLO WORLD" {
		t.Errorf("output: got %q, want %q", out, "HELLO WORLD")
	}
}

func TestRunPipelineEmpty(t *testing.T) {
	out, err := RunPipeline()
	if err != nil || out != "" {
		t.Errorf("empty pipeline: got (%q, %v)", out, err)
	}
}

func TestRunPipelineReportsFailingStage(t *testing.T) {
	_, err := RunPipeline(
		exec.Command("false"),
		exec.Command("cat"),
	)
	if err == nil {
		t.Fatal("expected error from failing stage")
	}
	var cmdErr *CmdError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type: got %T", err)
	}
	if cmdErr.Argv[0] != "false" {
		t.Errorf("failing argv: got %v, want the false stage", cmdErr.Argv)
	}
}

func TestRunPipelineMissingCommand(t *testing.T) {
	_, err := RunPipeline(exec.Command("wictool-no-such-binary"))
	var cmdErr *CmdError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type: got %T (%v)", err, err)
	}
}

func TestRunCapturesStderr(t *testing.T) {
	err := Run("sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("expected error")
	}
	var cmdErr *CmdError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type: got %T", err)
	}
	if cmdErr.Stderr != "boom" {
		t.Errorf("stderr: got %q, want %q", cmdErr.Stderr, "boom")
	}
	if !strings.Contains(cmdErr.Error(), "boom") {
		t.Errorf("error message misses stderr: %q", cmdErr.Error())
	}
}

func TestRunSuccess(t *testing.T) {
	if err := Run("true"); err != nil {
		t.Errorf("Run(true) failed: %v", err)
	}
}
