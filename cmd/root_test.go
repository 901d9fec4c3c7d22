package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func execute(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	color.NoColor = true

	root := newRootCmd("1.2.3", "abc123", "unknown")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	code = run(root, &errOut)
	return code, out.String(), errOut.String()
}

func TestRenderCommand(t *testing.T) {
	code, out, _ := execute(t, "render", "50", "100", "--width", "30", "--empty", "-")
	if code != exitOK {
		t.Fatalf("exit code = %d, want %d", code, exitOK)
	}
	if want := "[##########----------]  50.00%\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderCommandPlacements(t *testing.T) {
	code, out, errOut := execute(t, "render", "1", "4",
		"--width", "40", "--empty", ".", "--prefix", "dl", "--suffix", "eta",
		"--step", "after-prefix", "--ring", "after-suffix")
	if code != exitOK {
		t.Fatalf("exit code = %d: %s", code, errOut)
	}
	if want := "dl 1 / 4 [###............]  25.00% eta /\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderCommandBarLength(t *testing.T) {
	code, out, errOut := execute(t, "render", "1", "4", "--bar-length", "8", "--empty", ".", "--step", "after-suffix")
	if code != exitOK {
		t.Fatalf("exit code = %d: %s", code, errOut)
	}
	if want := "[##......]  25.00% 1 / 4\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		code    int
		message string
	}{
		{"too narrow", []string{"render", "1", "2", "--width", "10"}, exitTooSmall, "invalid size"},
		{"bad number", []string{"render", "abc", "10", "--width", "40"}, exitError, "argument type"},
		{"missing max", []string{"render", "3", "--width", "40"}, exitError, "missing argument"},
		{"collision", []string{"render", "1", "2", "--width", "40", "--percent", "in-bar", "--step", "in-bar"}, exitError, "invalid appearance"},
		{"bad ring", []string{"render", "1", "2", "--width", "40", "--ring", "after-prefix"}, exitError, "invalid appearance"},
		{"short bar", []string{"render", "1", "2", "--bar-length", "3"}, exitTooSmall, "invalid size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := execute(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit code = %d, want %d", code, tt.code)
			}
			if !strings.Contains(errOut, tt.message) {
				t.Errorf("stderr %q does not mention %q", errOut, tt.message)
			}
		})
	}
}

func TestRunCommand(t *testing.T) {
	code, _, errOut := execute(t, "run", "--max", "6", "--workers", "2", "--delay", "1ms", "--width", "50")
	if code != exitOK {
		t.Fatalf("exit code = %d: %s", code, errOut)
	}
	if !strings.Contains(errOut, "Completed 6/6 tasks") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestFitCommand(t *testing.T) {
	code, out, _ := execute(t, "fit", "hello world", "8")
	if code != exitOK || out != "|hello...|\n" {
		t.Errorf("fit = %d %q", code, out)
	}

	code, _, errOut := execute(t, "fit", "hello", "wide")
	if code != exitError || !strings.Contains(errOut, "not an integer") {
		t.Errorf("fit with bad width = %d %q", code, errOut)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := execute(t, "--version")
	if code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if want := "termbar version 1.2.3\n  commit: abc123\n"; out != want {
		t.Errorf("version = %q, want %q", out, want)
	}
}
