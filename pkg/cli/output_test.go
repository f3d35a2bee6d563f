package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := Output(map[string]int{"segments": 3}, OutputOptions{
		Format: FormatJSON,
		Writer: &buf,
	})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}

	var got map[string]int
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json output: %v", err)
	}
	if got["segments"] != 3 {
		t.Fatalf("got %v", got)
	}
}

func TestOutput_YAMLDefault(t *testing.T) {
	var buf bytes.Buffer
	err := Output(map[string]string{"name": "standup"}, OutputOptions{Writer: &buf})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if !strings.Contains(buf.String(), "name: standup") {
		t.Fatalf("unexpected yaml output: %q", buf.String())
	}
}

func TestOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	err := Output("hello world\n", OutputOptions{Format: FormatText, Writer: &buf})
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if buf.String() != "hello world\n" {
		t.Fatalf("text output = %q", buf.String())
	}
}

func TestOutput_UnsupportedFormat(t *testing.T) {
	err := Output("x", OutputOptions{Format: "xml", Writer: &bytes.Buffer{}})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
