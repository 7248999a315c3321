package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ddxfish/chatterm/internal/history"
)

var sample = []history.Message{
	{Content: "Hello", IsUser: true},
	{Content: "Hi there", Model: "gpt-4o"},
}

func TestRecordExporterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := (&RecordExporter{}).Export(sample, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	got := history.ParseRecords(buf.String())
	if len(got) != 2 || got[0].Content != "Hello" || got[1].Model != "gpt-4o" {
		t.Fatalf("parsed=%#v", got)
	}
}

func TestJSONExporter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{}).Export(sample, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"role": "user"`) || !strings.Contains(out, `"model": "gpt-4o"`) {
		t.Fatalf("json output:\n%s", out)
	}
}

func TestMarkdownExporterLabels(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(sample, &buf); err != nil {
		t.Fatalf("Export: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "**User:**") || !strings.Contains(out, "**gpt-4o:**") {
		t.Fatalf("markdown output:\n%s", out)
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	if _, err := New("docx"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestForExtensionDefaultsToRecord(t *testing.T) {
	if _, ok := ForExtension("weird").(*RecordExporter); !ok {
		t.Fatal("unknown extension must fall back to the record format")
	}
	if _, ok := ForExtension("md").(*MarkdownExporter); !ok {
		t.Fatal("md extension must pick the markdown exporter")
	}
}
