package output

import (
	"strings"
	"testing"
)

func TestPrinterBasicOutput(t *testing.T) {
	buffer := newCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), TestMode())

	// Test basic output methods
	printer.Print("hello")
	printer.Println("world")
	printer.Printf("number: %d", 42)

	result := buffer.String()

	if !strings.Contains(result, "hello") {
		t.Errorf("Expected output to contain 'hello', got: %s", result)
	}
	if !strings.Contains(result, "world\n") {
		t.Errorf("Expected output to contain 'world\\n', got: %s", result)
	}
	if !strings.Contains(result, "number: 42") {
		t.Errorf("Expected output to contain 'number: 42', got: %s", result)
	}
}

func TestPrinterSemanticOutput(t *testing.T) {
	buffer := newCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), TestMode())

	// Test semantic output methods (should use plain prefixes in test mode)
	printer.Info("information")
	printer.Success("completed")
	printer.Warning("careful")
	printer.Error("failed")

	lines := buffer.lines()

	// In test mode with plain styling, we expect prefixes
	expectedLines := []string{
		"ℹ information",
		"✓ completed",
		"⚠ careful",
		"✗ failed",
	}

	if len(lines) != len(expectedLines) {
		t.Fatalf("Expected %d lines, got %d: %v", len(expectedLines), len(lines), lines)
	}

	for i, expected := range expectedLines {
		if lines[i] != expected {
			t.Errorf("Line %d: expected '%s', got '%s'", i, expected, lines[i])
		}
	}
}

func TestPrinterWithMarkerStyles(t *testing.T) {
	buffer := newCaptureBuffer()
	mockProvider := newMarkerStyles()
	printer := NewPrinter(WithWriter(buffer), WithStyles(mockProvider))

	// Test that styles are applied when provider is available
	printer.Info("test message")
	printer.Success("success message")

	output := buffer.String()

	// Marker styles wrap text in [semantic]text[/semantic]
	if !strings.Contains(output, "[info]test message[/info]") {
		t.Errorf("Expected styled info output, got: %s", output)
	}
	if !strings.Contains(output, "[success]success message[/success]") {
		t.Errorf("Expected styled success output, got: %s", output)
	}
}

func TestPrinterWithUnavailableStyleProvider(t *testing.T) {
	buffer := newCaptureBuffer()
	mockProvider := newMarkerStyles()
	mockProvider.unavailable = true

	printer := NewPrinter(WithWriter(buffer), WithStyles(mockProvider))

	printer.Info("test message")

	result := buffer.String()

	// Should fall back to plain style since provider is not available
	if !strings.Contains(result, "ℹ test message") {
		t.Errorf("Expected plain style fallback, got: %s", result)
	}
}

func TestPrinterPlainMode(t *testing.T) {
	buffer := newCaptureBuffer()
	mockProvider := newMarkerStyles()
	printer := NewPrinter(WithWriter(buffer), WithStyles(mockProvider), PlainText())

	printer.Info("test message")
	printer.Success("success message")

	output := buffer.String()

	// Should use plain text even with available style provider
	if !strings.Contains(output, "ℹ test message") {
		t.Errorf("Expected plain text for info, got: %s", output)
	}
	if !strings.Contains(output, "✓ success message") {
		t.Errorf("Expected plain text for success, got: %s", output)
	}

	// Should not contain styled markup
	if strings.Contains(output, "[info]") || strings.Contains(output, "[success]") {
		t.Errorf("Should not contain styled markup in plain mode, got: %s", output)
	}
}

func TestPrinterJSONMode(t *testing.T) {
	buffer := newCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), JSON())

	printer.Info("test message")
	printer.Error("error message")

	lines := buffer.lines()

	// Should output JSON format
	if len(lines) != 2 {
		t.Fatalf("Expected 2 JSON lines, got %d: %v", len(lines), lines)
	}

	// Check that output contains JSON structure
	if !strings.Contains(lines[0], `"type":"info"`) {
		t.Errorf("Expected JSON with type:info, got: %s", lines[0])
	}
	if !strings.Contains(lines[0], `"message":"test message"`) {
		t.Errorf("Expected JSON with message, got: %s", lines[0])
	}
	if !strings.Contains(lines[1], `"type":"error"`) {
		t.Errorf("Expected JSON with type:error, got: %s", lines[1])
	}
}

func TestPrinterSilentMode(t *testing.T) {
	buffer := newCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), Silent())

	printer.Info("test message")
	printer.Print("another message")
	printer.Error("error message")

	output := buffer.String()

	// Should produce no output in silent mode
	if output != "" {
		t.Errorf("Expected no output in silent mode, got: '%s'", output)
	}
}

func TestPrinterWithPrefix(t *testing.T) {
	buffer := newCaptureBuffer()
	printer := NewPrinter(WithWriter(buffer), WithPrefix("[TEST] "), TestMode())

	printer.Info("message")

	output := buffer.String()

	if !strings.Contains(output, "[TEST] ℹ message") {
		t.Errorf("Expected prefixed output, got: %s", output)
	}
}
