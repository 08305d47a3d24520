package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

// resetFlags restores every flag variable to its default.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	logLevel = ""
	logFormat = "text"
	backingName = "heap"
	checkInv = false

	stressOps = 100000
	stressWorkers = 1
	stressSeed = 1
	stressCapacity = 524288
	stressMaxSize = 0
	stressMetricsFile = ""
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	// Drain the pipe while fn runs; dumps can exceed the pipe buffer.
	done := make(chan struct{})
	var buf bytes.Buffer
	go func() {
		defer close(done)
		_, _ = buf.ReadFrom(r)
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	<-done
	r.Close()

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
