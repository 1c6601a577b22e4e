package utils

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestLogEvent(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	LogEvent(" req-42 ", "booking", "issue", "pnr=PNRAB12CD34")

	line := buf.String()
	for _, want := range []string{"[BOOKING]", "action=issue", "request_id=req-42", "detail=pnr=PNRAB12CD34"} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line %q missing %q", line, want)
		}
	}
}

func TestLogEventBlankRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	LogEvent("", "store", "sync", "cache refreshed")

	if !strings.Contains(buf.String(), "request_id=-") {
		t.Fatalf("log line %q missing placeholder request id", buf.String())
	}
}
