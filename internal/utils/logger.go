package utils

import (
	"log"
	"strings"
)

// LogEvent prints one log line tagged with module, action and request id.
// Detail should be a short summary; never log passenger data or documents.
func LogEvent(requestID, module, action, detail string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s detail=%s", strings.ToUpper(module), action, req, detail)
}
