package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBuilderDefaults(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().Write(rr)

	if rr.Code != http.StatusOK {
		t.Fatalf("default status = %d, want 200", rr.Code)
	}
	if rr.Header().Get("HX-Trigger") != "" {
		t.Fatalf("no triggers expected, got %q", rr.Header().Get("HX-Trigger"))
	}
}

func TestBuilderTriggersAreJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		TriggerRecordCreated("abc").
		TriggerOverviewRefresh().
		Write(rr)

	header := rr.Header().Get("HX-Trigger")
	var triggers map[string]interface{}
	if err := json.Unmarshal([]byte(header), &triggers); err != nil {
		t.Fatalf("HX-Trigger is not JSON: %q", header)
	}
	created, ok := triggers["record:created"].(map[string]interface{})
	if !ok || created["id"] != "abc" {
		t.Fatalf("record:created payload wrong: %v", triggers)
	}
	if _, ok := triggers["overview:refresh"]; !ok {
		t.Fatalf("overview:refresh missing: %v", triggers)
	}
}

func TestBuilderBodyAndStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHTMXResponse().
		Status(http.StatusCreated).
		BodyHTML(`<div class="success">ok</div>`).
		Write(rr)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "success") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorResponse(http.StatusBadRequest, `<script>alert(1)</script>`).Write(rr)

	body := rr.Body.String()
	if strings.Contains(body, "<script>") {
		t.Fatalf("message not escaped: %s", body)
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup: %s", body)
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	MethodNotAllowedError("POST, DELETE").Write(rr)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
	if rr.Header().Get("Allow") != "POST, DELETE" {
		t.Fatalf("Allow = %q", rr.Header().Get("Allow"))
	}
}

func TestRequireMethodGuards(t *testing.T) {
	post := httptest.NewRequest(http.MethodPost, "/x", nil)
	if resp := RequirePOST(post); resp != nil {
		t.Fatal("POST must pass RequirePOST")
	}
	get := httptest.NewRequest(http.MethodGet, "/x", nil)
	if resp := RequirePOST(get); resp == nil {
		t.Fatal("GET must fail RequirePOST")
	}
	del := httptest.NewRequest(http.MethodDelete, "/x", nil)
	if resp := RequireDeleteOrPOST(del); resp != nil {
		t.Fatal("DELETE must pass RequireDeleteOrPOST")
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  hello  ", "hello"},
		{"a\x00b\x1fc", "abc"},
		{"keep\ttabs\nand newlines", "keep\ttabs\nand newlines"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
