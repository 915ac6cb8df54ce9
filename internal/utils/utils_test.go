package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestSHA256HasherKnownDigest(t *testing.T) {
	got, err := SHA256Hasher{}.Hash("abc")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Fatalf("Hash(abc) = %s, want %s", got, want)
	}
}

func TestBcryptHasherVerifies(t *testing.T) {
	h, err := NewPasswordHasher("bcrypt", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewPasswordHasher: %v", err)
	}
	hashed, err := h.Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte("secret")); err != nil {
		t.Fatalf("bcrypt hash does not verify: %v", err)
	}
}

func TestNewPasswordHasherRejectsUnknown(t *testing.T) {
	if _, err := NewPasswordHasher("md5", 0); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewPasswordHasher("bcrypt", 99); err == nil {
		t.Fatal("expected cost range error")
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query     string
		wantSkip  int
		wantLimit int
		wantErr   bool
	}{
		{"", 0, 100, false},
		{"skip=5&limit=10", 5, 10, false},
		{"limit=0", 0, 0, false},
		{"skip=-1", 0, 0, true},
		{"limit=ten", 0, 0, true},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/tasks/?"+tt.query, nil)
		p, err := ParsePagination(r)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tt.query)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.query, err)
		}
		if p.Skip != tt.wantSkip || p.Limit != tt.wantLimit {
			t.Fatalf("%q: got %+v", tt.query, p)
		}
	}
}

func TestParseID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/tasks/7", nil)
	r.SetPathValue("id", "7")
	id, err := ParseID(r)
	if err != nil || id != 7 {
		t.Fatalf("ParseID = %d, %v", id, err)
	}

	r.SetPathValue("id", "abc")
	if _, err := ParseID(r); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
}

func TestDecodeJSONRequestWritesBadRequest(t *testing.T) {
	var v struct {
		Priority int `json:"priority"`
	}
	r := httptest.NewRequest(http.MethodPost, "/tasks/", strings.NewReader(`{"priority": "high"}`))
	rec := httptest.NewRecorder()

	if err := DecodeJSONRequest(rec, r, &v); err == nil {
		t.Fatal("expected decode error")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	if !strings.Contains(body["detail"], "priority") {
		t.Fatalf("detail should name the field: %q", body["detail"])
	}
}

func TestDecodeJSONRequestEmptyBody(t *testing.T) {
	var v map[string]any
	r := httptest.NewRequest(http.MethodPost, "/tasks/", strings.NewReader(""))
	rec := httptest.NewRecorder()
	if err := DecodeJSONRequest(rec, r, &v); err == nil {
		t.Fatal("expected error for empty body")
	}
	if !strings.Contains(rec.Body.String(), "Request body is required") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestWriteJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSONResponse(rec, http.StatusCreated, map[string]int{"id": 3})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"id":3}` {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
