package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"itms_backend/internal/service"
)

func TestAuthHandlers_SignUpAndSignIn(t *testing.T) {
	auth := &mockAuth{signUpID: 42, genTokenToken: "tok123", parseID: 1}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// sign-up success
	w := doRequest(r, http.MethodPost, "/auth/sign-up", "",
		bytes.NewBufferString(`{"username":"u","password":"p"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("sign-up status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if int(m["id"].(float64)) != 42 {
		t.Fatalf("expected id=42, got %v", m["id"])
	}
	if auth.lastSignUpUsername != "u" || auth.lastSignUpPassword != "p" {
		t.Fatalf("sign-up args: %q/%q", auth.lastSignUpUsername, auth.lastSignUpPassword)
	}

	// sign-in success
	w = doRequest(r, http.MethodPost, "/auth/sign-in", "",
		bytes.NewBufferString(`{"username":"u","password":"p"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("sign-in status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}

	// sign-in invalid body → 400
	w = doRequest(r, http.MethodPost, "/auth/sign-in", "", bytes.NewBufferString(`{"username":1}`))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_BadCredentials(t *testing.T) {
	auth := &mockAuth{genTokenErr: errors.New("wrong password")}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := doRequest(r, http.MethodPost, "/auth/sign-in", "",
		bytes.NewBufferString(`{"username":"u","password":"wrong"}`))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want 401", w.Code)
	}
	var m map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["error"] != "invalid credentials" {
		t.Fatalf("error = %q", m["error"])
	}
}
