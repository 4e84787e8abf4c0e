package domain

import "testing"

func TestDecodeEnvelope(t *testing.T) {
	body := []byte(`{"success":true,"message":"Leaderboard retrieved successfully","data":[{"id":1}]}`)

	env, err := DecodeEnvelope(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !env.Success {
		t.Fatal("expected success=true")
	}
	if env.Message != "Leaderboard retrieved successfully" {
		t.Fatalf("unexpected message: %q", env.Message)
	}
	if len(env.Data) == 0 {
		t.Fatal("expected data payload")
	}
}

func TestDecodeEnvelope_NotJSON(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("<html>502</html>")); err == nil {
		t.Fatal("expected error for non-JSON body")
	}
}

func TestDecodeEntries(t *testing.T) {
	data := []byte(`[{"rank":1,"userId":7,"username":"alice","nickname":"Alice","points":120}]`)

	entries, err := DecodeEntries(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Username != "alice" || e.Nickname != "Alice" || e.Points != 120 {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestDecodeEntries_Empty(t *testing.T) {
	entries, err := DecodeEntries(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries, got %v", entries)
	}
}

func TestDecodeEntries_Object(t *testing.T) {
	// Stats payloads are objects; decoding them as an entry list must fail
	// loudly rather than silently yielding nothing.
	if _, err := DecodeEntries([]byte(`{"totalUsers":10}`)); err == nil {
		t.Fatal("expected error for non-list data")
	}
}

func TestDecodeLogin(t *testing.T) {
	body := []byte(`{"user":{"id":1,"username":"root","nickname":"Root","role":"admin","points":0},"access_token":"eyJhbGciOi.payload.sig"}`)

	lr, err := DecodeLogin(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lr.User.ID != 1 || lr.User.Role != "admin" {
		t.Fatalf("unexpected user: %+v", lr.User)
	}
	if lr.AccessToken == "" {
		t.Fatal("expected access token")
	}
}

func TestTokenPrefix(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"short", MaskValue},
		{"eyJhbGciOiJIUzI1NiJ9", "eyJhbGci..."},
	}
	for _, c := range cases {
		if got := TokenPrefix(c.input); got != c.want {
			t.Errorf("TokenPrefix(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}
