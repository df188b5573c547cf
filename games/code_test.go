package games

import (
	"strings"
	"testing"
)

func TestNewInviteCode_Shape(t *testing.T) {
	for i := 0; i < 500; i++ {
		code := NewInviteCode()
		if len(code) != CodeLength {
			t.Fatalf("len(%q) = %d, want %d", code, len(code), CodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(InviteAlphabet, r) {
				t.Fatalf("code %q has symbol %q outside the alphabet", code, r)
			}
		}
	}
}

func TestNewInviteCode_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewInviteCode()] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}

func TestInviteAlphabet(t *testing.T) {
	if len(InviteAlphabet) != 36 {
		t.Errorf("alphabet has %d symbols, want 36", len(InviteAlphabet))
	}
	if !ValidInviteSymbols(InviteAlphabet) {
		t.Error("alphabet should validate against itself")
	}
	if ValidInviteSymbols("abc123") {
		t.Error("lowercase should not validate")
	}
}

func TestCreateForm_Regenerate(t *testing.T) {
	f := NewCreateForm()
	if f.Code != DefaultInviteCode {
		t.Fatalf("Code %q, want %q", f.Code, DefaultInviteCode)
	}

	draws := []string{DefaultInviteCode, DefaultInviteCode, "QWERTY"}
	next := func() string {
		c := draws[0]
		draws = draws[1:]
		return c
	}

	f.Copied = true
	f.Regenerate(next)
	if f.Code != "QWERTY" {
		t.Errorf("Code %q, want QWERTY", f.Code)
	}
	if f.Copied {
		t.Error("Copied should reset on regenerate")
	}

	before := f.Code
	f.Regenerate(NewInviteCode)
	if f.Code == before {
		t.Error("regenerate should change the displayed code")
	}
}

func TestCreateForm_RegenerateGivesUp(t *testing.T) {
	f := NewCreateForm()

	calls := 0
	f.Regenerate(func() string {
		calls++
		return DefaultInviteCode
	})

	if calls != regenerateDraws {
		t.Errorf("drew %d times, want %d", calls, regenerateDraws)
	}
	if f.Code != DefaultInviteCode {
		t.Errorf("Code %q, want the last draw %q", f.Code, DefaultInviteCode)
	}
}

func TestValidInviteSymbols_MatchesAlphabet(t *testing.T) {
	for c := 0; c < 256; c++ {
		want := strings.IndexByte(InviteAlphabet, byte(c)) >= 0
		if got := ValidInviteSymbols(string([]byte{byte(c)})); got != want {
			t.Errorf("ValidInviteSymbols(%q) = %v, want %v", byte(c), got, want)
		}
	}

	if !ValidInviteSymbols(DefaultInviteCode) {
		t.Errorf("%q should be valid", DefaultInviteCode)
	}
	if ValidInviteSymbols("meme123") {
		t.Error("lowercase symbols should be rejected")
	}
}
