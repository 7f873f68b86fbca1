package password

import (
	"strings"
	"testing"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	encoded, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected encoding: %s", encoded)
	}

	if !Verify("correct horse battery staple", encoded) {
		t.Fatal("expected matching password to verify")
	}
	if Verify("wrong password", encoded) {
		t.Fatal("expected mismatched password to fail")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := Hash("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct salts to produce distinct encodings")
	}
}

func TestVerifyRejectsMalformed(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
	} {
		if Verify("secret", encoded) {
			t.Fatalf("expected malformed hash to fail: %q", encoded)
		}
	}
}
