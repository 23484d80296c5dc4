package infra

import (
	"context"
	"testing"
	"time"
)

func TestNewJWTManager_EmptySecret(t *testing.T) {
	if _, err := NewJWTManager("  ", time.Hour); err != ErrEmptySecret {
		t.Fatalf("err = %v, want ErrEmptySecret", err)
	}
}

func TestJWTManager_IssueAndVerify(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	raw, exp, err := m.Issue("user-1", "driver")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("expiry %v is not in the future", exp)
	}

	tok, err := m.VerifyIDToken(context.Background(), raw)
	if err != nil {
		t.Fatalf("VerifyIDToken: %v", err)
	}
	if tok.UID != "user-1" || tok.Role() != "driver" {
		t.Errorf("token = %+v, want user-1/driver", tok)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	m, _ := NewJWTManager("test-secret", time.Hour)
	other, _ := NewJWTManager("other-secret", time.Hour)
	raw, _, _ := other.Issue("user-1", "rider")

	if _, err := m.VerifyIDToken(context.Background(), raw); err == nil {
		t.Error("token signed with another secret was accepted")
	}
	if _, err := m.VerifyIDToken(context.Background(), "not-a-jwt"); err == nil {
		t.Error("garbage token was accepted")
	}

	expired, _ := NewJWTManager("test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Issue("user-1", "rider")
	if _, err := m.VerifyIDToken(context.Background(), old); err == nil {
		t.Error("expired token was accepted")
	}
}

func TestVerifiedToken_Role(t *testing.T) {
	tok := &VerifiedToken{UID: "u", Claims: map[string]interface{}{}}
	if tok.Role() != "" {
		t.Errorf("Role() = %q, want empty", tok.Role())
	}
	tok.Claims["role"] = 42
	if tok.Role() != "" {
		t.Errorf("non-string role = %q, want empty", tok.Role())
	}
}

func TestChainVerifier(t *testing.T) {
	ctx := context.Background()
	local, _ := NewJWTManager("local-secret", time.Hour)
	managed, _ := NewJWTManager("managed-secret", time.Hour)
	stranger, _ := NewJWTManager("stranger-secret", time.Hour)

	chain := ChainVerifier(local, nil, managed)
	for _, issuer := range []*JWTManager{local, managed} {
		raw, _, _ := issuer.Issue("user-1", "rider")
		tok, err := chain.VerifyIDToken(ctx, raw)
		if err != nil || tok.UID != "user-1" || tok.Role() != "rider" {
			t.Errorf("chain rejected a token it should accept: %+v, %v", tok, err)
		}
	}

	raw, _, _ := stranger.Issue("user-2", "driver")
	if _, err := chain.VerifyIDToken(ctx, raw); err == nil {
		t.Error("chain accepted a token signed with an unknown secret")
	}

	if _, err := ChainVerifier(nil).VerifyIDToken(ctx, raw); err != ErrNoVerifier {
		t.Errorf("empty chain: err = %v, want ErrNoVerifier", err)
	}
	if ChainVerifier(local) != TokenVerifier(local) {
		t.Error("single verifier should not be wrapped")
	}
}
