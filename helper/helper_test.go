package helper

import (
	"cinema_booking/model"
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	in := model.TokenClaim{AccountId: 42, Username: "alice", Role: "CUSTOMER"}
	signed, err := GenerateAccessToken(in)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	token, err := ParseToken(signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, ok := ClaimsFromToken(token)
	if !ok {
		t.Fatalf("claims not readable")
	}
	if got != in {
		t.Fatalf("claims = %+v, want %+v", got, in)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "one")
	signed, err := GenerateRefreshToken(model.TokenClaim{AccountId: 1})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	t.Setenv("JWT_SECRET", "two")
	if _, err := ParseToken(signed); err == nil {
		t.Fatalf("token signed with another secret was accepted")
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("secret123", hash) {
		t.Fatalf("matching password rejected")
	}
	if CheckPasswordHash("secret124", hash) {
		t.Fatalf("wrong password accepted")
	}
}
