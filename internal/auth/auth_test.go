package auth

import (
	"testing"
	"time"

	"winespace/internal/model"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("expected the password to match")
	}
	if CheckPassword(hash, "wrong horse") {
		t.Error("expected a different password to fail")
	}
	if _, err := HashPassword("short"); err == nil {
		t.Error("expected short passwords to be rejected")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	user := model.User{Meta: model.Meta{Id: "u1"}, Email: "cellar@farm.example", Role: model.RoleProducer}

	token, err := issuer.Issue(user, time.Now())
	if err != nil {
		t.Fatal(err)
	}

	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserId() != "u1" || claims.Role != model.RoleProducer || claims.Email != user.Email {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := NewTokenIssuer("other", time.Hour).Parse(token); err == nil {
		t.Error("expected a token signed with another secret to fail")
	}
}

func TestExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	token, err := issuer.Issue(model.User{Meta: model.Meta{Id: "u1"}}, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := issuer.Parse(token); err == nil {
		t.Error("expected an expired token to fail")
	}
}
