package app

import (
	"errors"
	"testing"
	"time"

	"pfas-demo/internal/pkg/jwtutil"
	"pfas-demo/internal/repository/memory"
)

func newTestAuth() *AuthService {
	return NewAuthService(memory.NewUserRepository(), "test-secret", time.Minute)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuth()

	cases := []struct {
		in   RegisterInput
		want error
	}{
		{RegisterInput{Username: "", Email: "a@b.co", Password: "longenough"}, ErrInvalidInput},
		{RegisterInput{Username: "ann", Email: "", Password: "longenough"}, ErrEmailRequired},
		{RegisterInput{Username: "ann", Email: "not-an-email", Password: "longenough"}, ErrEmailInvalid},
		{RegisterInput{Username: "ann", Email: "a@b.co", Password: "short"}, ErrPasswordTooShort},
	}
	for _, tc := range cases {
		if _, err := svc.Register(tc.in); !errors.Is(err, tc.want) {
			t.Errorf("Register(%+v) error = %v, want %v", tc.in, err, tc.want)
		}
	}
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newTestAuth()

	reg, err := svc.Register(RegisterInput{Username: "ann", Email: "Ann@Example.com", Password: "longenough"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if reg.User.Email != "ann@example.com" {
		t.Fatalf("email not normalized: %q", reg.User.Email)
	}

	if _, err := svc.Register(RegisterInput{Username: "ann", Email: "x@example.com", Password: "longenough"}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("duplicate username error = %v", err)
	}
	if _, err := svc.Register(RegisterInput{Username: "bob", Email: "ann@example.com", Password: "longenough"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("duplicate email error = %v", err)
	}

	login, err := svc.Login(LoginInput{Username: "ann", Password: "longenough"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	claims, err := jwtutil.ParseToken("test-secret", login.Token)
	if err != nil || claims.UserID != reg.User.ID {
		t.Fatalf("token claims = %+v, err = %v", claims, err)
	}

	if _, err := svc.Login(LoginInput{Username: "ann", Password: "wrong-password"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("bad password error = %v", err)
	}
	if _, err := svc.Login(LoginInput{Username: "nobody", Password: "whatever1"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("unknown user error = %v", err)
	}
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc := newTestAuth()
	in := RegisterInput{Username: "demo", Email: "demo@example.com", Password: "demo-password"}

	if err := svc.EnsureUser(in); err != nil {
		t.Fatalf("EnsureUser() error = %v", err)
	}
	if err := svc.EnsureUser(in); err != nil {
		t.Fatalf("second EnsureUser() error = %v", err)
	}
	if _, err := svc.Login(LoginInput{Username: "demo", Password: "demo-password"}); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
}
