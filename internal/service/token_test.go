package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/msomdec/item-ledger/internal/domain"
	"github.com/msomdec/item-ledger/internal/service"
)

const testTokenSecret = "token-codec-test-secret-0123456789ab"

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := service.NewTokenCodec(testTokenSecret)

	subjects := []string{
		"a@x.com",
		"deadpool@example.com",
		"user+tag@sub.domain.org",
	}

	for _, subject := range subjects {
		token, err := codec.Issue(subject)
		if err != nil {
			t.Fatalf("Issue(%q): %v", subject, err)
		}

		got, err := codec.Verify(token)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if got != subject {
			t.Fatalf("expected subject %q, got %q", subject, got)
		}
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := service.NewTokenCodec(testTokenSecret)
	other := service.NewTokenCodec("a-completely-different-secret-key-00")

	token, err := other.Issue("victim@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestTokenCodec_TamperedPayload(t *testing.T) {
	codec := service.NewTokenCodec(testTokenSecret)

	token, err := codec.Issue("honest@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a byte in the payload segment; the signature no longer matches.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}

	if _, err := codec.Verify(string(tampered)); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := service.NewTokenCodec(testTokenSecret)

	for _, bad := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := codec.Verify(bad); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", bad, err)
		}
	}
}

func TestTokenCodec_MissingSubject(t *testing.T) {
	codec := service.NewTokenCodec(testTokenSecret)

	// Well-formed and correctly signed, but without a sub claim.
	claims := jwt.MapClaims{"iat": time.Now().Unix(), "invalid": "payload"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testTokenSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := codec.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}
