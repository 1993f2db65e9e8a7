package gate

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	v := NewValidator("gate-secret")

	payload, err := v.Sign("t-42", "2026-08-31", "UC-778")
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}

	got, err := v.Verify(payload)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if got.TicketID != "t-42" || got.VisitDate != "2026-08-31" || got.Code != "UC-778" {
		t.Errorf("Verify() = %+v, want t-42/2026-08-31/UC-778", got)
	}
}

func TestVerifyRejectsTamperedPayload(t *testing.T) {
	v := NewValidator("gate-secret")
	payload, err := v.Sign("t-42", "2026-08-31", "UC-778")
	if err != nil {
		t.Fatal(err)
	}

	tampered := strings.Replace(payload, "t-42", "t-43", 1)
	if _, err := v.Verify(tampered); !errors.Is(err, ErrBadSig) {
		t.Errorf("Verify(tampered) error = %v, want ErrBadSig", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := NewValidator("secret-a")
	payload, err := signer.Sign("t-1", "2026-08-31", "C1")
	if err != nil {
		t.Fatal(err)
	}

	verifier := NewValidator("secret-b")
	if _, err := verifier.Verify(payload); !errors.Is(err, ErrBadSig) {
		t.Errorf("Verify with other secret error = %v, want ErrBadSig", err)
	}
}

func TestVerifyRejectsStaleCode(t *testing.T) {
	v := NewValidator("gate-secret")
	v.now = func() time.Time { return time.Now().Add(-AllowedDrift - time.Minute) }
	payload, err := v.Sign("t-1", "2026-08-31", "C1")
	if err != nil {
		t.Fatal(err)
	}

	v.now = time.Now
	if _, err := v.Verify(payload); !errors.Is(err, ErrStale) {
		t.Errorf("Verify(stale) error = %v, want ErrStale", err)
	}
}

func TestVerifyRejectsMalformedPayloads(t *testing.T) {
	v := NewValidator("gate-secret")

	tests := []string{
		"",
		"a|b|c",
		"a|b|c|not-a-timestamp|sig",
		"a|b|c|d|e|f",
	}
	for _, payload := range tests {
		if _, err := v.Verify(payload); !errors.Is(err, ErrBadFormat) {
			t.Errorf("Verify(%q) error = %v, want ErrBadFormat", payload, err)
		}
	}
}

func TestSignRejectsSeparatorInSegments(t *testing.T) {
	v := NewValidator("gate-secret")
	if _, err := v.Sign("t|1", "2026-08-31", "C1"); !errors.Is(err, ErrBadSegment) {
		t.Errorf("Sign with separator error = %v, want ErrBadSegment", err)
	}
}

func TestMissingSecret(t *testing.T) {
	v := NewValidator("")
	if _, err := v.Sign("t-1", "2026-08-31", "C1"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("Sign without secret error = %v, want ErrNoSecret", err)
	}
	if _, err := v.Verify("a|b|c|1|sig"); !errors.Is(err, ErrNoSecret) {
		t.Errorf("Verify without secret error = %v, want ErrNoSecret", err)
	}
}

func TestPNG(t *testing.T) {
	v := NewValidator("gate-secret")
	payload, err := v.Sign("t-1", "2026-08-31", "C1")
	if err != nil {
		t.Fatal(err)
	}

	png, err := v.PNG(payload, 0)
	if err != nil {
		t.Fatalf("PNG() error = %v", err)
	}
	if len(png) == 0 {
		t.Error("PNG() returned empty image")
	}
	// PNG magic bytes.
	if !strings.HasPrefix(string(png), "\x89PNG") {
		t.Error("PNG() output is not a png image")
	}
}
