package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(400, "key pair has no public component")
	if err.GetCode() != 400 {
		t.Errorf("expected code 400, got %d", err.GetCode())
	}
	if err.GetMessage() != "key pair has no public component" {
		t.Errorf("unexpected message %q", err.GetMessage())
	}

	t.Logf("Error: %s", err.Error())
}

func TestWithMetadata(t *testing.T) {
	err := Decode("invalid point encoding")

	err2 := err.WithMetadata(map[string]string{})
	if err != err2 {
		t.Error("WithMetadata with empty map should return same instance")
	}

	err3 := err.WithMetadata(map[string]string{"curve": "p256", "op": "encrypt"})
	if err == err3 {
		t.Error("WithMetadata should return new instance")
	}

	metadata := err3.GetMetadata()
	if metadata["curve"] != "p256" || metadata["op"] != "encrypt" {
		t.Errorf("metadata not set correctly: %v", metadata)
	}
	if err.GetMetadata() != nil {
		t.Error("original error must stay unchanged")
	}
}

func TestWithCauseKeepsIdentity(t *testing.T) {
	sentinel := Exhausted("out of secure memory")
	cause := errors.New("pool limit 64 reached")
	err := sentinel.WithCause(cause)

	if err.GetCause() != cause {
		t.Error("cause not set correctly")
	}
	if !errors.Is(err, sentinel) {
		t.Error("wrapped error should match its sentinel")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause")
	}
	if errors.Is(err, Exhausted("something else")) {
		t.Error("different message must not match")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("boom"), KindUnknown},
		{"precondition", Precondition("empty"), KindPrecondition},
		{"decode", Decode("bad"), KindDecode},
		{"rejected", Rejected("bad signature"), KindRejected},
		{"provider", Provider("cipher"), KindProvider},
		{"incompatible", Incompatible("version"), KindIncompatible},
		{"exhausted", Exhausted("secmem"), KindExhausted},
		{"wrapped", Wrap(Decode("bad point"), 500, "decrypt"), KindUnknown},
		{"joined", Join(errors.New("x"), Decode("bad")), KindDecode},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Errorf("KindOf() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestFromError(t *testing.T) {
	wrappedErr := FromError(errors.New("standard error"))
	if wrappedErr.GetCode() != UnknownCode {
		t.Errorf("expected code %d, got %d", UnknownCode, wrappedErr.GetCode())
	}

	existingErr := Provider("hmac init failed")
	if FromError(existingErr) != existingErr {
		t.Error("FromError should return same instance for *Error")
	}
	if FromError(nil) != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func BenchmarkErrorString(b *testing.B) {
	err := Decode("invalid point encoding").
		WithMetadata(map[string]string{"curve": "p256", "op": "decrypt"}).
		WithCause(errors.New("x not on curve"))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = err.Error()
	}
}
