package service

import (
	"errors"
	"testing"
	"time"
)

func TestLinkService_IssueVerify(t *testing.T) {
	svc, err := NewLinkService("secret", 10*time.Minute)
	if err != nil {
		t.Fatalf("new link service: %v", err)
	}
	token, expires, err := svc.Issue("r1", ArtifactDocument)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" || expires.IsZero() {
		t.Fatalf("expected token and expiry")
	}
	if err := svc.Verify(token, "r1", ArtifactDocument); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := svc.Verify(token, "r2", ArtifactDocument); !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("expected ErrLinkInvalid for other report, got %v", err)
	}
	if err := svc.Verify(token, "r1", ArtifactChart); !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("expected ErrLinkInvalid for other artifact, got %v", err)
	}
}

func TestLinkService_Expired(t *testing.T) {
	svc, err := NewLinkService("secret", time.Minute)
	if err != nil {
		t.Fatalf("new link service: %v", err)
	}
	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }
	token, _, err := svc.Issue("r1", ArtifactChart)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc.now = func() time.Time { return issued.Add(2 * time.Minute) }
	if err := svc.Verify(token, "r1", ArtifactChart); !errors.Is(err, ErrLinkExpired) {
		t.Fatalf("expected ErrLinkExpired, got %v", err)
	}
}

func TestLinkService_RejectsForeignSignature(t *testing.T) {
	a, _ := NewLinkService("secret-a", time.Minute)
	b, _ := NewLinkService("secret-b", time.Minute)
	token, _, err := a.Issue("r1", ArtifactChart)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := b.Verify(token, "r1", ArtifactChart); !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("expected ErrLinkInvalid, got %v", err)
	}
	if err := a.Verify("", "r1", ArtifactChart); !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("expected ErrLinkInvalid for empty token, got %v", err)
	}
}

func TestLinkService_RandomKeyWhenUnset(t *testing.T) {
	svc, err := NewLinkService("", 0)
	if err != nil {
		t.Fatalf("new link service: %v", err)
	}
	if len(svc.secret) != 32 {
		t.Fatalf("expected generated 32 byte key, got %d", len(svc.secret))
	}
	if _, _, err := svc.Issue("", ArtifactChart); !errors.Is(err, ErrLinkInvalid) {
		t.Fatalf("expected ErrLinkInvalid for empty report id, got %v", err)
	}
}
