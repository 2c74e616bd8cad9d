package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Health(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["analysis_service"] != CheckOK {
		t.Errorf("expected analysis_service %q, got %q", CheckOK, r.Checks["analysis_service"])
	}
	if len(r.Failing()) != 0 {
		t.Errorf("expected no failing checks, got %v", r.Failing())
	}
}

func TestCheck_ServiceDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["analysis_service"] != CheckError {
		t.Errorf("expected analysis_service %q, got %q", CheckError, r.Checks["analysis_service"])
	}
	if f := r.Failing(); len(f) != 1 || f[0] != "analysis_service" {
		t.Errorf("failing = %v", f)
	}
}
