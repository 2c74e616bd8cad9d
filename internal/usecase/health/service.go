package health

import (
	"context"
	"sort"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all dependencies answer.
	Healthy Status = "ok"
	// Degraded indicates the action surface is up but a dependency is not.
	Degraded Status = "degraded"
)

// CheckResult is one dependency's outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Failing returns the names of failing checks in sorted order.
func (r Report) Failing() []string {
	var out []string
	for name, res := range r.Checks {
		if res == CheckError {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Service runs dependency checks.
type Service struct {
	checks map[string]ServicePinger
}

// New creates a Service probing the analysis service.
func New(analysis ServicePinger) *Service {
	return &Service{checks: map[string]ServicePinger{"analysis_service": analysis}}
}

// Check runs every dependency check.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.checks))
	status := Healthy
	for name, p := range s.checks {
		if err := p.Health(ctx); err != nil {
			checks[name] = CheckError
			status = Degraded
			continue
		}
		checks[name] = CheckOK
	}
	return Report{Status: status, Checks: checks}
}
