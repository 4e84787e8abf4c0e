package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
	ucassert "github.com/Yumouqianxia/predprobe/internal/usecase/assert"
)

// CheckAPI drives the leaderboard endpoints and verifies the response
// envelope on each.
type CheckAPI struct {
	caller ports.EndpointCaller
}

func NewCheckAPI(caller ports.EndpointCaller) *CheckAPI {
	return &CheckAPI{caller: caller}
}

func (uc *CheckAPI) Execute(ctx context.Context, profile domain.Profile) domain.SuiteResult {
	suite := domain.SuiteResult{
		Suite:     "api",
		Target:    profile.API.BaseURL,
		StartedAt: time.Now(),
	}

	vars := profile.Vars()

	for _, spec := range leaderboardSpecs() {
		suite.Checks = append(suite.Checks, uc.checkEndpoint(ctx, spec, vars))
	}

	suite.EndedAt = time.Now()
	return suite
}

func (uc *CheckAPI) checkEndpoint(ctx context.Context, spec domain.EndpointSpec, vars domain.Vars) domain.CheckResult {
	call, err := uc.caller.Call(ctx, spec, vars)
	if err != nil {
		// Profile-level failure (bad placeholder, unbuildable request).
		return domain.CheckResult{
			Name:    spec.Name,
			Passed:  false,
			Message: err.Error(),
		}
	}

	check := domain.CheckResult{
		Name:      spec.Name,
		LatencyMS: call.LatencyMS,
	}

	if call.Error != nil {
		check.Error = call.Error
		check.Message = fmt.Sprintf("%s %s failed", call.Method, call.URL)
		return check
	}

	asserts := ucassert.Evaluate(spec.Expect, call.StatusCode, call.LatencyMS, call.Response.Body)

	passed := true
	for _, a := range asserts {
		if !a.Passed {
			passed = false
			check.Details = append(check.Details, "assert: "+a.Message)
		}
	}
	check.Passed = passed
	check.Message = fmt.Sprintf("%s %s -> %d", call.Method, call.URL, call.StatusCode)

	check.Details = append(check.Details, summarizeEnvelope(call.Response.Body)...)
	return check
}

// summarizeEnvelope adds human-oriented lines about the payload: the backend
// message, the entry count, and the first ranked user when present.
func summarizeEnvelope(body []byte) []string {
	env, err := domain.DecodeEnvelope(body)
	if err != nil {
		return []string{err.Error()}
	}

	var lines []string
	if env.Message != "" {
		lines = append(lines, "message: "+env.Message)
	}

	entries, err := domain.DecodeEntries(env.Data)
	if err != nil {
		// Stats and rank payloads are objects, not entry lists.
		return lines
	}
	if len(entries) == 0 {
		return lines
	}

	lines = append(lines, fmt.Sprintf("entries: %d", len(entries)))
	first := entries[0]
	lines = append(lines, fmt.Sprintf("top: %s (%s) - %d points", first.Username, first.Nickname, first.Points))
	return lines
}

func leaderboardSpecs() []domain.EndpointSpec {
	ok := 200
	yes := "true"

	envelopeOK := domain.ExpectSpec{
		Status: &ok,
		JSONPath: map[string]domain.JSONPathAssertion{
			"$.success": {Eq: &yes},
			"$.data":    {Exists: true},
		},
	}

	return []domain.EndpointSpec{
		{
			Name:   "global leaderboard",
			Method: domain.MethodGet,
			URL:    "{{base_url}}/api/leaderboard",
			Expect: envelopeOK,
		},
		{
			Name:   "tournament leaderboard",
			Method: domain.MethodGet,
			URL:    "{{base_url}}/api/leaderboard?tournament={{tournament}}&limit={{limit}}",
			Expect: envelopeOK,
		},
		{
			Name:   "leaderboard stats",
			Method: domain.MethodGet,
			URL:    "{{base_url}}/api/leaderboard/stats",
			Expect: envelopeOK,
		},
		{
			Name:   "user rank",
			Method: domain.MethodGet,
			URL:    "{{base_url}}/api/leaderboard/users/{{user_id}}/rank",
			Expect: envelopeOK,
		},
	}
}
