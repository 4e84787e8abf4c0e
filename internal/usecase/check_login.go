package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Yumouqianxia/predprobe/internal/domain"
	"github.com/Yumouqianxia/predprobe/internal/ports"
)

// CheckLogin verifies the auth flow: health endpoint first, then one login
// attempt per configured credential. When the backend is down the login
// attempts are reported as skipped rather than as a wall of timeouts.
type CheckLogin struct {
	caller ports.EndpointCaller
}

func NewCheckLogin(caller ports.EndpointCaller) *CheckLogin {
	return &CheckLogin{caller: caller}
}

func (uc *CheckLogin) Execute(ctx context.Context, profile domain.Profile) domain.SuiteResult {
	suite := domain.SuiteResult{
		Suite:     "login",
		Target:    profile.API.BaseURL,
		StartedAt: time.Now(),
	}

	vars := profile.Vars()
	vars["health_path"] = profile.API.HealthPath

	healthy, healthCheck := uc.checkHealth(ctx, vars)
	suite.Checks = append(suite.Checks, healthCheck)

	for _, cred := range profile.Logins {
		if !healthy {
			suite.Checks = append(suite.Checks, domain.CheckResult{
				Name:    "login " + cred.Username,
				Skipped: true,
				Message: "skipped: backend is not running",
			})
			continue
		}
		suite.Checks = append(suite.Checks, uc.checkLogin(ctx, cred, vars))
	}

	suite.EndedAt = time.Now()
	return suite
}

func (uc *CheckLogin) checkHealth(ctx context.Context, vars domain.Vars) (bool, domain.CheckResult) {
	spec := domain.EndpointSpec{
		Name:   "health",
		Method: domain.MethodGet,
		URL:    "{{base_url}}{{health_path}}",
	}

	call, err := uc.caller.Call(ctx, spec, vars)
	if err != nil {
		return false, domain.CheckResult{Name: "health", Message: err.Error()}
	}

	check := domain.CheckResult{
		Name:      "health",
		LatencyMS: call.LatencyMS,
	}

	if call.Error != nil {
		check.Error = call.Error
		check.Message = "backend is not running; start it before probing"
		return false, check
	}

	if call.StatusCode != http.StatusOK {
		check.Message = fmt.Sprintf("health returned %d", call.StatusCode)
		return false, check
	}

	check.Passed = true
	check.Message = "backend is running"
	return true, check
}

func (uc *CheckLogin) checkLogin(ctx context.Context, cred domain.Credential, vars domain.Vars) domain.CheckResult {
	spec := domain.EndpointSpec{
		Name:   "login " + cred.Username,
		Method: domain.MethodPost,
		URL:    "{{base_url}}/api/v1/auth/login",
		JSONBody: map[string]any{
			"username": cred.Username,
			"password": cred.Password,
		},
	}

	call, err := uc.caller.Call(ctx, spec, vars)
	if err != nil {
		return domain.CheckResult{Name: spec.Name, Message: err.Error()}
	}

	check := domain.CheckResult{
		Name:      spec.Name,
		LatencyMS: call.LatencyMS,
	}

	if call.Error != nil {
		check.Error = call.Error
		check.Message = "login request failed"
		return check
	}

	if call.StatusCode != http.StatusOK {
		check.Message = fmt.Sprintf("login rejected with status %d", call.StatusCode)
		if env, envErr := domain.DecodeEnvelope(call.Response.Body); envErr == nil && env.Message != "" {
			check.Details = append(check.Details, "message: "+env.Message)
		}
		return check
	}

	lr, decodeErr := domain.DecodeLogin(call.Response.Body)
	if decodeErr != nil {
		check.Message = decodeErr.Error()
		return check
	}
	if lr.AccessToken == "" {
		check.Message = "login succeeded but no access_token in response"
		return check
	}

	check.Passed = true
	check.Message = fmt.Sprintf("logged in as %s", lr.User.Username)
	check.Details = append(check.Details,
		fmt.Sprintf("user: id=%d username=%s nickname=%s role=%s points=%d",
			lr.User.ID, lr.User.Username, lr.User.Nickname, lr.User.Role, lr.User.Points),
		"token: "+domain.TokenPrefix(lr.AccessToken),
	)
	check.Details = append(check.Details, tokenSummary(lr.AccessToken)...)
	return check
}

// tokenSummary parses the access token without verifying its signature and
// reports the claims a developer cares about while debugging login issues.
// The probe has no signing key; verification is the backend's job.
func tokenSummary(token string) []string {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return []string{"token is not a parseable JWT: " + err.Error()}
	}

	var lines []string
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		lines = append(lines, fmt.Sprintf("token expires: %s (in %s)",
			exp.Format(time.RFC3339), time.Until(exp.Time).Round(time.Second)))
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		lines = append(lines, "token subject: "+sub)
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		lines = append(lines, "token role: "+role)
	}
	return lines
}
