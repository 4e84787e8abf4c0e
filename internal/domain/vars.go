package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Vars is a key/value store used for placeholder resolution in endpoint
// specs ({{base_url}} and friends).
type Vars map[string]string

// Merge merges base and override vars (override wins) and returns a new map.
func Merge(base Vars, override Vars) Vars {
	out := Vars{}
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z_$][a-zA-Z0-9_.$-]*)\s*\}\}`)

// VarResolver resolves {{var}} placeholders in strings and JSON-like
// payloads. It supports the built-in {{$timestamp}}.
type VarResolver struct {
	now func() time.Time
}

// VarResolverOption configures VarResolver.
type VarResolverOption func(*VarResolver)

// WithNow overrides the clock (useful for tests).
func WithNow(now func() time.Time) VarResolverOption {
	return func(r *VarResolver) { r.now = now }
}

func NewVarResolver(opts ...VarResolverOption) *VarResolver {
	r := &VarResolver{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveString resolves placeholders in a string. Unknown variables are an
// error so a typo in a spec fails loudly instead of probing a bogus URL.
func (r *VarResolver) ResolveString(vars Vars, s string) (string, error) {
	var resolveErr error

	out := placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := strings.TrimSpace(placeholderRe.FindStringSubmatch(m)[1])

		if name == "$timestamp" {
			return strconv.FormatInt(r.now().Unix(), 10)
		}

		if v, ok := vars[name]; ok {
			return v
		}

		if resolveErr == nil {
			resolveErr = &OpError{
				Op:   "vars.resolve",
				Kind: KindMissingVar,
				Err:  fmt.Errorf("%w: %q", ErrMissingVar, name),
			}
		}
		return m
	})

	if resolveErr != nil {
		return "", resolveErr
	}
	return out, nil
}

// ResolveEndpoint resolves placeholders in an endpoint spec's URL, headers
// and JSON body string values, returning a resolved copy.
func (r *VarResolver) ResolveEndpoint(vars Vars, spec EndpointSpec) (EndpointSpec, error) {
	out := spec

	u, err := r.ResolveString(vars, spec.URL)
	if err != nil {
		return EndpointSpec{}, err
	}
	out.URL = u

	if spec.Headers != nil {
		h := Headers{}
		for k, v := range spec.Headers {
			rv, err := r.ResolveString(vars, v)
			if err != nil {
				return EndpointSpec{}, err
			}
			h[k] = rv
		}
		out.Headers = h
	}

	if spec.JSONBody != nil {
		body, err := r.resolveJSONValue(vars, map[string]any(spec.JSONBody))
		if err != nil {
			return EndpointSpec{}, err
		}
		out.JSONBody = body.(map[string]any)
	}

	return out, nil
}

// resolveJSONValue resolves string leaves recursively; maps and slices are
// copied, other scalar types pass through untouched.
func (r *VarResolver) resolveJSONValue(vars Vars, v any) (any, error) {
	switch t := v.(type) {
	case string:
		return r.ResolveString(vars, t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			rv, err := r.resolveJSONValue(vars, val)
			if err != nil {
				return nil, err
			}
			out[k] = rv
		}
		return out, nil
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			rv, err := r.resolveJSONValue(vars, val)
			if err != nil {
				return nil, err
			}
			out[i] = rv
		}
		return out, nil
	default:
		return v, nil
	}
}
