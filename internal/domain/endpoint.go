package domain

// HTTPMethod represents an HTTP method (e.g., GET, POST).
type HTTPMethod string

const (
	MethodGet  HTTPMethod = "GET"
	MethodPost HTTPMethod = "POST"
)

// Headers is a map representation of HTTP headers.
type Headers map[string]string

// JSONPathAssertion defines a JSONPath-based check on the response body.
type JSONPathAssertion struct {
	Exists   bool
	Eq       *string
	Contains *string
}

// ExpectSpec defines what a healthy response to an endpoint looks like.
type ExpectSpec struct {
	// Status is an expected HTTP status code (optional).
	Status *int

	// MaxLatencyMS is a maximum allowed latency in milliseconds (optional).
	MaxLatencyMS *int

	// JSONPath contains JSONPath assertions keyed by expression.
	JSONPath map[string]JSONPathAssertion
}

// EndpointSpec describes a single probe request against the backend.
// URL and header values may contain {{var}} placeholders resolved against
// the profile vars before the request is built.
type EndpointSpec struct {
	Name    string
	Method  HTTPMethod
	URL     string
	Headers Headers

	// JSONBody, when non-nil, is marshalled and sent as application/json.
	JSONBody map[string]any

	Expect ExpectSpec
}

// ResponseSnapshot stores a bounded view of the response.
// Kept generic so the domain does not depend on net/http types.
type ResponseSnapshot struct {
	Headers   map[string][]string `json:"headers,omitempty"`
	Body      []byte              `json:"body,omitempty"`
	Truncated bool                `json:"truncated,omitempty"`
}

// CallResult is the raw outcome of executing one EndpointSpec.
type CallResult struct {
	Name   string     `json:"name"`
	Method HTTPMethod `json:"method"`
	URL    string     `json:"url"`

	StatusCode int   `json:"status_code"`
	LatencyMS  int64 `json:"latency_ms"`

	Response ResponseSnapshot `json:"response"`
	Error    *CheckError      `json:"error,omitempty"`
}
