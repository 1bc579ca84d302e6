package explain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. A caller can act on these: fix the input, fix the
// configuration, retry later, or give up.
const (
	KindInvalidInput      = "INVALID_INPUT"
	KindMissingCredential = "MISSING_CREDENTIAL"
	KindQuotaOrRateLimit  = "QUOTA_OR_RATE_LIMIT"
	KindAuthError         = "AUTH_ERROR"
	KindMalformedOutput   = "EMPTY_OR_MALFORMED_OUTPUT"
	KindDeadlineExceeded  = "DEADLINE_EXCEEDED"
	KindGenericFailure    = "GENERIC_FAILURE"
)

var (
	// ErrMissingCredential is raised before any network call when no API key
	// is configured.
	ErrMissingCredential = errors.New("completion API key is not configured")
	// ErrEmptyCompletion marks a structurally empty provider response: no
	// choice, or an empty content string.
	ErrEmptyCompletion = errors.New("empty response from completion provider")
)

// InputError is a pre-flight validation failure; it never follows a network
// round trip.
type InputError struct {
	Detail string
}

func (e *InputError) Error() string { return e.Detail }

// UpstreamError carries the provider's HTTP status and a truncated body for
// classification and diagnosis.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion provider returned status %d: %s", e.Status, e.Body)
}

// Classified is a user-safe rendering of a pipeline failure. Raw is only set
// for malformed-output cases and never contains the credential.
type Classified struct {
	Kind       string `json:"error"`
	HTTPStatus int    `json:"-"`
	Detail     string `json:"detail,omitempty"`
	Hint       string `json:"hint,omitempty"`
	Raw        string `json:"raw,omitempty"`
}

// Classify maps a pipeline error onto the fixed taxonomy. Rules are ordered;
// the first match wins. The provider's error shapes are not uniform across
// failure modes, so part of the matching inspects message substrings, a
// documented fragility, contained here.
func Classify(err error) Classified {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return Classified{
			Kind:       KindInvalidInput,
			HTTPStatus: http.StatusBadRequest,
			Detail:     inputErr.Detail,
		}
	}

	if errors.Is(err, ErrMissingCredential) {
		return Classified{
			Kind:       KindMissingCredential,
			HTTPStatus: http.StatusInternalServerError,
			Detail:     "OPENAI_API_KEY is not set. Configure the key and restart the backend.",
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return Classified{
			Kind:       KindDeadlineExceeded,
			HTTPStatus: http.StatusGatewayTimeout,
			Detail:     "the completion provider did not answer within the configured timeout",
			Hint:       "Try again; shorten the document if it keeps timing out.",
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	status := 0
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		status = upstream.Status
	}

	switch {
	case status == http.StatusTooManyRequests,
		strings.Contains(lower, "insufficient_quota"),
		strings.Contains(lower, "exceeded your current quota"),
		strings.Contains(lower, "rate limit"),
		strings.Contains(msg, "429"):
		return Classified{
			Kind:       KindQuotaOrRateLimit,
			HTTPStatus: http.StatusTooManyRequests,
			Detail:     msg,
			Hint:       "Check billing/usage in the provider dashboard; activation can take a few minutes.",
		}

	case status == http.StatusUnauthorized, status == http.StatusForbidden,
		strings.Contains(lower, "invalid_api_key"),
		strings.Contains(lower, "incorrect api key"):
		return Classified{
			Kind:       KindAuthError,
			HTTPStatus: http.StatusUnauthorized,
			Detail:     msg,
			Hint:       "The API key is invalid or revoked. Create a new key; never post the key anywhere.",
		}
	}

	var parseErr *ParseFailure
	if errors.As(err, &parseErr) {
		return Classified{
			Kind:       KindMalformedOutput,
			HTTPStatus: http.StatusBadGateway,
			Detail:     parseErr.Error(),
			Raw:        parseErr.Raw,
		}
	}
	if errors.Is(err, ErrEmptyCompletion) {
		return Classified{
			Kind:       KindMalformedOutput,
			HTTPStatus: http.StatusBadGateway,
			Detail:     msg,
		}
	}

	return Classified{
		Kind:       KindGenericFailure,
		HTTPStatus: http.StatusInternalServerError,
		Detail:     msg,
	}
}
