package downstream

import (
	"strconv"
	"strings"
)

const (
	DefaultErrorMessage    = "An unknown error occurred"
	TransportErrorMessage  = "Failed to reach the engineering data service"
	InvalidResponseMessage = "Invalid response from the engineering data service"
	TokenErrorMessage      = "Failed to obtain an access token for the engineering data service"
)

// Result is the normalized outcome of one downstream call. It never carries a
// panic or an unwrapped error past the client: callers inspect OK.
type Result struct {
	OK         bool
	StatusCode int
	Body       []byte
	Data       map[string]interface{}
	Message    string
	Err        error
}

// TransportFailure reports a failure where no usable HTTP response exists.
func (r *Result) TransportFailure() bool {
	return r != nil && r.Err != nil && r.StatusCode == 0
}

// ID returns the identifier stored under key, falling back to "id", first at the
// top level of the body and then inside a "data" object.
func (r *Result) ID(key string) string {
	if r == nil {
		return ""
	}
	return extractID(r.Data, key)
}

func extractID(data map[string]interface{}, key string) string {
	if data == nil {
		return ""
	}
	for _, k := range []string{key, "id"} {
		if k == "" {
			continue
		}
		if id := stringValue(data[k]); id != "" {
			return id
		}
	}
	if nested, ok := data["data"].(map[string]interface{}); ok {
		return extractID(nested, key)
	}
	return ""
}

// ExtractErrorMessage applies the fallback chain used for every non-success
// response: "message", then "detail" (a string, or an object carrying
// "message" or "error"), then DefaultErrorMessage.
func ExtractErrorMessage(data map[string]interface{}) string {
	if msg := stringValue(data["message"]); msg != "" {
		return msg
	}
	switch detail := data["detail"].(type) {
	case string:
		if strings.TrimSpace(detail) != "" {
			return detail
		}
	case map[string]interface{}:
		if msg := stringValue(detail["message"]); msg != "" {
			return msg
		}
		if msg := stringValue(detail["error"]); msg != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return ""
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}
