package search

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/tidwall/gjson"
)

// StatusError is returned when the cluster answers with a non-2xx status
type StatusError struct {
	Op         string
	StatusCode int
	Type       string
	Reason     string
}

func (e *StatusError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: status %d: %s: %s", e.Op, e.StatusCode, e.Type, e.Reason)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
}

// newStatusError extracts error.type/error.reason from an error body
func newStatusError(op string, status int, body []byte) *StatusError {
	e := &StatusError{Op: op, StatusCode: status}
	if len(body) > 0 && gjson.ValidBytes(body) {
		res := gjson.GetManyBytes(body, "error.type", "error.reason")
		e.Type = res[0].String()
		e.Reason = res[1].String()
		if e.Reason == "" {
			// some endpoints return {"error": "message"}
			if errStr := gjson.GetBytes(body, "error"); errStr.Type == gjson.String {
				e.Reason = errStr.String()
			}
		}
	}
	return e
}

// IsUnauthorized reports whether err is a 401/403 from the cluster
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && (se.StatusCode == 401 || se.StatusCode == 403)
}

// IsConnectionError reports whether err means the cluster could not be reached
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")
}

// IsTLSError reports whether err looks like an SSL/TLS mismatch
func IsTLSError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "tls") || strings.Contains(msg, "x509") ||
		strings.Contains(msg, "http response to https client") ||
		strings.Contains(msg, "malformed http response")
}
