package notify

import (
	"context"
	"errors"
	"net"
	"strings"
)

// Send failure reasons, used as log fields and metric labels.
const (
	ReasonTimeout          = "timeout"
	ReasonCanceled         = "canceled"
	ReasonDial             = "dial"
	ReasonTLS              = "tls"
	ReasonAuth             = "auth"
	ReasonRateLimited      = "rate_limited"
	ReasonInvalidRecipient = "invalid_recipient"
	ReasonRejected         = "rejected"
	ReasonNetwork          = "network"
	ReasonUnknown          = "unknown"
)

// DiagnoseSend maps a transport error onto a coarse reason code. It works on
// error text because SMTP replies and provider errors share no common type.
func DiagnoseSend(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return ReasonCanceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var netErr net.Error
	isNetErr := errors.As(err, &netErr)
	if isNetErr && netErr.Timeout() {
		return ReasonTimeout
	}

	s := strings.ToLower(err.Error())
	switch {
	case containsAny(s, "i/o timeout", "timeout"):
		return ReasonTimeout
	case containsAny(s, "connection refused", "no such host", "dial tcp", "connectex:"):
		return ReasonDial
	case strings.Contains(s, "x509:"),
		strings.Contains(s, "tls") && containsAny(s, "handshake", "certificate"):
		return ReasonTLS
	case containsAny(s, "5.7.8", "535", "username and password not accepted", "authentication failed"),
		strings.Contains(s, "auth") && strings.Contains(s, "failed"):
		return ReasonAuth
	case containsAny(s, "4.7.0", "rate limit", "try again later", "temporarily unavailable", "451", "421", "status 429"):
		return ReasonRateLimited
	case containsAny(s, "5.1.1", "user unknown", "mailbox not found"):
		return ReasonInvalidRecipient
	case containsAny(s, "5.7.1", "message rejected", "messagerejected", "policy", "dmarc", "spf"):
		return ReasonRejected
	case isNetErr:
		return ReasonNetwork
	default:
		return ReasonUnknown
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
