package dnsx

//
// Mapping errors to error kinds
//

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"syscall"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// Classify maps an error occurred during a query to an ErrorKind.
//
// We classify system errors first, because matching on strings is
// unreliable across platforms, and fall back to matching well known
// error-string suffixes for errors we cannot otherwise inspect.
func Classify(err error) model.ErrorKind {
	if errors.Is(err, ErrNoSuchHost) || errors.Is(err, ErrRefused) ||
		errors.Is(err, ErrServfail) || errors.Is(err, ErrMisbehaving) {
		return model.KindResolutionError
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return model.KindTimeout
	}
	if errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ECONNREFUSED) {
		return model.KindNetworkUnreachable
	}
	var addrError *net.AddrError
	if errors.As(err, &addrError) {
		return model.KindMalformedConfiguration
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return model.KindTimeout
	}
	return classifyWithStringSuffix(err)
}

// classifyWithStringSuffix is the classifier of last resort and only
// looks at the error string.
func classifyWithStringSuffix(err error) model.ErrorKind {
	s := err.Error()
	if strings.HasSuffix(s, "i/o timeout") {
		return model.KindTimeout
	}
	if strings.HasSuffix(s, "context deadline exceeded") {
		return model.KindTimeout
	}
	if strings.HasSuffix(s, "network is unreachable") {
		return model.KindNetworkUnreachable
	}
	if strings.HasSuffix(s, "no route to host") {
		return model.KindNetworkUnreachable
	}
	if strings.HasSuffix(s, "connection refused") {
		return model.KindNetworkUnreachable
	}
	if strings.HasSuffix(s, "missing port in address") {
		return model.KindMalformedConfiguration
	}
	// Anything we do not recognize will not get better by retrying.
	return model.KindResolutionError
}

// Retryable returns whether a failure of the given kind is transient
// and therefore worth retrying.
func Retryable(kind model.ErrorKind) bool {
	return kind == model.KindTimeout || kind == model.KindNetworkUnreachable
}
