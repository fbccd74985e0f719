/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package endpoint derives connection URLs for discovered endpoints and
// provides helpers for inspecting URL schemes.
package endpoint

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Supported transport schemes.
const (
	SchemeGRPC  = "grpc"
	SchemeGRPCS = "grpcs"
)

// IsTLSEnabled is a generic function that expects a URL and verifies if it
// has a grpcs or https prefix to return true for TLS enabled URLs or false
// otherwise
func IsTLSEnabled(url string) bool {
	tlsURL := strings.ToLower(url)
	return strings.HasPrefix(tlsURL, "https://") || strings.HasPrefix(tlsURL, "grpcs://")
}

// ToAddress is a utility function to trim the GRPC protocol prefix as it
// is not needed by GO. If the GRPC protocol is not found the url is
// returned unchanged.
func ToAddress(url string) string {
	if strings.HasPrefix(url, "grpc://") {
		return strings.TrimPrefix(url, "grpc://")
	}
	if strings.HasPrefix(url, "grpcs://") {
		return strings.TrimPrefix(url, "grpcs://")
	}
	return url
}

// HasProtocol is a utility function which verifies if a protocol is
// provided in the URL
func HasProtocol(url string) bool {
	return strings.Contains(url, "://")
}

// Scheme returns the protocol portion of the URL, or an empty string when
// none is present.
func Scheme(url string) string {
	i := strings.Index(url, "://")
	if i < 0 {
		return ""
	}
	return strings.ToLower(url[:i])
}

// Builder derives connection URLs for discovered endpoints. Scheme
// selection, from strongest to weakest: the ProtocolOverride setting, the
// scheme of the current target, and finally the secure default. The
// AsLocalhost setting substitutes localhost for the discovered host while
// keeping the node's declared port.
type Builder struct {
	asLocalhost      bool
	protocolOverride string
	currentTarget    string
}

// NewBuilder returns a URL builder with the given localhost substitution
// and protocol override settings.
func NewBuilder(asLocalhost bool, protocolOverride string) *Builder {
	return &Builder{
		asLocalhost:      asLocalhost,
		protocolOverride: strings.ToLower(protocolOverride),
	}
}

// WithCurrentTarget returns a copy of the builder whose scheme defaults to
// that of the given target URL. The receiver is not modified, so a builder
// shared by a session stays free of cross-call state.
func (b *Builder) WithCurrentTarget(targetURL string) *Builder {
	clone := *b
	clone.currentTarget = targetURL
	return &clone
}

// BuildURL returns the connection URL for the given discovered host and
// port.
func (b *Builder) BuildURL(host string, port uint32) (string, error) {
	if host == "" {
		return "", errors.New("Missing host parameter")
	}
	if port == 0 {
		return "", errors.New("Missing port parameter")
	}

	scheme := SchemeGRPCS
	if s := Scheme(b.currentTarget); s != "" {
		scheme = s
	}
	if b.protocolOverride != "" {
		scheme = b.protocolOverride
	}

	if b.asLocalhost {
		host = "localhost"
	}

	return fmt.Sprintf("%s://%s:%d", scheme, host, port), nil
}
