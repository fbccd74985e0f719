/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"time"

	"github.com/spf13/cast"
	"google.golang.org/grpc/keepalive"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
)

const defaultConnectTimeout = 3 * time.Second

type params struct {
	connectTimeout  time.Duration
	keepAliveParams keepalive.ClientParameters
	certificates    []byte
	serverName      string
	failFast        bool
	insecure        bool
}

func defaultParams() *params {
	return &params{
		connectTimeout: defaultConnectTimeout,
		failFast:       true,
	}
}

// Opt is a connection option.
type Opt func(*params)

// WithConnectTimeout sets the timeout for establishing the connection.
func WithConnectTimeout(timeout time.Duration) Opt {
	return func(p *params) {
		if timeout > 0 {
			p.connectTimeout = timeout
		}
	}
}

// WithTLSCerts sets the PEM-encoded trust material for a TLS connection.
func WithTLSCerts(certs []byte) Opt {
	return func(p *params) {
		p.certificates = certs
	}
}

// WithServerName overrides the expected server name on the TLS handshake.
func WithServerName(serverName string) Opt {
	return func(p *params) {
		p.serverName = serverName
	}
}

// WithKeepAliveParams sets the gRPC keepalive parameters.
func WithKeepAliveParams(kap keepalive.ClientParameters) Opt {
	return func(p *params) {
		p.keepAliveParams = kap
	}
}

// WithInsecure allows a plaintext connection for URLs without a scheme.
func WithInsecure() Opt {
	return func(p *params) {
		p.insecure = true
	}
}

// WithFailFast sets the gRPC fail-fast behavior.
func WithFailFast(failFast bool) Opt {
	return func(p *params) {
		p.failFast = failFast
	}
}

// OptsFromPeerConfig derives connection options from a peer config's
// GRPCOptions map, keyed the same way the connection profile does.
func OptsFromPeerConfig(config *fab.PeerConfig) []Opt {
	opts := []Opt{
		WithTLSCerts(config.TLSCACerts),
		WithKeepAliveParams(keepAliveFromConfig(config)),
	}
	if name, ok := config.GRPCOptions["ssl-target-name-override"].(string); ok {
		opts = append(opts, WithServerName(name))
	}
	if allowInsecure, ok := config.GRPCOptions["allow-insecure"].(bool); ok && allowInsecure {
		opts = append(opts, WithInsecure())
	}
	if ff, ok := config.GRPCOptions["fail-fast"]; ok {
		opts = append(opts, WithFailFast(cast.ToBool(ff)))
	}
	return opts
}

func keepAliveFromConfig(config *fab.PeerConfig) keepalive.ClientParameters {
	var kap keepalive.ClientParameters
	if kaTime, ok := config.GRPCOptions["keep-alive-time"]; ok {
		kap.Time = cast.ToDuration(kaTime)
	}
	if kaTimeout, ok := config.GRPCOptions["keep-alive-timeout"]; ok {
		kap.Timeout = cast.ToDuration(kaTimeout)
	}
	if kaPermit, ok := config.GRPCOptions["keep-alive-permit"]; ok {
		kap.PermitWithoutStream = cast.ToBool(kaPermit)
	}
	return kap
}
