/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fab holds the collaborator interfaces and shared configuration
// types consumed by the discovery subsystem. Implementations of the
// interfaces are supplied by the caller; the SDK only depends on the
// capabilities declared here.
package fab

import "time"

// SigningIdentity is the identity context used to authenticate discovery
// requests. It produces a digital signature over arbitrary bytes and
// exposes the MSP it belongs to.
type SigningIdentity interface {
	// MSPID returns the MSP id of the identity's organization.
	MSPID() string

	// Serialize returns the wire form of the identity, placed in the
	// request's authentication header.
	Serialize() ([]byte, error)

	// Sign signs the given message and returns the signature.
	Sign(msg []byte) ([]byte, error)
}

// Peer is a handle on a network node capable of endorsing transactions.
type Peer interface {
	// MSPID returns the MSP id of the peer's organization.
	MSPID() string

	// URL returns the connection URL of the peer.
	URL() string
}

// ConnectionState describes whether a resolved peer handle holds a live
// connection. Connection attempts during peer resolution are best-effort;
// an Unconnected handle is still usable and a consumer may retry later.
type ConnectionState int32

const (
	// Unconnected indicates that no connection is currently established.
	Unconnected ConnectionState = iota

	// Connected indicates that the handle holds an established connection.
	Connected
)

func (s ConnectionState) String() string {
	if s == Connected {
		return "connected"
	}
	return "unconnected"
}

// ChannelMembership is the caller's view of the peers already known on a
// channel. The resolver consults it so that a discovered descriptor reuses
// an existing, possibly-connected handle instead of opening a duplicate
// connection, and registers handles it builds for new endpoints.
type ChannelMembership interface {
	// Peer returns the known peer for the given network endpoint
	// (host:port), if any.
	Peer(endpoint string) (Peer, bool)

	// RegisterPeer records a newly resolved peer.
	RegisterPeer(peer Peer)
}

// PeerConfig holds the connection parameters of a discovery target.
type PeerConfig struct {
	// URL of the target, with an optional grpc:// or grpcs:// scheme.
	URL string

	// GRPCOptions per-target gRPC settings, keyed the same way the
	// connection profile does (allow-insecure, ssl-target-name-override,
	// keep-alive-time, keep-alive-timeout, keep-alive-permit, fail-fast).
	GRPCOptions map[string]interface{}

	// TLSCACerts PEM-encoded certificates trusted for this target.
	TLSCACerts []byte
}

// DiscoveryConfig carries the discovery session settings. It is supplied
// explicitly at session construction; there is no ambient process-wide
// configuration.
type DiscoveryConfig struct {
	// AsLocalhost substitutes localhost for discovered hosts while
	// keeping each node's declared port. Used when the network runs in
	// containers but the client does not.
	AsLocalhost bool

	// ProtocolOverride forces the given scheme (grpc or grpcs) on every
	// URL built for discovered endpoints, regardless of the current
	// target's own scheme.
	ProtocolOverride string

	// ConnectTimeout bounds best-effort connection attempts made while
	// resolving discovered peers.
	ConnectTimeout time.Duration

	// ResponseTimeout bounds each discovery call to a target.
	ResponseTimeout time.Duration

	// RefreshInterval, when positive, re-runs the last successful query
	// out of band and swaps the cached result wholesale.
	RefreshInterval time.Duration
}
