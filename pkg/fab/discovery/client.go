/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"context"
	"strings"
	"sync"

	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
	"github.com/pkg/errors"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/multi"
	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
	"github.com/tongyuhu/fabric-sdk-node/pkg/fab/comm"
)

// Target is one discovery service endpoint a signed query can be sent to.
type Target interface {
	// URL returns the target's connection URL.
	URL() string

	// Connect establishes the target's connection if not already
	// established.
	Connect(ctx context.Context) error

	// Discover submits the signed query and returns the raw query
	// results, one per query in the request.
	Discover(ctx context.Context, signed *SignedQuery) ([]*discoverypb.QueryResult, error)

	// Close releases the target's connection.
	Close()
}

// DiscoveryError annotates a per-target failure with the target it came
// from, so that the aggregate error of an exhausted send identifies each
// failing target.
type DiscoveryError struct {
	error
	target string
}

// Target returns the URL of the target the error originated from.
func (e DiscoveryError) Target() string {
	return e.target
}

// IsAccessDenied returns true if the wrapped error is an access-denied
// response from the target.
func (e DiscoveryError) IsAccessDenied() bool {
	return strings.Contains(e.Error(), accessDenied)
}

func newDiscoveryError(err error, target string) error {
	return DiscoveryError{error: err, target: target}
}

type grpcTarget struct {
	url  string
	opts []comm.Opt

	lock sync.Mutex
	conn *comm.Connection
}

// NewTarget returns a gRPC-backed target for the given peer config.
func NewTarget(config fab.PeerConfig) Target {
	return &grpcTarget{
		url:  config.URL,
		opts: comm.OptsFromPeerConfig(&config),
	}
}

// TargetsFromConfig returns one target per peer config, in order.
func TargetsFromConfig(configs []fab.PeerConfig) []Target {
	targets := make([]Target, len(configs))
	for i, config := range configs {
		targets[i] = NewTarget(config)
	}
	return targets
}

func (t *grpcTarget) URL() string {
	return t.url
}

func (t *grpcTarget) Connect(ctx context.Context) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.conn != nil && !t.conn.Closed() {
		return nil
	}

	conn, err := comm.NewConnection(ctx, t.url, t.opts...)
	if err != nil {
		return err
	}
	t.conn = conn
	return nil
}

func (t *grpcTarget) Discover(ctx context.Context, signed *SignedQuery) ([]*discoverypb.QueryResult, error) {
	t.lock.Lock()
	conn := t.conn
	t.lock.Unlock()

	if conn == nil || conn.Closed() {
		return nil, errors.Errorf("target [%s] is not connected", t.url)
	}

	response, err := discoverypb.NewDiscoveryClient(conn.ClientConn()).Discover(ctx, signed.Request)
	if err != nil {
		return nil, errors.Wrapf(err, "discovery call to [%s] failed", t.url)
	}
	return response.Results, nil
}

func (t *grpcTarget) Close() {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
}

// send submits the signed query to the given targets one at a time, in
// order, and returns the first usable response along with the target that
// produced it. A target failure is recorded and the next target is tried;
// an error embedded by the discovery service itself is authoritative and
// aborts the whole send.
func (s *Service) send(ctx context.Context, signed *SignedQuery, targets []Target) ([]*discoverypb.QueryResult, Target, error) {
	if len(targets) == 0 {
		return nil, nil, status.New(status.ClientStatus, status.MissingTargets.ToInt32(), missingTargetsMsg, nil)
	}

	var errs multi.Errors
	for _, target := range targets {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		results, err := s.discoverFromTarget(ctx, signed, target)
		if err != nil {
			logger.Warnf("Discovery from target [%s] failed: %s. Trying next target", target.URL(), err)
			errs = append(errs, newDiscoveryError(err, target.URL()))
			continue
		}

		if err := validateResponse(results); err != nil {
			return nil, nil, err
		}

		return results, target, nil
	}

	var details []interface{}
	for _, err := range errs {
		details = append(details, err)
	}
	return nil, nil, status.New(status.ClientStatus, status.DiscoveryFailed.ToInt32(), discoveryFailedMsg, details)
}

func (s *Service) discoverFromTarget(ctx context.Context, signed *SignedQuery, target Target) ([]*discoverypb.QueryResult, error) {
	timeout := s.config.ResponseTimeout
	if timeout <= 0 {
		timeout = defaultResponseTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := target.Connect(ctx); err != nil {
		return nil, err
	}

	results, err := target.Discover(ctx, signed)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errors.Errorf("target [%s] returned an empty response", target.URL())
	}
	return results, nil
}
