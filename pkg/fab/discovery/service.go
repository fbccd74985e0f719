/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package discovery builds, signs and sends service discovery queries to
// a set of discovery targets, validates the responses, and reduces them
// into usable channel configuration, membership and endorsement plans.
package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
	"github.com/tongyuhu/fabric-sdk-node/pkg/common/logging"
	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
	"github.com/tongyuhu/fabric-sdk-node/pkg/core/config/endpoint"
	"github.com/tongyuhu/fabric-sdk-node/pkg/util/concurrent/lazyref"
)

var logger = logging.NewLogger("fabsdk/fab/discovery")

const (
	defaultConnectTimeout  = 3 * time.Second
	defaultResponseTimeout = 5 * time.Second

	defaultSignatureCacheSize = 25
)

// Service is a discovery session bound to one channel and one signing
// identity. It remembers the last query it sent so that results can be
// refreshed, and caches the last processed result.
type Service struct {
	name      string
	channelID string
	config    fab.DiscoveryConfig
	identity  fab.SigningIdentity

	membership fab.ChannelMembership
	signer     *memoizeSigner
	urlBuilder *endpoint.Builder
	metrics    *Metrics

	lock        sync.RWMutex
	result      *Result
	lastQuery   *Query
	lastSigned  *SignedQuery
	lastTargets []Target

	refresh *lazyref.Reference

	connectWG   sync.WaitGroup
	handlesLock sync.Mutex
	handles     []*PeerHandle

	closeOnce sync.Once
}

// Option configures a Service.
type Option func(*Service)

// WithChannelMembership supplies the caller's view of the peers already
// known on the channel. Resolved descriptors reuse matching peers from
// this view instead of opening duplicate connections.
func WithChannelMembership(membership fab.ChannelMembership) Option {
	return func(s *Service) {
		s.membership = membership
	}
}

// WithRefreshInterval sets the interval at which the last successful
// query is re-run out of band. A zero interval disables the background
// refresh.
func WithRefreshInterval(interval time.Duration) Option {
	return func(s *Service) {
		s.config.RefreshInterval = interval
	}
}

// WithResponseTimeout sets the timeout for each discovery call to a
// target.
func WithResponseTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		s.config.ResponseTimeout = timeout
	}
}

// WithMetrics supplies the metrics sink for the session.
func WithMetrics(metrics *Metrics) Option {
	return func(s *Service) {
		s.metrics = metrics
	}
}

// WithSignatureCacheSize bounds the session's signature cache.
func WithSignatureCacheSize(size uint) Option {
	return func(s *Service) {
		s.signer = newMemoizeSigner(s.identity.Sign, size)
	}
}

// New returns a discovery session for the given channel, bound to the
// given identity. The config is supplied explicitly; a session carries no
// ambient process-wide state.
func New(name string, channelID string, identity fab.SigningIdentity, config fab.DiscoveryConfig, opts ...Option) (*Service, error) {
	if identity == nil {
		return nil, invalidArgument("Missing idContext parameter")
	}

	s := &Service{
		name:       name,
		channelID:  channelID,
		config:     config,
		identity:   identity,
		membership: newPeerRegistry(),
		urlBuilder: endpoint.NewBuilder(config.AsLocalhost, config.ProtocolOverride),
		metrics:    NewNoOpMetrics(),
	}
	s.signer = newMemoizeSigner(identity.Sign, defaultSignatureCacheSize)

	for _, opt := range opts {
		opt(s)
	}

	if config.RefreshInterval > 0 {
		s.refresh = lazyref.New(
			func() (interface{}, error) {
				return s.resend(context.Background())
			},
			lazyref.WithRefreshInterval(config.RefreshInterval, config.RefreshInterval),
		)
	}

	return s, nil
}

// Send builds, signs and submits a discovery query to the given targets
// and returns the processed result. The result, the signed query and the
// targets are remembered: Results serves the cached result until it is
// explicitly refreshed, and a background refresh (when configured) re-runs
// this same query.
func (s *Service) Send(ctx context.Context, targets []Target, options RequestOptions) (*Result, error) {
	query, err := NewQuery(s.identity, s.channelID, options)
	if err != nil {
		return nil, err
	}

	signed, err := s.Sign(query)
	if err != nil {
		return nil, err
	}

	return s.sendSigned(ctx, query, signed, targets)
}

func (s *Service) sendSigned(ctx context.Context, query *Query, signed *SignedQuery, targets []Target) (*Result, error) {
	began := time.Now()
	s.metrics.QueriesSent.Add(1)

	results, target, err := s.send(ctx, signed, targets)
	if err != nil {
		s.metrics.QueryFailures.Add(1)
		return nil, err
	}

	res, err := s.processResults(query, results, target.URL())
	if err != nil {
		s.metrics.QueryFailures.Add(1)
		return nil, err
	}
	res.Timestamp = time.Now()

	s.lock.Lock()
	s.result = res
	s.lastQuery = query
	s.lastSigned = signed
	s.lastTargets = targets
	s.lock.Unlock()

	s.metrics.QueryDuration.Observe(time.Since(began).Seconds())
	logger.Debugf("%s finished discovery against [%s]", s, target.URL())

	return res, nil
}

// Results returns the session's discovery result. A cached result with a
// timestamp is served as-is unless forceRefresh is set; otherwise the last
// query is re-sent to the last targets and the fresh result replaces the
// cache wholesale.
func (s *Service) Results(ctx context.Context, forceRefresh bool) (*Result, error) {
	s.lock.RLock()
	res := s.result
	signed := s.lastSigned
	s.lock.RUnlock()

	if res != nil && !res.Timestamp.IsZero() && !forceRefresh {
		s.metrics.CacheHits.Add(1)
		return res, nil
	}

	if signed == nil {
		return nil, status.New(status.ClientStatus, status.NoDiscoveryResults.ToInt32(), noResultsMsg, nil)
	}

	return s.resend(ctx)
}

// resend re-submits the remembered signed query to the remembered
// targets. The original signature is reused; signing work is not repeated
// for an unchanged query.
func (s *Service) resend(ctx context.Context) (*Result, error) {
	s.lock.RLock()
	query := s.lastQuery
	signed := s.lastSigned
	targets := s.lastTargets
	s.lock.RUnlock()

	if signed == nil {
		return nil, status.New(status.ClientStatus, status.NoDiscoveryResults.ToInt32(), noResultsMsg, nil)
	}

	return s.sendSigned(ctx, query, signed, targets)
}

// processResults reduces the raw query results of one response into a
// Result. Config sections are processed first so that peer resolution for
// the membership and chaincode sections can use the channel's TLS trust
// material; each remaining section is then processed in response order.
func (s *Service) processResults(query *Query, results []*discoverypb.QueryResult, currentTargetURL string) (*Result, error) {
	res := newResult()
	queries := query.request.Queries

	for _, result := range results {
		if configResult := result.GetConfigResult(); configResult != nil {
			res.MSPs, res.Orderers = processConfig(configResult)
		}
	}

	for i, result := range results {
		switch {
		case result.GetConfigResult() != nil:
			// processed above

		case result.GetMembers() != nil:
			peersByOrg := s.processMembership(result.GetMembers(), res, currentTargetURL)
			if i < len(queries) && queries[i].GetLocalPeers() != nil {
				res.LocalPeersByOrg = peersByOrg
			} else {
				res.PeersByOrg = peersByOrg
			}

		case result.GetCcQueryRes() != nil:
			plans, err := s.processChaincode(result.GetCcQueryRes(), res, currentTargetURL)
			if err != nil {
				return nil, err
			}
			for chaincode, plan := range plans {
				res.EndorsementPlans[chaincode] = plan
			}

		default:
			// unknown result kinds are ignored for forward compatibility
			logger.Debugf("Ignoring discovery result of unknown kind at position %d", i)
		}
	}

	return res, nil
}

func (s *Service) cachedResult() *Result {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.result
}

func (s *Service) trackHandle(handle *PeerHandle) {
	s.handlesLock.Lock()
	defer s.handlesLock.Unlock()
	s.handles = append(s.handles, handle)
}

// Close stops the background refresh, waits for in-flight connection
// attempts and releases every peer connection the session opened. It may
// be called multiple times.
func (s *Service) Close() {
	s.closeOnce.Do(func() {
		logger.Debugf("Closing %s", s)

		if s.refresh != nil {
			s.refresh.Close()
		}
		s.connectWG.Wait()

		s.handlesLock.Lock()
		defer s.handlesLock.Unlock()
		for _, handle := range s.handles {
			handle.Close()
		}
	})
}

func (s *Service) String() string {
	return fmt.Sprintf("Discovery: {name: %s, channel: %s}", s.name, s.channelID)
}
