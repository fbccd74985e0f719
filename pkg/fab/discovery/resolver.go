/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
	"github.com/tongyuhu/fabric-sdk-node/pkg/fab/comm"
)

// PeerHandle is a usable, possibly-already-connected handle on a
// discovered peer. Connection attempts during resolution are best-effort:
// an Unconnected handle still carries the peer's identity and URL, and the
// consumer may call Connect to retry.
type PeerHandle struct {
	name  string
	url   string
	mspID string
	state int32

	lock sync.Mutex
	conn *comm.Connection
}

// MSPID returns the MSP id of the peer's organization.
func (h *PeerHandle) MSPID() string {
	return h.mspID
}

// URL returns the connection URL derived for the peer.
func (h *PeerHandle) URL() string {
	return h.url
}

// Endpoint returns the peer's discovered network endpoint (host:port).
func (h *PeerHandle) Endpoint() string {
	return h.name
}

// ConnectionState reports whether the handle holds a live connection.
func (h *PeerHandle) ConnectionState() fab.ConnectionState {
	return fab.ConnectionState(atomic.LoadInt32(&h.state))
}

// Connect establishes the handle's connection. It is a no-op when the
// handle is already connected.
func (h *PeerHandle) Connect(ctx context.Context, opts ...comm.Opt) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.conn != nil && !h.conn.Closed() {
		return nil
	}

	conn, err := comm.NewConnection(ctx, h.url, opts...)
	if err != nil {
		return err
	}
	h.conn = conn
	atomic.StoreInt32(&h.state, int32(fab.Connected))
	return nil
}

// Close releases the handle's connection, if any.
func (h *PeerHandle) Close() {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.conn != nil {
		h.conn.Close()
		h.conn = nil
	}
	atomic.StoreInt32(&h.state, int32(fab.Unconnected))
}

var _ fab.Peer = (*PeerHandle)(nil)

// ResolvePeer returns a usable handle for the given discovered peer
// descriptor, reusing a peer already known to the channel view when its
// endpoint matches.
func (s *Service) ResolvePeer(descriptor *PeerDescriptor) (*PeerHandle, error) {
	return s.resolve(descriptor, s.cachedResult(), "")
}

// resolvePeerHandle is the pipeline-side entry point: resolution problems
// are logged and produce a nil handle rather than failing the pipeline,
// so a descriptor is never dropped because its peer could not be
// resolved.
func (s *Service) resolvePeerHandle(descriptor *PeerDescriptor, res *Result, currentTargetURL string) *PeerHandle {
	handle, err := s.resolve(descriptor, res, currentTargetURL)
	if err != nil {
		logger.Warnf("Could not resolve discovered peer [%s]: %s", descriptor.Endpoint, err)
		return nil
	}
	return handle
}

func (s *Service) resolve(descriptor *PeerDescriptor, res *Result, currentTargetURL string) (*PeerHandle, error) {
	if descriptor == nil {
		return nil, status.New(status.ClientStatus, status.MissingDescriptor.ToInt32(), missingDescriptorMsg, nil)
	}

	if existing, ok := s.membership.Peer(descriptor.Endpoint); ok {
		if handle, ok := existing.(*PeerHandle); ok {
			// reuse verbatim, connection state preserved
			return handle, nil
		}
		return &PeerHandle{
			name:  descriptor.Endpoint,
			url:   existing.URL(),
			mspID: existing.MSPID(),
		}, nil
	}

	builder := s.urlBuilder
	if currentTargetURL != "" {
		builder = builder.WithCurrentTarget(currentTargetURL)
	}
	url, err := builder.BuildURL(descriptor.Host, descriptor.Port)
	if err != nil {
		return nil, err
	}

	handle := &PeerHandle{
		name:  descriptor.Endpoint,
		url:   url,
		mspID: descriptor.MSPID,
	}
	s.membership.RegisterPeer(handle)
	s.trackHandle(handle)

	var tlsCerts []byte
	if res != nil {
		tlsCerts = res.TLSCerts(descriptor.MSPID)
	}
	s.connectAsync(handle, tlsCerts)

	return handle, nil
}

// connectAsync fires a best-effort connection attempt. Attempts run
// concurrently across the peers of a response; each affects only its own
// handle and a failure is swallowed so that the consumer can retry later.
func (s *Service) connectAsync(handle *PeerHandle, tlsCerts []byte) {
	s.connectWG.Add(1)
	go func() {
		defer s.connectWG.Done()

		timeout := s.config.ConnectTimeout
		if timeout <= 0 {
			timeout = defaultConnectTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := handle.Connect(ctx,
			comm.WithConnectTimeout(timeout),
			comm.WithTLSCerts(tlsCerts),
		)
		if err != nil {
			logger.Debugf("Could not connect to discovered peer [%s]: %s", handle.URL(), err)
		}
	}()
}

// peerRegistry is the default in-memory channel membership view, used
// when the caller does not supply one.
type peerRegistry struct {
	lock  sync.RWMutex
	peers map[string]fab.Peer
}

func newPeerRegistry() *peerRegistry {
	return &peerRegistry{peers: make(map[string]fab.Peer)}
}

func (r *peerRegistry) Peer(endpoint string) (fab.Peer, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	peer, ok := r.peers[endpoint]
	return peer, ok
}

func (r *peerRegistry) RegisterPeer(peer fab.Peer) {
	r.lock.Lock()
	defer r.lock.Unlock()

	endpoint := peer.URL()
	if handle, ok := peer.(*PeerHandle); ok {
		endpoint = handle.Endpoint()
	}
	r.peers[endpoint] = peer
}
