/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package comm establishes the gRPC connections used to reach discovery
// targets and resolved peers.
package comm

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"sync/atomic"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/logging"
	"github.com/tongyuhu/fabric-sdk-node/pkg/core/config/endpoint"
)

var logger = logging.NewLogger("fabsdk/fab")

// Connection wraps a gRPC client connection to a single endpoint.
type Connection struct {
	conn *grpc.ClientConn
	url  string
	done int32
}

// NewConnection dials the given URL and blocks until the connection is
// established or the timeout elapses. The URL scheme decides the transport
// credentials: grpc:// dials insecurely, anything else uses TLS with the
// trust material supplied via options.
func NewConnection(ctx context.Context, url string, opts ...Opt) (*Connection, error) {
	if url == "" {
		return nil, errors.New("server URL not specified")
	}

	params := defaultParams()
	for _, opt := range opts {
		opt(params)
	}

	dialOpts, err := newDialOpts(url, params)
	if err != nil {
		return nil, err
	}

	dialCtx, cancel := context.WithTimeout(ctx, params.connectTimeout)
	defer cancel()

	conn, err := grpc.DialContext(dialCtx, endpoint.ToAddress(url), dialOpts...)
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to %s", url)
	}

	return &Connection{conn: conn, url: url}, nil
}

// ClientConn returns the underlying gRPC connection.
func (c *Connection) ClientConn() *grpc.ClientConn {
	return c.conn
}

// URL returns the URL the connection was dialed with.
func (c *Connection) URL() string {
	return c.url
}

// Close closes the connection. It may be called multiple times.
func (c *Connection) Close() {
	if !atomic.CompareAndSwapInt32(&c.done, 0, 1) {
		logger.Debugf("Already closed [%s]", c.url)
		return
	}

	logger.Debugf("Closing connection [%s]", c.url)
	if err := c.conn.Close(); err != nil {
		logger.Warnf("error closing GRPC connection [%s]: %s", c.url, err)
	}
}

// Closed returns true if the connection has been closed
func (c *Connection) Closed() bool {
	return atomic.LoadInt32(&c.done) == 1
}

func newDialOpts(url string, params *params) ([]grpc.DialOption, error) {
	var dialOpts []grpc.DialOption

	if params.keepAliveParams.Time > 0 || params.keepAliveParams.Timeout > 0 {
		dialOpts = append(dialOpts, grpc.WithKeepaliveParams(params.keepAliveParams))
	}

	dialOpts = append(dialOpts, grpc.WithDefaultCallOptions(grpc.WaitForReady(!params.failFast)))
	dialOpts = append(dialOpts, grpc.WithBlock())

	if endpoint.IsTLSEnabled(url) || (!endpoint.HasProtocol(url) && !params.insecure) {
		tlsConfig, err := newTLSConfig(params)
		if err != nil {
			return nil, err
		}
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(credentials.NewTLS(tlsConfig)))
		logger.Debugf("Creating a secure connection to [%s] with TLS ServerName [%s]", url, params.serverName)
	} else {
		dialOpts = append(dialOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		logger.Debugf("Creating an insecure connection [%s]", url)
	}

	return dialOpts, nil
}

func newTLSConfig(params *params) (*tls.Config, error) {
	tlsConfig := &tls.Config{ServerName: params.serverName, MinVersion: tls.VersionTLS12}

	if len(params.certificates) > 0 {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(params.certificates) {
			return nil, errors.New("no valid TLS certificates supplied")
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}
