/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package comm

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
)

func TestNewConnection(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := grpc.NewServer()
	go server.Serve(lis)
	defer server.Stop()

	conn, err := NewConnection(context.Background(), "grpc://"+lis.Addr().String(),
		WithConnectTimeout(3*time.Second))
	require.NoError(t, err)
	require.NotNil(t, conn.ClientConn())
	assert.False(t, conn.Closed())

	conn.Close()
	assert.True(t, conn.Closed())

	// closing again is a no-op
	conn.Close()
	assert.True(t, conn.Closed())
}

func TestNewConnectionErrors(t *testing.T) {
	_, err := NewConnection(context.Background(), "")
	require.EqualError(t, err, "server URL not specified")

	// nothing listening: blocking dial should fail within the timeout
	_, err = NewConnection(context.Background(), "grpc://127.0.0.1:59999",
		WithConnectTimeout(200*time.Millisecond))
	assert.Error(t, err)
}

func TestNewConnectionBadTLSCerts(t *testing.T) {
	_, err := NewConnection(context.Background(), "grpcs://127.0.0.1:59999",
		WithConnectTimeout(200*time.Millisecond),
		WithTLSCerts([]byte("not a pem block")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid TLS certificates supplied")
}

func TestOptsFromPeerConfig(t *testing.T) {
	config := &fab.PeerConfig{
		URL: "grpcs://peer0.org1.example.com:7051",
		GRPCOptions: map[string]interface{}{
			"ssl-target-name-override": "peer0.org1.example.com",
			"keep-alive-time":          "60s",
			"keep-alive-timeout":       "15s",
			"keep-alive-permit":        true,
			"fail-fast":                false,
			"allow-insecure":           false,
		},
	}

	p := defaultParams()
	for _, opt := range OptsFromPeerConfig(config) {
		opt(p)
	}

	assert.Equal(t, "peer0.org1.example.com", p.serverName)
	assert.Equal(t, 60*time.Second, p.keepAliveParams.Time)
	assert.Equal(t, 15*time.Second, p.keepAliveParams.Timeout)
	assert.True(t, p.keepAliveParams.PermitWithoutStream)
	assert.False(t, p.failFast)
	assert.False(t, p.insecure)
}
