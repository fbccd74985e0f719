/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
client:
  discovery:
    asLocalhost: true
    protocolOverride: grpc
    connectTimeout: 3s
    responseTimeout: 5s
    refreshInterval: 2m
  logging:
    level: debug
`

func TestFromReader(t *testing.T) {
	backend, err := FromReader(strings.NewReader(sampleConfig), "yaml")
	require.NoError(t, err)

	lookup := NewLookup(backend)
	assert.True(t, lookup.GetBool("client.discovery.asLocalhost"))
	assert.Equal(t, "grpc", lookup.GetString("client.discovery.protocolOverride"))
	assert.Equal(t, 5*time.Second, lookup.GetDuration("client.discovery.responseTimeout"))
	assert.Equal(t, "debug", lookup.GetString("client.logging.level"))

	// unset keys yield zero values
	assert.Equal(t, "", lookup.GetString("client.discovery.unknown"))
	assert.Equal(t, 0, lookup.GetInt("client.discovery.unknown"))
}

func TestFromReaderBadInput(t *testing.T) {
	_, err := FromReader(strings.NewReader("{invalid"), "json")
	assert.Error(t, err)

	_, err = FromReader(strings.NewReader(sampleConfig), "")
	assert.Error(t, err)
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile("")
	assert.Error(t, err)

	_, err = FromFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestDiscoveryConfigFromBackend(t *testing.T) {
	backend, err := FromReader(strings.NewReader(sampleConfig), "yaml")
	require.NoError(t, err)

	cfg, err := DiscoveryConfigFromBackend(backend)
	require.NoError(t, err)
	assert.True(t, cfg.AsLocalhost)
	assert.Equal(t, "grpc", cfg.ProtocolOverride)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.ResponseTimeout)
	assert.Equal(t, 2*time.Minute, cfg.RefreshInterval)
}

func TestDiscoveryConfigFromBackendEmptySection(t *testing.T) {
	backend, err := FromReader(strings.NewReader("client: {}"), "yaml")
	require.NoError(t, err)

	cfg, err := DiscoveryConfigFromBackend(backend)
	require.NoError(t, err)
	assert.False(t, cfg.AsLocalhost)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
}
