/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package config loads SDK configuration from YAML or JSON sources into a
// key-based backend and decodes the discovery section into the explicit
// DiscoveryConfig value that sessions are constructed with.
package config

import (
	"io"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/providers/fab"
)

const discoveryConfigKey = "client.discovery"

// Backend is a generic key lookup over loaded configuration.
type Backend interface {
	// Lookup returns the value of the given key, if present.
	Lookup(key string) (interface{}, bool)
}

type viperBackend struct {
	v *viper.Viper
}

func (b *viperBackend) Lookup(key string) (interface{}, bool) {
	value := b.v.Get(strings.ToLower(key))
	if value == nil {
		return nil, false
	}
	return value, true
}

// FromFile reads configuration from the given file path.
func FromFile(path string) (Backend, error) {
	if path == "" {
		return nil, errors.New("filename is required")
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "loading config file failed: %s", path)
	}
	return &viperBackend{v: v}, nil
}

// FromReader reads configuration of the given type ("yaml" or "json")
// from the given reader.
func FromReader(in io.Reader, configType string) (Backend, error) {
	if configType == "" {
		return nil, errors.New("empty config type")
	}

	v := newViper()
	v.SetConfigType(configType)
	if err := v.ReadConfig(in); err != nil {
		return nil, errors.Wrap(err, "loading config failed")
	}
	return &viperBackend{v: v}, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// DiscoveryConfigFromBackend decodes the client.discovery section of the
// backend into a DiscoveryConfig. Keys that are absent keep their zero
// value, so a partial section is valid.
func DiscoveryConfigFromBackend(backend Backend) (*fab.DiscoveryConfig, error) {
	cfg := fab.DiscoveryConfig{}

	value, ok := backend.Lookup(discoveryConfigKey)
	if !ok {
		return &cfg, nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &cfg,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating config decoder failed")
	}
	if err := decoder.Decode(value); err != nil {
		return nil, errors.Wrap(err, "decoding discovery config failed")
	}
	return &cfg, nil
}
