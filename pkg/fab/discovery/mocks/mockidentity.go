/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/msp"
)

// MockSigningIdentity is a mock identity context for discovery requests.
// Signatures are deterministic: the message prefixed with "signed:".
type MockSigningIdentity struct {
	MSP          string
	Cert         []byte
	SerializeErr error
	SignErr      error

	// SignCount is incremented on every Sign call, so tests can assert
	// on signature caching.
	SignCount int
}

// NewMockSigningIdentity returns a mock identity for the given MSP.
func NewMockSigningIdentity(mspID string) *MockSigningIdentity {
	return &MockSigningIdentity{
		MSP:  mspID,
		Cert: []byte("-----BEGIN CERTIFICATE-----\nmock\n-----END CERTIFICATE-----"),
	}
}

// MSPID returns the MSP id of the identity's organization.
func (m *MockSigningIdentity) MSPID() string {
	return m.MSP
}

// Serialize returns the wire form of the identity.
func (m *MockSigningIdentity) Serialize() ([]byte, error) {
	if m.SerializeErr != nil {
		return nil, m.SerializeErr
	}
	return proto.Marshal(&msp.SerializedIdentity{
		Mspid:   m.MSP,
		IdBytes: m.Cert,
	})
}

// Sign signs the given message.
func (m *MockSigningIdentity) Sign(msg []byte) ([]byte, error) {
	if m.SignErr != nil {
		return nil, m.SignErr
	}
	m.SignCount++
	return append([]byte("signed:"), msg...), nil
}
