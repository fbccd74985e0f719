/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"testing"

	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
	msppb "github.com/hyperledger/fabric-protos-go/msp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessConfig(t *testing.T) {
	configResult := &discoverypb.ConfigResult{
		Msps: map[string]*msppb.FabricMSPConfig{
			"Org1MSP": {
				Name:                 "Org1MSP",
				RootCerts:            [][]byte{[]byte("root1")},
				IntermediateCerts:    [][]byte{[]byte("intermediate1")},
				TlsRootCerts:         [][]byte{[]byte("tlsroot1")},
				TlsIntermediateCerts: [][]byte{[]byte("tlsintermediate1")},
				Admins:               [][]byte{[]byte("admin1")},
				OrganizationalUnitIdentifiers: []*msppb.FabricOUIdentifier{
					{Certificate: []byte("oucert"), OrganizationalUnitIdentifier: "client"},
				},
			},
			"Org2MSP": {
				Name:         "Org2MSP",
				TlsRootCerts: [][]byte{[]byte("tlsroot2")},
			},
		},
		Orderers: map[string]*discoverypb.Endpoints{
			"OrdererMSP": {
				Endpoint: []*discoverypb.Endpoint{
					{Host: "orderer.example.com", Port: 7050},
					{Host: "orderer2.example.com", Port: 7050},
				},
			},
		},
	}

	msps, orderers := processConfig(configResult)

	require.Len(t, msps, 2)
	org1 := msps["Org1MSP"]
	require.NotNil(t, org1)
	assert.Equal(t, "Org1MSP", org1.ID)
	assert.Equal(t, [][]byte{[]byte("root1")}, org1.RootCerts)
	assert.Equal(t, [][]byte{[]byte("tlsroot1")}, org1.TLSRootCerts)
	assert.Equal(t, [][]byte{[]byte("admin1")}, org1.Admins)
	require.Len(t, org1.OrganizationalUnitIdentifiers, 1)
	assert.Equal(t, "client", org1.OrganizationalUnitIdentifiers[0].OrganizationalUnitIdentifier)

	require.Len(t, orderers, 1)
	require.Len(t, orderers["OrdererMSP"], 2)
	assert.Equal(t, Endpoint{Host: "orderer.example.com", Port: 7050}, orderers["OrdererMSP"][0])
}

func TestProcessConfigNil(t *testing.T) {
	msps, orderers := processConfig(nil)
	assert.Empty(t, msps)
	assert.Empty(t, orderers)
	assert.NotNil(t, msps)
	assert.NotNil(t, orderers)
}

func TestProcessConfigSkipsMalformedEndpoints(t *testing.T) {
	configResult := &discoverypb.ConfigResult{
		Orderers: map[string]*discoverypb.Endpoints{
			"OrdererMSP": {
				Endpoint: []*discoverypb.Endpoint{
					nil,
					{Host: "", Port: 7050},
					{Host: "orderer.example.com", Port: 0},
					{Host: "orderer.example.com", Port: 7050},
				},
			},
			"EmptyMSP": nil,
		},
	}

	_, orderers := processConfig(configResult)

	require.Len(t, orderers, 2)
	require.Len(t, orderers["OrdererMSP"], 1)
	assert.Equal(t, "orderer.example.com", orderers["OrdererMSP"][0].Host)

	// an orderer org with no valid endpoints still appears, empty
	endpoints, ok := orderers["EmptyMSP"]
	require.True(t, ok)
	assert.Empty(t, endpoints)
}

func TestResultTLSCerts(t *testing.T) {
	res := newResult()
	res.MSPs["Org1MSP"] = &MSPDefinition{
		TLSRootCerts:         [][]byte{[]byte("root1"), []byte("root2")},
		TLSIntermediateCerts: [][]byte{[]byte("intermediate1")},
	}

	assert.Equal(t, []byte("root1root2intermediate1"), res.TLSCerts("Org1MSP"))
	assert.Nil(t, res.TLSCerts("UnknownMSP"))
}
