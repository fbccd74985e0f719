/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"bytes"
	"time"
)

// MSPDefinition is the trust-domain definition of one organization,
// copied verbatim from the config result.
type MSPDefinition struct {
	ID                            string
	Name                          string
	RootCerts                     [][]byte
	IntermediateCerts             [][]byte
	TLSRootCerts                  [][]byte
	TLSIntermediateCerts          [][]byte
	Admins                        [][]byte
	OrganizationalUnitIdentifiers []OUIdentifier
}

// OUIdentifier is an organizational unit within an MSP.
type OUIdentifier struct {
	Certificate                  []byte
	OrganizationalUnitIdentifier string
}

// Endpoint is a network address, immutable once parsed.
type Endpoint struct {
	Host string
	Port uint32
}

// PeerDescriptor describes one discovered peer: its network endpoint, its
// organization, and the liveness data gossip had for it at query time.
// Handle is attached by the peer resolver and may be unconnected.
type PeerDescriptor struct {
	MSPID        string
	Endpoint     string // host:port as discovered
	Host         string
	Port         uint32
	LedgerHeight uint64
	Chaincodes   []string

	// HasStateInfo is false when the peer's gossip state had not yet
	// propagated; LedgerHeight and Chaincodes are then absent.
	HasStateInfo bool

	Handle *PeerHandle
}

// Layout maps group ids to the number of endorsements required from each
// group.
type Layout map[string]int

// EndorsementPlan is the reduced endorsement descriptor for one chaincode:
// peer groups plus the quantity-per-group layouts that satisfy its
// endorsement policy. Layouts that reference unknown groups or require
// more peers than a group holds are excluded.
type EndorsementPlan struct {
	Chaincode string
	Groups    map[string][]*PeerDescriptor
	Layouts   []Layout
}

// Result is the processed outcome of one successful discovery send. It is
// replaced wholesale on each resend and never partially mutated, so
// readers never observe a half-merged result.
type Result struct {
	Timestamp        time.Time
	MSPs             map[string]*MSPDefinition
	Orderers         map[string][]Endpoint
	PeersByOrg       map[string][]*PeerDescriptor
	LocalPeersByOrg  map[string][]*PeerDescriptor
	EndorsementPlans map[string]*EndorsementPlan
}

func newResult() *Result {
	return &Result{
		MSPs:             make(map[string]*MSPDefinition),
		Orderers:         make(map[string][]Endpoint),
		PeersByOrg:       make(map[string][]*PeerDescriptor),
		LocalPeersByOrg:  make(map[string][]*PeerDescriptor),
		EndorsementPlans: make(map[string]*EndorsementPlan),
	}
}

// TLSCerts returns the concatenated PEM trust material for the given MSP:
// the MSP's TLS root certificates followed by its TLS intermediate
// certificates. An unknown MSP id yields an empty slice.
func (r *Result) TLSCerts(mspID string) []byte {
	msp, ok := r.MSPs[mspID]
	if !ok {
		return nil
	}

	var buf bytes.Buffer
	for _, cert := range msp.TLSRootCerts {
		buf.Write(cert)
	}
	for _, cert := range msp.TLSIntermediateCerts {
		buf.Write(cert)
	}
	return buf.Bytes()
}

// Plan returns the endorsement plan for the given chaincode, if present.
func (r *Result) Plan(chaincode string) (*EndorsementPlan, bool) {
	plan, ok := r.EndorsementPlans[chaincode]
	return plan, ok
}
