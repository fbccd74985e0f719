/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/golang/protobuf/proto"
	discoverypb "github.com/hyperledger/fabric-protos-go/discovery"
	"github.com/pkg/errors"
)

// SignedQuery is a marshaled discovery request with the signature of the
// building identity attached. It is what a target actually receives.
type SignedQuery struct {
	Request   *discoverypb.SignedRequest
	ChannelID string
}

// signerFunc signs a message and returns the signature, or an error on
// failure.
type signerFunc func(msg []byte) ([]byte, error)

// Sign serializes the query's action payload and attaches the identity's
// signature over those bytes. Signing is deterministic for the same key
// material and payload: recently signed payloads are served from the
// session's signature cache.
func (s *Service) Sign(query *Query) (*SignedQuery, error) {
	if query == nil {
		return nil, invalidArgument("Missing query parameter")
	}

	payload, err := proto.Marshal(query.request)
	if err != nil {
		return nil, errors.Wrap(err, "failed marshaling request to bytes")
	}

	signature, err := s.signer.Sign(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed signing request")
	}

	return &SignedQuery{
		Request:   &discoverypb.SignedRequest{Payload: payload, Signature: signature},
		ChannelID: query.channelID,
	}, nil
}

// memoizeSigner signs messages with the same signature if the message was
// recently signed, bounding the amount of signing work for repeated
// payloads such as background refreshes.
type memoizeSigner struct {
	maxEntries uint
	sync.RWMutex
	memory map[string][]byte
	sign   signerFunc
}

func newMemoizeSigner(sign signerFunc, maxEntries uint) *memoizeSigner {
	return &memoizeSigner{
		maxEntries: maxEntries,
		memory:     make(map[string][]byte),
		sign:       sign,
	}
}

func (ms *memoizeSigner) Sign(msg []byte) ([]byte, error) {
	sig, ok := ms.lookup(msg)
	if ok {
		return sig, nil
	}
	sig, err := ms.sign(msg)
	if err != nil {
		return nil, err
	}
	ms.memorize(msg, sig)
	return sig, nil
}

func (ms *memoizeSigner) lookup(msg []byte) ([]byte, bool) {
	ms.RLock()
	defer ms.RUnlock()
	sig, exists := ms.memory[msgDigest(msg)]
	return sig, exists
}

func (ms *memoizeSigner) memorize(msg, signature []byte) {
	if ms.maxEntries == 0 {
		return
	}

	ms.Lock()
	defer ms.Unlock()
	// evict arbitrary entries until there is room
	for len(ms.memory) >= int(ms.maxEntries) {
		for digest := range ms.memory {
			delete(ms.memory, digest)
			break
		}
	}
	ms.memory[msgDigest(msg)] = signature
}

func msgDigest(msg []byte) string {
	digest := sha256.Sum256(msg)
	return hex.EncodeToString(digest[:])
}
