/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tongyuhu/fabric-sdk-node/pkg/common/errors/status"
	discmocks "github.com/tongyuhu/fabric-sdk-node/pkg/fab/discovery/mocks"
)

func TestNewQueryMissingIdentity(t *testing.T) {
	_, err := NewQuery(nil, "mychannel", RequestOptions{Config: true})
	require.Error(t, err)
	assert.EqualError(t, err, "Missing idContext parameter")

	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.InvalidArgument.ToInt32(), s.Code)
}

func TestNewQueryNoInterest(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	_, err := NewQuery(identity, "mychannel", RequestOptions{})
	require.Error(t, err)
	assert.EqualError(t, err, "No discovery interest provided")

	s, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, status.NoInterestProvided.ToInt32(), s.Code)
}

func TestNewQueryConfig(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	query, err := NewQuery(identity, "mychannel", RequestOptions{Config: true})
	require.NoError(t, err)
	require.NotNil(t, query.request.Authentication)
	assert.NotEmpty(t, query.request.Authentication.ClientIdentity)

	// a config request also queries channel membership
	require.Len(t, query.request.Queries, 2)
	assert.NotNil(t, query.request.Queries[0].GetConfigQuery())
	assert.Equal(t, "mychannel", query.request.Queries[0].Channel)
	assert.NotNil(t, query.request.Queries[1].GetPeerQuery())
	assert.Equal(t, "mychannel", query.request.Queries[1].Channel)
}

func TestNewQueryLocal(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	query, err := NewQuery(identity, "mychannel", RequestOptions{Local: true})
	require.NoError(t, err)
	require.Len(t, query.request.Queries, 1)
	assert.NotNil(t, query.request.Queries[0].GetLocalPeers())

	// the local peers query is not bound to the channel
	assert.Empty(t, query.request.Queries[0].Channel)
}

func TestNewQueryEndorsementDerivesInterest(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	query, err := NewQuery(identity, "mychannel", RequestOptions{
		Endorsement: &EndorsementContext{
			ChaincodeName:   "mycc",
			CollectionNames: []string{"col1"},
		},
	})
	require.NoError(t, err)
	require.Len(t, query.request.Queries, 1)

	ccQuery := query.request.Queries[0].GetCcQuery()
	require.NotNil(t, ccQuery)
	require.Len(t, ccQuery.Interests, 1)
	require.Len(t, ccQuery.Interests[0].Chaincodes, 1)
	assert.Equal(t, "mycc", ccQuery.Interests[0].Chaincodes[0].Name)
	assert.Equal(t, []string{"col1"}, ccQuery.Interests[0].Chaincodes[0].CollectionNames)
}

func TestNewQueryExplicitInterestWins(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	query, err := NewQuery(identity, "mychannel", RequestOptions{
		Endorsement: &EndorsementContext{ChaincodeName: "ignored"},
		Interest: []*ChaincodeCall{
			{Name: "cc1"},
			{Name: "cc2"},
		},
	})
	require.NoError(t, err)
	require.Len(t, query.request.Queries, 1)

	ccQuery := query.request.Queries[0].GetCcQuery()
	require.NotNil(t, ccQuery)
	require.Len(t, ccQuery.Interests[0].Chaincodes, 2)
	assert.Equal(t, "cc1", ccQuery.Interests[0].Chaincodes[0].Name)
	assert.Equal(t, "cc2", ccQuery.Interests[0].Chaincodes[1].Name)
}

func TestNewQueryInterestPreservesDuplicates(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	query, err := NewQuery(identity, "mychannel", RequestOptions{
		Interest: []*ChaincodeCall{
			{Name: "cc1"},
			{Name: "cc1"},
		},
	})
	require.NoError(t, err)

	ccQuery := query.request.Queries[0].GetCcQuery()
	require.Len(t, ccQuery.Interests[0].Chaincodes, 2)
	assert.Equal(t, "cc1", ccQuery.Interests[0].Chaincodes[0].Name)
	assert.Equal(t, "cc1", ccQuery.Interests[0].Chaincodes[1].Name)
}

func TestNewQueryInvalidInterest(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	_, err := NewQuery(identity, "mychannel", RequestOptions{
		Interest: []*ChaincodeCall{{Name: ""}},
	})
	require.Error(t, err)
	assert.EqualError(t, err, "chaincode name must be a string")

	_, err = NewQuery(identity, "mychannel", RequestOptions{
		Interest: []*ChaincodeCall{{Name: "cc1", CollectionNames: []string{"col1", ""}}},
	})
	require.Error(t, err)
	assert.EqualError(t, err, "collection names must be an array of strings")
}

func TestNewQueryCombined(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")

	query, err := NewQuery(identity, "mychannel", RequestOptions{
		Config: true,
		Local:  true,
		Interest: []*ChaincodeCall{
			{Name: "cc1"},
		},
	})
	require.NoError(t, err)
	require.Len(t, query.request.Queries, 4)
	assert.NotNil(t, query.request.Queries[0].GetConfigQuery())
	assert.NotNil(t, query.request.Queries[1].GetPeerQuery())
	assert.NotNil(t, query.request.Queries[2].GetLocalPeers())
	assert.NotNil(t, query.request.Queries[3].GetCcQuery())
}

func TestNewQuerySerializeError(t *testing.T) {
	identity := discmocks.NewMockSigningIdentity("Org1MSP")
	identity.SerializeErr = assert.AnError

	_, err := NewQuery(identity, "mychannel", RequestOptions{Config: true})
	require.Error(t, err)
}
