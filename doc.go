/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package fabricsdknode provides a client for the Hyperledger Fabric
// service discovery API.
//
// Packages for end developer usage
//
// pkg/fab/discovery: Builds, signs and sends discovery queries, validates
// the responses, and reduces them into channel configuration, membership
// and endorsement plans. This is the main entry point.
//
// pkg/core/config: Loads discovery session settings from connection
// profiles. pkg/core/config/endpoint derives connection URLs for
// discovered endpoints.
//
// pkg/fab/comm: Establishes the gRPC connections used to reach discovery
// targets and resolved peers.
//
// Basic workflow
//
//  1. Construct a discovery session with New, supplying a signing identity
//     and the session's configuration.
//  2. Build the session's targets from peer configs with TargetsFromConfig.
//  3. Call Send with the request options describing what to discover.
//  4. Read the processed result, or call Results later to reuse the cached
//     result or refresh it.
package fabricsdknode
