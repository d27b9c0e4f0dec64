/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package githubrepo implements the repository tool callbacks on top of the
// GitHub REST and GraphQL APIs.
//
//	gh, err := githubrepo.New(ctx, token)
//	tools := toolcall.NewRepositoryToolsProvider[*Result]().Tools(gh.Callbacks())
package githubrepo
