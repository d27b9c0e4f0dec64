/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package toolcall defines provider-independent tools for the README agent.
//
// A Tool pairs a Definition (name, description, parameters) with a handler
// that receives the decoded arguments and returns a JSON-serializable
// response. Tools are produced by providers from callback structs declared in
// the callbacks package, so the integrations that implement the callbacks
// never depend on a model SDK:
//
//	repo := toolcall.NewRepositoryToolsProvider[*Result]().Tools(gh.Callbacks())
//	files := toolcall.NewFileSystemToolsProvider[*Result]().Tools(fs.Callbacks())
//	tools, err := toolcall.Merge(repo, files)
//
// A provider only emits the tools whose callbacks are set.
package toolcall
