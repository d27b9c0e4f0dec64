/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result cleans up model replies before they are shown to users.
//
// Models asked for a document sometimes wrap the whole reply in a fenced
// code block. ExtractMarkdown removes that outer fence while leaving fences
// inside the document alone:
//
//	content := result.ExtractMarkdown(reply)
package result
