/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package callbacks declares the callback structs that back the agent's tools,
together with the data types they exchange.

It has no dependencies on model SDKs or remote clients: integrations fill in
the callbacks and the toolcall package turns them into tools.

	cb := callbacks.FileSystemCallbacks{
		WriteFile: func(ctx context.Context, path, content string) error {
			// write below the output directory
		},
	}

A nil callback means the matching tool is not offered.
*/
package callbacks
