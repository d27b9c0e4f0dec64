/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package dispatcher serves conversations with a lazily constructed runner.

The first Handle call constructs the runner while holding an init lock;
callers that arrive meanwhile wait on the lock and then reuse the result.
A failed construction leaves the dispatcher uninitialized, so a later call
tries again. Once initialized, Handle takes a lock-free fast path and runs
conversations concurrently.

	d := dispatcher.New(func(ctx context.Context) (dispatcher.Runner, error) {
		return readme.New(ctx, creds)
	})
	defer d.Close(ctx)

	result, err := d.Handle(ctx, conv)
*/
package dispatcher
