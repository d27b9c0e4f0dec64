/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package conversation defines the role-tagged message sequence that is the
// input to every agent run.
//
// A Conversation is ordered chronologically. Callers hand it to the
// dispatcher, which copies it before passing it on, so a Conversation is
// never mutated once submitted.
//
//	conv := conversation.Conversation{
//		conversation.User("Generate a README for https://github.com/acme/widget"),
//	}
//	if err := conv.Validate(); err != nil {
//		return err
//	}
package conversation
