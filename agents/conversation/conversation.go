/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package conversation

import (
	"errors"
	"fmt"
	"slices"
)

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	// ErrEmpty is returned when a conversation has no messages.
	ErrEmpty = errors.New("conversation must contain at least one message")

	// ErrInvalidRole is returned when a message carries an unknown role.
	ErrInvalidRole = errors.New("invalid message role")
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is a single role-tagged entry in a conversation.
type Message struct {
	Role    Role   `json:"role" jsonschema:"required,enum=system,enum=user,enum=assistant,description=Author of the message"`
	Content string `json:"content" jsonschema:"required,description=Message text"`
}

// System returns a system message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User returns a user message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant returns an assistant message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Conversation is an ordered sequence of messages.
type Conversation []Message

// Validate checks that the conversation is non-empty and that every message
// has a known role. Content is not inspected; the model provider decides
// what it accepts.
func (c Conversation) Validate() error {
	if len(c) == 0 {
		return ErrEmpty
	}
	for i, m := range c {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d: %w: %q", i, ErrInvalidRole, m.Role)
		}
	}
	return nil
}

// Clone returns a copy that shares no backing array with c.
func (c Conversation) Clone() Conversation {
	return slices.Clone(c)
}

// LastUserContent returns the content of the most recent user message, or
// the empty string if there is none.
func (c Conversation) LastUserContent() string {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Role == RoleUser {
			return c[i].Content
		}
	}
	return ""
}
