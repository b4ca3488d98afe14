// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import "github.com/google/uuid"

// Message is the unit of dispatch: an identified payload addressed to a
// destination. Messages are not mutated by the dispatcher; handlers may
// read them concurrently.
type Message struct {
	// ID identifies the message in logs and error reports.
	ID string

	// Destination addresses the message, e.g. "/queue/orders".
	Destination string

	// Headers carries transport metadata.
	Headers map[string]string

	// Payload is the raw message body.
	Payload []byte
}

// MessageOption configures a Message under construction.
type MessageOption func(*Message)

// WithID overrides the generated message ID.
func WithID(id string) MessageOption {
	return func(m *Message) { m.ID = id }
}

// WithHeader adds a header to the message.
func WithHeader(name, value string) MessageOption {
	return func(m *Message) {
		if m.Headers == nil {
			m.Headers = make(map[string]string)
		}
		m.Headers[name] = value
	}
}

// NewMessage builds a message with a generated unique ID.
func NewMessage(destination string, payload []byte, opts ...MessageOption) *Message {
	m := &Message{
		ID:          uuid.NewString(),
		Destination: destination,
		Payload:     payload,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}
