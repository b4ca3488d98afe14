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

package metrics

import (
	"context"
	"time"

	"rivaas.dev/mapping/dispatch"
	"rivaas.dev/mapping/handler"
)

// Noop discards every measurement. Use it where a recorder is required
// but instrumentation is not wanted.
type Noop struct{}

func (Noop) RecordLookup(context.Context, handler.Outcome, time.Duration)   {}
func (Noop) RecordDispatch(context.Context, dispatch.Outcome, time.Duration) {}

var (
	_ handler.Recorder  = Noop{}
	_ dispatch.Recorder = Noop{}
)
