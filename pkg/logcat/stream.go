// Copyright (c) 2025, The Kira Authors.  All rights reserved.
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

package logcat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
)

// State is the lifecycle state of a Stream.
type State int32

const (
	StateIdle State = iota
	StateStarting
	StateStreaming
	StateDraining
	StateClosed
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateStarting:
		return "Starting"
	case StateStreaming:
		return "Streaming"
	case StateDraining:
		return "Draining"
	case StateClosed:
		return "Closed"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Streamer starts log streams from a Source.
type Streamer struct {
	source     Source
	bufferSize int
}

// StreamerOption configures a Streamer.
type StreamerOption func(*Streamer)

// WithBufferSize sets the capacity of each stream's entry channel.
func WithBufferSize(n int) StreamerOption {
	return func(s *Streamer) {
		if n > 0 {
			s.bufferSize = n
		}
	}
}

// NewStreamer returns a Streamer reading from source.
func NewStreamer(source Source, opts ...StreamerOption) *Streamer {
	s := &Streamer{
		source:     source,
		bufferSize: defaults.StreamBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stream is one running log session. Entries are delivered on Entries until
// the stream closes; the channel is closed only after the child has exited.
type Stream struct {
	id      string
	buffer  Buffer
	entries chan Entry
	done    chan struct{}
	cancel  context.CancelFunc
	state   atomic.Int32

	mu  sync.Mutex
	err error
}

// Start spawns the log source for buffer and begins delivering entries that
// match filter. The stream ends when ctx is cancelled, Close is called, or
// the source reaches end of output. If the source cannot be started, the
// error is returned and no background work remains.
func (s *Streamer) Start(ctx context.Context, buffer Buffer, filter Filter) (*Stream, error) {
	st := &Stream{
		id:      uuid.New().String(),
		buffer:  buffer,
		entries: make(chan Entry, s.bufferSize),
		done:    make(chan struct{}),
	}
	log := slog.With(slog.String("stream", st.id), slog.String("buffer", buffer.Arg()))

	st.setState(StateStarting)
	proc, err := s.source.Start(ctx, buffer)
	if err == nil && proc.Stdout() == nil {
		_ = proc.Terminate()
		_ = proc.Wait()
		err = errors.New(errors.ErrCodeInternal, "log source has no output")
	}
	if err != nil {
		st.setState(StateFailed)
		streamsTotal.WithLabelValues("failed").Inc()
		log.Error("failed to start logcat stream", slog.String("error", err.Error()))
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	st.setState(StateStreaming)
	streamsTotal.WithLabelValues("started").Inc()
	streamsActive.Inc()
	log.Info("logcat stream started")

	go st.run(ctx, proc, filter, log)
	return st, nil
}

// ID returns the session id of the stream.
func (st *Stream) ID() string {
	return st.id
}

// Buffer returns the buffer the stream reads.
func (st *Stream) Buffer() Buffer {
	return st.buffer
}

// Entries returns the channel of matching entries. It is closed when the
// stream ends.
func (st *Stream) Entries() <-chan Entry {
	return st.entries
}

// Done is closed once the stream has reached StateClosed.
func (st *Stream) Done() <-chan struct{} {
	return st.done
}

// State returns the current lifecycle state.
func (st *Stream) State() State {
	return State(st.state.Load())
}

// Err returns why the stream ended: nil after cancellation or Close, a
// STREAM_CLOSED error when the source ended on its own, or the read error.
// It is meaningful once Done is closed.
func (st *Stream) Err() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.err
}

// Close stops the stream and waits for the child to exit.
// It is safe to call more than once.
func (st *Stream) Close() error {
	st.cancel()
	<-st.done
	return nil
}

func (st *Stream) setState(s State) {
	st.state.Store(int32(s))
}

func (st *Stream) run(ctx context.Context, proc Process, filter Filter, log *slog.Logger) {
	defer close(st.done)
	defer streamsActive.Dec()

	var once sync.Once
	terminate := func() {
		once.Do(func() {
			if err := proc.Terminate(); err != nil {
				log.Warn("failed to terminate logcat", slog.String("error", err.Error()))
			}
		})
	}
	stop := context.AfterFunc(ctx, terminate)
	defer stop()

	delivered, readErr := st.pump(ctx, proc.Stdout(), filter)

	st.setState(StateDraining)
	terminate()
	waitErr := proc.Wait()

	var endErr error
	switch {
	case readErr != nil:
		endErr = errors.Wrap(errors.ErrCodeTransport, "failed to read logcat output", readErr)
	case ctx.Err() == nil:
		endErr = errors.New(errors.ErrCodeStreamClosed, "log source ended")
	}

	attrs := []any{slog.Int("delivered", delivered)}
	if waitErr != nil {
		attrs = append(attrs, slog.String("exit", waitErr.Error()))
	}
	if se, ok := proc.(interface{ Stderr() string }); ok {
		if msg := strings.TrimSpace(se.Stderr()); msg != "" {
			attrs = append(attrs, slog.String("stderr", msg))
		}
	}
	log.Debug("logcat child exited", attrs...)

	st.mu.Lock()
	st.err = endErr
	st.mu.Unlock()

	st.setState(StateClosed)
	close(st.entries)
	log.Info("logcat stream closed", slog.Int("delivered", delivered))
}

// pump delivers matching entries until ctx is done or r is exhausted.
// Lines longer than defaults.StreamMaxLineSize are cut to that size.
func (st *Stream) pump(ctx context.Context, r io.Reader, filter Filter) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	delivered := 0
	for {
		if ctx.Err() != nil {
			return delivered, nil
		}
		text, truncated, readErr := readLine(br, defaults.StreamMaxLineSize)
		if readErr != nil && text == "" {
			if ctx.Err() != nil || readErr == io.EOF {
				return delivered, nil
			}
			return delivered, readErr
		}
		if truncated {
			streamEntriesTotal.WithLabelValues("truncated").Inc()
		}

		entry, ok := ParseLine(strings.ToValidUTF8(text, "\uFFFD"))
		if ok && filter.Matches(entry) {
			if ctx.Err() != nil {
				return delivered, nil
			}
			select {
			case st.entries <- entry:
				delivered++
				streamEntriesTotal.WithLabelValues("delivered").Inc()
			case <-ctx.Done():
				return delivered, nil
			}
		} else if ok {
			streamEntriesTotal.WithLabelValues("filtered").Inc()
		}

		if readErr != nil {
			if ctx.Err() != nil || readErr == io.EOF {
				return delivered, nil
			}
			return delivered, readErr
		}
	}
}

// readLine returns the next line of br without its line ending, keeping at
// most limit bytes of it. The rest of an oversize line is consumed and
// dropped. A final line without a newline is returned with io.EOF.
func readLine(br *bufio.Reader, limit int) (string, bool, error) {
	var buf []byte
	truncated := false
	for {
		frag, err := br.ReadSlice('\n')
		content := frag
		if err == nil {
			content = frag[:len(frag)-1]
		}
		if !truncated {
			if room := limit - len(buf); len(content) > room {
				buf = append(buf, content[:room]...)
				truncated = true
			} else {
				buf = append(buf, content...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		return strings.TrimSuffix(string(buf), "\r"), truncated, err
	}
}
