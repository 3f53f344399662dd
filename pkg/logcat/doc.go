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

// Package logcat parses Android log lines and streams them from a device.
//
// # Parsing
//
// ParseLine recognizes the threadtime layout
//
//	01-15 10:30:45.123  1234  5678 I ActivityManager: Starting activity
//
// then the brief layouts ("I/Tag( 1234): msg" and "[Tag] I msg"), and
// otherwise returns a degenerate entry carrying the whole line as its
// message at Debug level. Every non-blank line yields exactly one Entry.
//
// # Streaming
//
// A Streamer starts one child process per Stream through a Source and owns
// it until the stream is closed:
//
//	streamer := logcat.NewStreamer(logcat.NewADBSource(adb))
//	stream, err := streamer.Start(ctx, logcat.BufferMain, logcat.Filter{Tag: "ActivityManager"})
//	if err != nil {
//	    return err
//	}
//	defer stream.Close()
//	for entry := range stream.Entries() {
//	    fmt.Println(entry)
//	}
//
// A stream moves through Idle, Starting, Streaming, Draining and Closed, or
// ends in Failed when the child cannot be started. Entries are delivered in
// order and never dropped; a slow consumer blocks the reader. Closing the
// stream, cancelling its context, or end of output terminates the child
// before the entry channel is closed, and the stream reports Closed by the
// time the channel is. A line longer than defaults.StreamMaxLineSize is cut
// to that size instead of ending the stream.
package logcat
