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

package snapshotter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kira-tools/kira/pkg/collector"
	"github.com/kira-tools/kira/pkg/defaults"
	"github.com/kira-tools/kira/pkg/errors"
	"github.com/kira-tools/kira/pkg/header"
)

// Snapshotter builds composite documents from independent device queries.
type Snapshotter struct {
	device      *collector.Device
	version     string
	concurrency int
	timeout     time.Duration
}

// Option configures a Snapshotter.
type Option func(*Snapshotter)

// WithVersion records the tool version in document metadata.
func WithVersion(v string) Option {
	return func(s *Snapshotter) {
		s.version = v
	}
}

// WithConcurrency bounds how many queries run at once. Default is
// defaults.SnapshotConcurrency, one command at a time.
func WithConcurrency(n int) Option {
	return func(s *Snapshotter) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTimeout bounds a whole snapshot. Default is defaults.SnapshotTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Snapshotter) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New returns a Snapshotter querying dev.
func New(dev *collector.Device, opts ...Option) *Snapshotter {
	s := &Snapshotter{
		device:      dev,
		concurrency: defaults.SnapshotConcurrency,
		timeout:     defaults.SnapshotTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot collects identity, storage, battery and display attributes.
// A failing query is recorded in its own field and never fails the
// snapshot; an error is returned only when ctx ended before collection.
func (s *Snapshotter) Snapshot(ctx context.Context) (*DeviceSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slog.Debug("starting device snapshot", slog.String("serial", s.device.Serial()))
	start := time.Now()

	snap := &DeviceSnapshot{Serial: s.device.Serial()}
	snap.Init(header.KindDeviceSnapshot, FullAPIVersion, s.version)
	snap.SetMetadata(header.MetadataSerial, s.device.Serial())

	g := s.group()
	d := s.device
	query(ctx, g, "model", &snap.Model, d.Model)
	query(ctx, g, "manufacturer", &snap.Manufacturer, d.Manufacturer)
	query(ctx, g, "os_version", &snap.OSVersion, d.OSVersion)
	query(ctx, g, "abi", &snap.ABI, d.ABI)
	query(ctx, g, "slot", &snap.Slot, d.Slot)
	query(ctx, g, "storage", &snap.Storage, d.Storage)
	query(ctx, g, "battery", &snap.Battery, func(ctx context.Context) (uint8, error) {
		info, err := d.Battery(ctx)
		return info.Level, err
	})
	query(ctx, g, "screen", &snap.Screen, d.ScreenSize)
	query(ctx, g, "refresh_rate", &snap.RefreshRate, d.RefreshRate)
	query(ctx, g, "build", &snap.Build, d.BuildInfo)

	return snap, s.finish(ctx, g, "snapshot", start)
}

// Profile samples memory, battery, CPU counters, the frame flip counter and
// uptime with the same field-scoped semantics as Snapshot.
func (s *Snapshotter) Profile(ctx context.Context) (*PerformanceProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	slog.Debug("starting performance profile", slog.String("serial", s.device.Serial()))
	start := time.Now()

	prof := &PerformanceProfile{Serial: s.device.Serial()}
	prof.Init(header.KindPerformanceProfile, FullAPIVersion, s.version)
	prof.SetMetadata(header.MetadataSerial, s.device.Serial())

	g := s.group()
	d := s.device
	query(ctx, g, "memory", &prof.Memory, d.Memory)
	query(ctx, g, "battery", &prof.Battery, d.Battery)
	query(ctx, g, "cpu", &prof.CPUs, d.CPUs)
	query(ctx, g, "flips", &prof.Flips, d.Flips)
	query(ctx, g, "uptime", &prof.Uptime, d.Uptime)

	return prof, s.finish(ctx, g, "profile", start)
}

func (s *Snapshotter) group() *errgroup.Group {
	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	return g
}

// finish waits for every query. Queries never return errors to the group.
func (s *Snapshotter) finish(ctx context.Context, g *errgroup.Group, kind string, start time.Time) error {
	_ = g.Wait()
	snapshotCollectionDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err := ctx.Err(); err != nil {
		snapshotCollectionTotal.WithLabelValues(kind, "canceled").Inc()
		return errors.Wrap(errors.ErrCodeTimeout, kind+" did not complete", err)
	}
	snapshotCollectionTotal.WithLabelValues(kind, "success").Inc()
	slog.Debug(kind+" complete", slog.Duration("duration", time.Since(start)))
	return nil
}

// query runs fn in g and stores its result in dst.
func query[T any](ctx context.Context, g *errgroup.Group, name string, dst *Outcome[T], fn func(context.Context) (T, error)) {
	g.Go(func() error {
		start := time.Now()
		defer func() {
			snapshotQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
		}()

		v, err := fn(ctx)
		if err != nil {
			snapshotQueryFailures.WithLabelValues(name, string(errors.CodeOf(err))).Inc()
			slog.Debug("query failed", slog.String("query", name), slog.String("error", err.Error()))
			*dst = Failed[T](err)
			return nil
		}
		*dst = Succeeded(v)
		return nil
	})
}
