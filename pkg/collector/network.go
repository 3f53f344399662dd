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

package collector

import (
	"context"

	"github.com/kira-tools/kira/pkg/report"
)

// Networks lists network interfaces other than loopback.
func (d *Device) Networks(ctx context.Context) ([]report.NetworkInterface, error) {
	out, err := d.run(ctx, "network interfaces", "ip addr show")
	if err != nil {
		return nil, err
	}
	return report.ParseNetworkInterfaces(out), nil
}

// SELinux returns the SELinux enforcement mode.
func (d *Device) SELinux(ctx context.Context) (report.SELinuxMode, error) {
	out, err := d.run(ctx, "selinux mode", "getenforce")
	if err != nil {
		return "", err
	}
	return report.ParseSELinuxMode(out)
}
