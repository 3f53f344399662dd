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

package report

import (
	"strconv"
	"strings"

	"github.com/kira-tools/kira/pkg/errors"
)

// loopback is skipped by ParseNetworkInterfaces.
const loopback = "lo"

// NetworkInterface is one interface block of `ip addr show`.
type NetworkInterface struct {
	Name  string   `json:"name" yaml:"name"`
	State string   `json:"state" yaml:"state"`
	MTU   int      `json:"mtu,omitempty" yaml:"mtu,omitempty"`
	MAC   string   `json:"mac,omitempty" yaml:"mac,omitempty"`
	IPv4  []string `json:"ipv4,omitempty" yaml:"ipv4,omitempty"`
	IPv6  []string `json:"ipv6,omitempty" yaml:"ipv6,omitempty"`
}

// ParseNetworkInterfaces parses `ip addr show`. Each block starts with an
// "N: name: <FLAGS> ..." header; addresses are kept without their prefix
// length. The loopback interface is skipped, and an interface without a
// "state" token is reported as DOWN.
func ParseNetworkInterfaces(output string) []NetworkInterface {
	ifaces := []NetworkInterface{}
	var cur *NetworkInterface
	flush := func() {
		if cur != nil && cur.Name != loopback {
			ifaces = append(ifaces, *cur)
		}
		cur = nil
	}

	for _, line := range strings.Split(output, "\n") {
		if iface, ok := parseInterfaceHeader(line); ok {
			flush()
			cur = &iface
			continue
		}
		if cur == nil {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		addr, _, _ := strings.Cut(fields[1], "/")
		switch fields[0] {
		case "inet":
			cur.IPv4 = append(cur.IPv4, addr)
		case "inet6":
			cur.IPv6 = append(cur.IPv6, addr)
		case "link/ether":
			cur.MAC = fields[1]
		}
	}
	flush()

	return ifaces
}

// parseInterfaceHeader parses "3: wlan0@if7: <BROADCAST,UP> mtu 1500 ... state UP".
func parseInterfaceHeader(line string) (NetworkInterface, bool) {
	if line == "" || line[0] < '0' || line[0] > '9' {
		return NetworkInterface{}, false
	}
	index, rest, ok := strings.Cut(line, ": ")
	if !ok {
		return NetworkInterface{}, false
	}
	if _, err := strconv.Atoi(index); err != nil {
		return NetworkInterface{}, false
	}
	name, attrs, _ := strings.Cut(rest, ": ")
	name, _, _ = strings.Cut(strings.TrimSuffix(strings.TrimSpace(name), ":"), "@")
	if name == "" {
		return NetworkInterface{}, false
	}

	iface := NetworkInterface{Name: name, State: "DOWN"}
	fields := strings.Fields(attrs)
	for i := 0; i+1 < len(fields); i++ {
		switch fields[i] {
		case "mtu":
			if mtu, err := strconv.Atoi(fields[i+1]); err == nil {
				iface.MTU = mtu
			}
		case "state":
			iface.State = fields[i+1]
		}
	}
	return iface, true
}

// SELinuxMode is the enforcement mode printed by `getenforce`.
type SELinuxMode string

const (
	SELinuxEnforcing  SELinuxMode = "Enforcing"
	SELinuxPermissive SELinuxMode = "Permissive"
	SELinuxDisabled   SELinuxMode = "Disabled"
)

// ParseSELinuxMode parses `getenforce`. Case is ignored.
func ParseSELinuxMode(output string) (SELinuxMode, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "enforcing":
		return SELinuxEnforcing, nil
	case "permissive":
		return SELinuxPermissive, nil
	case "disabled":
		return SELinuxDisabled, nil
	default:
		return "", errors.MissingField("getenforce", "mode")
	}
}
