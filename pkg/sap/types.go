// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package sap

import (
	"fmt"
	"strconv"
)

// InstanceNumber is the two digit number of an SAP instance (00-99).
type InstanceNumber int

// String returns the zero padded form used in profiles and service names.
func (n InstanceNumber) String() string {
	return fmt.Sprintf("%02d", int(n))
}

// MarshalText encodes n as its two digit form so map keys read "00", not "0".
func (n InstanceNumber) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText accepts "0" through "99", with or without zero padding.
func (n *InstanceNumber) UnmarshalText(b []byte) error {
	v, err := strconv.Atoi(string(b))
	if err != nil || v < 0 || v > 99 {
		return fmt.Errorf("invalid instance number %q", b)
	}
	*n = InstanceNumber(v)
	return nil
}

// Credentials authenticate against the host agent and sapstartsrv.
type Credentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"-"`
}

// Request describes one system collection.
type Request struct {
	SID         string
	Credentials Credentials
	// Verify enables TLS verification for control protocol and message server calls.
	// When false, host-control discovery is allowed to fall back to plain HTTP.
	Verify bool
}

// Target addresses a single instance for control protocol calls.
type Target struct {
	Instance    InstanceNumber
	FQDN        string
	Credentials Credentials
	Verify      bool
}

// HostInstance is one entry returned by host-control instance discovery.
type HostInstance struct {
	Hostname string
	Instance InstanceNumber
}

// InstanceInfo is one entry of the control protocol system instance list.
type InstanceInfo struct {
	Hostname string
	Instance InstanceNumber
	Features []string
}

// SoftwareComponent is an installed ABAP software component.
type SoftwareComponent struct {
	Component     string `json:"component" yaml:"component"`
	Release       string `json:"release" yaml:"release"`
	PatchLevel    string `json:"patchlevel" yaml:"patchlevel"`
	ComponentType string `json:"componenttype,omitempty" yaml:"componenttype,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SystemData is the consolidated description of one SAP system.
// An empty value (no instances) means the system is not present on the host.
//
// Ports (msport, httpport, httpsport) are serialized as JSON and YAML numbers,
// e.g. "msport": 3601, where the engine module returned strings ("3601").
// Consumers comparing against the module output must convert.
type SystemData struct {
	Instances          map[InstanceNumber]*InstanceRecord `json:"instances,omitempty" yaml:"instances,omitempty"`
	DBHost             string                             `json:"db_host,omitempty" yaml:"db_host,omitempty"`
	DBInstance         string                             `json:"db_instance,omitempty" yaml:"db_instance,omitempty"`
	SoftwareComponents []SoftwareComponent                `json:"software_components,omitempty" yaml:"software_components,omitempty"`
	MessageServers     []MessageServerRecord              `json:"message_servers,omitempty" yaml:"message_servers,omitempty"`
	LogonGroups        []string                           `json:"logon_groups,omitempty" yaml:"logon_groups,omitempty"`
}

// IsEmpty reports whether no instances were found.
func (d *SystemData) IsEmpty() bool {
	return d == nil || len(d.Instances) == 0
}

// InstanceRecord describes one instance of the system. The instance number is
// the key in SystemData.Instances and is not repeated here.
type InstanceRecord struct {
	Hostname  string       `json:"hostname" yaml:"hostname"`
	FQDN      string       `json:"fqdn" yaml:"fqdn"`
	Features  []string     `json:"features" yaml:"features"`
	Type      InstanceType `json:"type" yaml:"type"`
	Name      string       `json:"name" yaml:"name"`
	HTTPPort  int          `json:"httpport,omitempty" yaml:"httpport,omitempty"`
	HTTPSPort int          `json:"httpsport,omitempty" yaml:"httpsport,omitempty"`
}

// MessageServerRecord describes a message server endpoint. HTTPPort is the
// 81<NN> default; listener ports from ms/server_port_* stay on the instance.
type MessageServerRecord struct {
	Host      string `json:"host" yaml:"host"`
	MSPort    int    `json:"msport" yaml:"msport"`
	HTTPPort  int    `json:"httpport,omitempty" yaml:"httpport,omitempty"`
	HTTPSPort int    `json:"httpsport,omitempty" yaml:"httpsport,omitempty"`
}
