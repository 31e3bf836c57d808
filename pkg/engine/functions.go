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

package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/sapucc/sapsysinfo/pkg/errors"
	"github.com/sapucc/sapsysinfo/pkg/sap"
)

// Execution functions on the minion.
const (
	FuncListInstances      = "sap_hostctrl.list_instances"
	FuncSystemInstanceList = "sap_control.get_system_instance_list"
	FuncParameterValue     = "sap_control.parameter_value"
	FuncABAPComponentList  = "sap_control.get_abap_component_list"
	FuncInstanceProperties = "sap_control.get_instance_properties"
	FuncFileGrep           = "file.grep"
	FuncGrainsItem         = "grains.item"
)

var (
	_ sap.HostControl = (*Client)(nil)
	_ sap.Control     = (*Client)(nil)
	_ sap.FileGrepper = (*Client)(nil)
	_ sap.HostFacts   = (*Client)(nil)
)

// instanceNumber accepts 0, "0" and "00".
type instanceNumber sap.InstanceNumber

func (n *instanceNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 99 {
		return fmt.Errorf("invalid instance number %s", b)
	}
	*n = instanceNumber(v)
	return nil
}

// features accepts a list or a "|" separated string.
type features []string

func (f *features) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid features %s", b)
	}
	*f = slices.DeleteFunc(strings.Split(s, "|"), func(v string) bool { return v == "" })
	return nil
}

// failed reports whether a minion result is the literal false that execution
// functions return on failure.
func failed(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("false"))
}

func targetKwargs(t sap.Target) map[string]any {
	return map[string]any{
		"instance_number": t.Instance.String(),
		"fqdn":            t.FQDN,
		"username":        t.Credentials.Username,
		"password":        t.Credentials.Password,
		"verify":          t.Verify,
	}
}

// ListInstances calls the host agent instance list. A null or false result is
// an empty list: discovery that finds nothing is not an error.
func (c *Client) ListInstances(ctx context.Context, sid string, creds sap.Credentials, fallback bool) ([]sap.HostInstance, error) {
	raw, err := c.call(ctx, FuncListInstances, nil, map[string]any{
		"sid":      sid,
		"username": creds.Username,
		"password": creds.Password,
		"fallback": fallback,
	})
	if err != nil {
		return nil, err
	}
	if failed(raw) {
		c.logger.Debug("instance discovery reported failure", "function", FuncListInstances, "sid", sid)
		return nil, nil
	}

	var entries []map[string]instanceNumber
	if err := decode(FuncListInstances, raw, &entries); err != nil {
		return nil, err
	}

	result := make([]sap.HostInstance, 0, len(entries))
	for _, entry := range entries {
		hosts := make([]string, 0, len(entry))
		for host := range entry {
			hosts = append(hosts, host)
		}
		slices.Sort(hosts)
		for _, host := range hosts {
			result = append(result, sap.HostInstance{Hostname: host, Instance: sap.InstanceNumber(entry[host])})
		}
	}
	return result, nil
}

// SystemInstanceList returns all instances of the system t belongs to.
func (c *Client) SystemInstanceList(ctx context.Context, t sap.Target) ([]sap.InstanceInfo, error) {
	raw, err := c.call(ctx, FuncSystemInstanceList, nil, targetKwargs(t))
	if err != nil {
		return nil, err
	}
	if failed(raw) {
		return nil, errors.New(errors.ErrCodeUnavailable, FuncSystemInstanceList+" reported failure")
	}

	var entries []struct {
		Hostname string         `json:"hostname"`
		Instance instanceNumber `json:"instance"`
		Features features       `json:"features"`
	}
	if err := decode(FuncSystemInstanceList, raw, &entries); err != nil {
		return nil, err
	}

	result := make([]sap.InstanceInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, sap.InstanceInfo{
			Hostname: e.Hostname,
			Instance: sap.InstanceNumber(e.Instance),
			Features: e.Features,
		})
	}
	return result, nil
}

// successResult decodes a [success, payload] pair.
func successResult(fun string, raw json.RawMessage, payload any) error {
	var pair []json.RawMessage
	if err := decode(fun, raw, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return errors.New(errors.ErrCodeInternal, fmt.Sprintf("unexpected result of %s: want [success, payload]", fun))
	}

	var ok bool
	if err := decode(fun, pair[0], &ok); err != nil {
		return err
	}
	if !ok {
		var msg string
		_ = json.Unmarshal(pair[1], &msg)
		return errors.NewWithContext(errors.ErrCodeUnavailable, fun+" reported failure",
			map[string]any{"message": msg})
	}
	return decode(fun, pair[1], payload)
}

// ParameterValue returns profile parameters as "key=value" lines.
func (c *Client) ParameterValue(ctx context.Context, t sap.Target, parameter string) (string, error) {
	kwargs := targetKwargs(t)
	kwargs["parameter"] = parameter

	raw, err := c.call(ctx, FuncParameterValue, nil, kwargs)
	if err != nil {
		return "", err
	}
	var value string
	if err := successResult(FuncParameterValue, raw, &value); err != nil {
		return "", err
	}
	return value, nil
}

// ABAPComponentList returns the installed software components.
func (c *Client) ABAPComponentList(ctx context.Context, t sap.Target) ([]sap.SoftwareComponent, error) {
	raw, err := c.call(ctx, FuncABAPComponentList, nil, targetKwargs(t))
	if err != nil {
		return nil, err
	}
	var comps []sap.SoftwareComponent
	if err := successResult(FuncABAPComponentList, raw, &comps); err != nil {
		return nil, err
	}
	return comps, nil
}

// InstanceProperties returns the instance properties. Non-string values are
// rendered with their JSON text.
func (c *Client) InstanceProperties(ctx context.Context, t sap.Target) (map[string]string, error) {
	raw, err := c.call(ctx, FuncInstanceProperties, nil, targetKwargs(t))
	if err != nil {
		return nil, err
	}
	if failed(raw) {
		return nil, errors.New(errors.ErrCodeUnavailable, FuncInstanceProperties+" reported failure")
	}

	var props map[string]json.RawMessage
	if err := decode(FuncInstanceProperties, raw, &props); err != nil {
		return nil, err
	}

	result := make(map[string]string, len(props))
	for k, v := range props {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			s = string(v)
		}
		result[k] = s
	}
	return result, nil
}

// Grep runs grep for pattern in path on the minion.
func (c *Client) Grep(ctx context.Context, path, pattern string) (sap.GrepResult, error) {
	raw, err := c.call(ctx, FuncFileGrep, []any{path, pattern}, nil)
	if err != nil {
		return sap.GrepResult{}, err
	}

	var res struct {
		Retcode int    `json:"retcode"`
		Stdout  string `json:"stdout"`
		Stderr  string `json:"stderr"`
	}
	if err := decode(FuncFileGrep, raw, &res); err != nil {
		return sap.GrepResult{}, err
	}
	return sap.GrepResult{Retcode: res.Retcode, Stdout: res.Stdout, Stderr: res.Stderr}, nil
}

type grains struct {
	FQDN   string `json:"fqdn"`
	Domain string `json:"domain"`
}

func (c *Client) grains(ctx context.Context) (grains, error) {
	var g grains
	raw, err := c.call(ctx, FuncGrainsItem, []any{"fqdn", "domain"}, nil)
	if err != nil {
		return g, err
	}
	err = decode(FuncGrainsItem, raw, &g)
	return g, err
}

// Domain returns the domain grain of the minion.
func (c *Client) Domain(ctx context.Context) (string, error) {
	g, err := c.grains(ctx)
	return g.Domain, err
}

// FQDN returns the fqdn grain of the minion.
func (c *Client) FQDN(ctx context.Context) (string, error) {
	g, err := c.grains(ctx)
	return g.FQDN, err
}
