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

import "slices"

// InstanceType is the classification of an instance derived from its features.
type InstanceType string

const (
	TypeABAP          InstanceType = "ABAP"
	TypeWebDispatcher InstanceType = "WEBDISP"
	TypeJava          InstanceType = "JAVA"
	TypeTREX          InstanceType = "TREX"
	TypeHDB           InstanceType = "HDB"
	TypeASCS          InstanceType = "ASCS"
	TypeUnknown       InstanceType = "UNKNOWN"
)

// String returns the string representation of the InstanceType.
func (t InstanceType) String() string {
	return string(t)
}

// Feature names reported by the control protocol.
const (
	FeatureABAP          = "ABAP"
	FeatureWebDispatcher = "WEBDISP"
	FeatureJ2EE          = "J2EE"
	FeatureTREX          = "TREX"
	FeatureHDB           = "HDB"
	FeatureMessageServer = "MESSAGESERVER"
)

// classification is ordered by precedence; the first feature present wins.
var classification = []struct {
	feature string
	typ     InstanceType
}{
	{FeatureABAP, TypeABAP},
	{FeatureWebDispatcher, TypeWebDispatcher},
	{FeatureJ2EE, TypeJava},
	{FeatureTREX, TypeTREX},
	{FeatureHDB, TypeHDB},
	{FeatureMessageServer, TypeASCS},
}

// Classify returns the type of an instance with the given features.
func Classify(features []string) InstanceType {
	for _, c := range classification {
		if slices.Contains(features, c.feature) {
			return c.typ
		}
	}
	return TypeUnknown
}
