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

// Package client builds Kubernetes clients for the snapshot store.
//
// Snapshots can be written to and read from ConfigMaps using cm://namespace/name
// URIs. Both paths need a clientset, which this package resolves the same way
// kubectl does:
//
//   - an explicit kubeconfig path
//   - the KUBECONFIG environment variable
//   - ~/.kube/config when it exists
//   - the pod service account when none of the above apply
//
// Shared caches the first discovered client for the life of the process:
//
//	cs, _, err := client.Shared()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// New always builds a fresh client and is used when a command is given an
// explicit --kubeconfig. Tests inject k8s.io/client-go/kubernetes/fake
// clientsets through the serializer options instead of touching this package.
package client
