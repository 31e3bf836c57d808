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

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/util/homedir"
)

// Interface is the clientset surface used by the snapshot store. Tests pass
// fake.NewSimpleClientset() where an Interface is expected.
type Interface = kubernetes.Interface

var (
	sharedOnce   sync.Once
	sharedClient Interface
	sharedConfig *rest.Config
	sharedErr    error
)

// Shared returns a process-wide client built from the discovered kubeconfig.
// The first result, including an error, is cached for later calls.
func Shared() (Interface, *rest.Config, error) {
	sharedOnce.Do(func() {
		sharedClient, sharedConfig, sharedErr = New("")
	})
	return sharedClient, sharedConfig, sharedErr
}

// ResolveKubeconfig returns the kubeconfig path New would use. An empty
// result means in-cluster configuration.
func ResolveKubeconfig(kubeconfig string) string {
	if kubeconfig != "" {
		return kubeconfig
	}
	if env := os.Getenv("KUBECONFIG"); env != "" {
		return env
	}
	home := filepath.Join(homedir.HomeDir(), ".kube", "config")
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return ""
}

// New builds an uncached client. An empty kubeconfig is resolved from
// KUBECONFIG, then ~/.kube/config, then the pod service account.
func New(kubeconfig string) (Interface, *rest.Config, error) {
	var (
		config *rest.Config
		err    error
	)

	path := ResolveKubeconfig(kubeconfig)
	if path == "" {
		// Skips the "Neither --kubeconfig nor --master" warning from clientcmd.
		config, err = rest.InClusterConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get in-cluster config: %w", err)
		}
	} else {
		config, err = clientcmd.BuildConfigFromFlags("", path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to build kube config from %s: %w", path, err)
		}
	}

	cs, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	return cs, config, nil
}

// ForKubeconfig returns the shared client when kubeconfig is empty and a
// fresh client for an explicit path.
func ForKubeconfig(kubeconfig string) (Interface, error) {
	var (
		cs  Interface
		err error
	)
	if kubeconfig == "" {
		cs, _, err = Shared()
	} else {
		cs, _, err = New(kubeconfig)
	}
	return cs, err
}
