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

// Package hostfacts answers host level questions on the machine running the
// collector: its fully qualified name, its DNS domain and the content of
// system files such as the service name database.
//
// Facts implements sap.HostFacts and Files implements sap.FileGrepper, so a
// collector running on the SAP host itself needs no automation engine for
// these two capabilities.
package hostfacts
