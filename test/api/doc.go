/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package api provides end-to-end test utilities for the courier API.
//
// # Separate Client Implementation
//
// The courier service is a third party and publishes no client, so this
// package carries its own HTTP client (APIClient). The client is deliberately
// thin: it returns status codes and decoded bodies untouched so that test
// cases can assert on the exact contract, including error responses.
//
// Features tailored for end-to-end testing:
//   - W3C trace context propagation for request correlation
//   - Request and response logging to the Ginkgo writer
//   - Optional response validation against the embedded OpenAPI document
//
// # Resource Lifecycle
//
// Every courier created through CreateCourier is tracked and deleted by a
// DeferCleanup node once the test finishes, whether it passed or failed.
// Logins are randomly generated so repeated runs never collide.
package api
