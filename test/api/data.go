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

package api

// Static fixture data.
const (
	// ExistingLogin is registered before the duplicate login specs run,
	// so it is always taken when they issue their request.
	ExistingLogin    = "ninja-courier"
	ExistingPassword = "1234"

	// ExtraLastName is sent as the unrecognised field in the extra field test.
	ExtraLastName = "Testovich"

	LoginTakenMessage    = "this login is already in use"
	NotEnoughDataMessage = "not enough data to create account"
)
