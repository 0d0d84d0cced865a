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

import (
	"k8s.io/apimachinery/pkg/util/rand"
)

const (
	loginLength     = 10
	passwordLength  = 10
	firstNameLength = 10
)

// RandomLogin returns a login that is vanishingly unlikely to be registered already.
func RandomLogin() string {
	return rand.String(loginLength)
}

func RandomPassword() string {
	return rand.String(passwordLength)
}

func RandomFirstName() string {
	return rand.String(firstNameLength)
}
