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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"fmt"
	"maps"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"k8s.io/utils/ptr"
)

// CourierPayloadBuilder builds courier creation payloads for testing.
// Payloads are maps so that empty and absent fields can both be expressed.
type CourierPayloadBuilder struct {
	payload map[string]interface{}
}

// NewCourierPayload creates a new payload builder with a random, unique courier.
func NewCourierPayload() *CourierPayloadBuilder {
	return &CourierPayloadBuilder{
		payload: map[string]interface{}{
			"login":     RandomLogin(),
			"password":  RandomPassword(),
			"firstName": RandomFirstName(),
		},
	}
}

// WithLogin sets the login, an empty string is sent as is.
func (b *CourierPayloadBuilder) WithLogin(login string) *CourierPayloadBuilder {
	b.payload["login"] = login
	return b
}

// WithPassword sets the password, an empty string is sent as is.
func (b *CourierPayloadBuilder) WithPassword(password string) *CourierPayloadBuilder {
	b.payload["password"] = password
	return b
}

func (b *CourierPayloadBuilder) WithFirstName(firstName string) *CourierPayloadBuilder {
	b.payload["firstName"] = firstName
	return b
}

// WithLastName adds the optional last name.
func (b *CourierPayloadBuilder) WithLastName(lastName string) *CourierPayloadBuilder {
	b.payload["lastName"] = lastName
	return b
}

// Without removes a field from the payload entirely.
func (b *CourierPayloadBuilder) Without(field string) *CourierPayloadBuilder {
	delete(b.payload, field)
	return b
}

// Build returns a copy of the completed payload.
func (b *CourierPayloadBuilder) Build() map[string]interface{} {
	return maps.Clone(b.payload)
}

// BuildTyped returns the payload as a CourierRequest.  Absent fields become
// empty strings, apart from the last name which is omitted.
func (b *CourierPayloadBuilder) BuildTyped() *CourierRequest {
	request := &CourierRequest{
		Login:     stringField(b.payload, "login"),
		Password:  stringField(b.payload, "password"),
		FirstName: stringField(b.payload, "firstName"),
	}

	if _, ok := b.payload["lastName"]; ok {
		request.LastName = ptr.To(stringField(b.payload, "lastName"))
	}

	return request
}

func stringField(payload map[string]interface{}, field string) string {
	value, _ := payload[field].(string)
	return value
}

// credentials extracts the login and password from either payload form.
func credentials(payload interface{}) (string, string) {
	switch t := payload.(type) {
	case map[string]interface{}:
		return stringField(t, "login"), stringField(t, "password")
	case *CourierRequest:
		return t.Login, t.Password
	case CourierRequest:
		return t.Login, t.Password
	}

	return "", ""
}

// CreateCourier posts the payload and, if the service created a courier,
// schedules its deletion.  The response is returned for the caller to assert on.
func CreateCourier(client *APIClient, ctx context.Context, payload interface{}) *CourierResponse {
	resp, err := client.CreateCourier(ctx, payload)
	Expect(err).NotTo(HaveOccurred(), "courier creation request should complete")

	if resp.StatusCode == http.StatusCreated {
		login, password := credentials(payload)
		TrackCourier(client, ctx, resp, login, password)
	}

	return resp
}

// TrackCourier captures the identifier of a created courier and schedules
// its deletion.  The service may omit the identifier from the creation
// response, in which case it is resolved by logging in.
func TrackCourier(client *APIClient, ctx context.Context, created *CourierResponse, login, password string) CourierID {
	var courierID CourierID

	if created.ID != nil {
		courierID = *created.ID
	} else {
		id, err := client.LoginCourier(ctx, login, password)
		Expect(err).NotTo(HaveOccurred(), "created courier %q must be resolvable so it can be deleted", login)

		courierID = id
	}

	GinkgoWriter.Printf("Created courier %q with ID: %s\n", login, courierID)

	// Runs whether the test passes or fails, keeping the login namespace clean.
	DeferCleanup(func() {
		GinkgoWriter.Printf("Cleaning up courier: %s\n", courierID)
		DeleteCourier(client, ctx, courierID)
	})

	return courierID
}

// DeleteCourier deletes a courier and asserts the service acknowledged it.
func DeleteCourier(client *APIClient, ctx context.Context, courierID CourierID) {
	resp, err := client.DeleteCourier(ctx, courierID)
	Expect(err).NotTo(HaveOccurred(), "courier deletion request should complete")
	Expect(resp.StatusCode).To(Equal(http.StatusOK), "deleting courier %s: %s", courierID, resp.MessageText())
	Expect(resp.IsOK()).To(BeTrue(), "deleting courier %s should answer ok", courierID)

	GinkgoWriter.Printf("Successfully deleted courier: %s\n", courierID)
}

// EnsureCourierRegistered makes sure the fixture login exists on the service.
// If this call had to create it, it is deleted again after the test.
func EnsureCourierRegistered(client *APIClient, ctx context.Context, config *TestConfig) {
	payload := NewCourierPayload().
		WithLogin(config.ExistingLogin).
		WithPassword(config.ExistingPassword).
		Build()

	resp := CreateCourier(client, ctx, payload)

	switch resp.StatusCode {
	case http.StatusCreated:
		GinkgoWriter.Printf("Registered fixture login %q\n", config.ExistingLogin)
	case http.StatusConflict:
		GinkgoWriter.Printf("Fixture login %q already registered\n", config.ExistingLogin)
	default:
		Fail(fmt.Sprintf("unable to register fixture login %q: status %d: %s", config.ExistingLogin, resp.StatusCode, resp.MessageText()))
	}
}

// VerifyCreated verifies a successful creation response.
func VerifyCreated(resp *CourierResponse) {
	Expect(resp.StatusCode).To(Equal(http.StatusCreated), "unexpected creation status, message: %s", resp.MessageText())
	Expect(resp.IsOK()).To(BeTrue(), "creation body should be ok: true")
	Expect(resp.Message).To(BeNil(), "creation body should carry no message")
}

// VerifyRejected verifies an error response carries the expected status and message.
func VerifyRejected(resp *CourierResponse, status int, message string) {
	Expect(resp.StatusCode).To(Equal(status))
	Expect(resp.OK).To(BeNil(), "error body should not carry ok")
	Expect(resp.MessageText()).To(Equal(message))
}
