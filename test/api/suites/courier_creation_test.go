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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qa-scooter/courier-tests/test/api"
)

var _ = Describe("Courier Creation", func() {
	Context("When creating a courier account", func() {
		Describe("Given a valid unique login, password and first name", func() {
			It("should create the courier and answer ok", func() {
				resp := api.CreateCourier(client, ctx,
					api.NewCourierPayload().Build())

				api.VerifyCreated(resp)
				Expect(resp.Body).To(HaveKeyWithValue("ok", BeTrue()))
			})

			It("should accept the typed payload form", func() {
				resp := api.CreateCourier(client, ctx,
					api.NewCourierPayload().BuildTyped())

				api.VerifyCreated(resp)
			})
		})

		Describe("Given a login that is already registered", func() {
			BeforeEach(func() {
				api.EnsureCourierRegistered(client, ctx, config)
			})

			It("should reject the request with a conflict", func() {
				resp := api.CreateCourier(client, ctx,
					api.NewCourierPayload().
						WithLogin(config.ExistingLogin).
						Build())

				api.VerifyRejected(resp, http.StatusConflict, config.LoginTakenMessage)
			})
		})

		Describe("Given a required field is missing", func() {
			DescribeTable("should reject the request for lack of data",
				func(build func(*api.CourierPayloadBuilder) *api.CourierPayloadBuilder) {
					resp := api.CreateCourier(client, ctx,
						build(api.NewCourierPayload()).Build())

					api.VerifyRejected(resp, http.StatusBadRequest, config.NotEnoughDataMessage)
				},
				Entry("with an empty login", func(b *api.CourierPayloadBuilder) *api.CourierPayloadBuilder {
					return b.WithLogin("")
				}),
				Entry("with an empty password", func(b *api.CourierPayloadBuilder) *api.CourierPayloadBuilder {
					return b.WithPassword("")
				}),
				Entry("without a login", func(b *api.CourierPayloadBuilder) *api.CourierPayloadBuilder {
					return b.Without("login")
				}),
				Entry("without a password", func(b *api.CourierPayloadBuilder) *api.CourierPayloadBuilder {
					return b.Without("password")
				}),
			)
		})

		Describe("Given an additional last name field", func() {
			It("should create the courier and answer ok", func() {
				resp := api.CreateCourier(client, ctx,
					api.NewCourierPayload().
						WithLastName(api.ExtraLastName).
						Build())

				api.VerifyCreated(resp)
			})
		})
	})
})
