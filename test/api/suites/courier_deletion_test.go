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

var _ = Describe("Courier Deletion", func() {
	Context("When deleting a courier account", func() {
		Describe("Given a courier that was just created", func() {
			var (
				login    string
				password string
				deleted  bool
			)

			BeforeEach(func() {
				login = api.RandomLogin()
				password = api.RandomPassword()
				deleted = false

				resp, err := client.CreateCourier(ctx, api.NewCourierPayload().
					WithLogin(login).
					WithPassword(password).
					Build())
				Expect(err).NotTo(HaveOccurred())

				// The test deletes the courier itself, this only catches failures part way.
				DeferCleanup(func() {
					if deleted {
						return
					}

					if courierID, err := client.LoginCourier(ctx, login, password); err == nil {
						api.DeleteCourier(client, ctx, courierID)
					}
				})

				api.VerifyCreated(resp)
			})

			It("should resolve the identifier by logging in and delete it", func() {
				courierID, err := client.LoginCourier(ctx, login, password)
				Expect(err).NotTo(HaveOccurred())
				Expect(courierID).NotTo(BeEmpty())

				api.DeleteCourier(client, ctx, courierID)
				deleted = true

				_, err = client.LoginCourier(ctx, login, password)
				Expect(err).To(HaveOccurred(), "a deleted courier should no longer log in")
				Expect(err.Error()).To(ContainSubstring("404"))
			})
		})

		Describe("Given the documented example courier", func() {
			BeforeEach(func() {
				if !config.UseStub {
					Skip("the example login may already be taken on a shared service")
				}
			})

			It("should create it and then delete it by identifier", func() {
				payload := map[string]interface{}{
					"login":     "rand123",
					"password":  "rand456",
					"firstName": "Ann",
				}

				resp, err := client.CreateCourier(ctx, payload)
				Expect(err).NotTo(HaveOccurred())
				api.VerifyCreated(resp)

				courierID, err := client.LoginCourier(ctx, "rand123", "rand456")
				Expect(err).NotTo(HaveOccurred())

				api.DeleteCourier(client, ctx, courierID)
			})
		})

		Describe("Given an identifier that does not exist", func() {
			It("should answer not found", func() {
				resp, err := client.DeleteCourier(ctx, api.CourierID("999999999"))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				Expect(resp.Message).NotTo(BeNil())
			})
		})
	})
})
