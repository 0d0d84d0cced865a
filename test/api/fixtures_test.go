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
package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/qa-scooter/courier-tests/test/api"
	"github.com/qa-scooter/courier-tests/test/stub"
)

func TestFixtures(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Fixtures Suite")
}

var _ = Describe("Courier fixtures", func() {
	var (
		ctx    context.Context
		store  *stub.MemoryStore
		client *api.APIClient
		config *api.TestConfig
	)

	setup := func(options stub.Options) {
		ctx = context.Background()
		store = stub.NewMemoryStore()

		// Registered first so it runs last, after every courier cleanup.
		DeferCleanup(func() {
			Expect(store.Len()).To(BeZero(), "every created courier should have been deleted")
		})

		server := httptest.NewServer(stub.New(GinkgoLogr, store, options).Handler())
		DeferCleanup(server.Close)

		config = &api.TestConfig{
			BaseURL:              server.URL,
			RequestTimeout:       5 * time.Second,
			ExistingLogin:        api.ExistingLogin,
			ExistingPassword:     api.ExistingPassword,
			LoginTakenMessage:    stub.MessageLoginTaken,
			NotEnoughDataMessage: stub.MessageNotEnoughData,
		}

		validator, err := api.NewContractValidator(ctx)
		Expect(err).NotTo(HaveOccurred())

		client = api.NewAPIClientWithConfig(config)
		client.SetContractValidator(validator)
	}

	Context("When the service does not echo identifiers", func() {
		BeforeEach(func() {
			setup(stub.Options{})
		})

		It("should resolve the identifier by login and delete the courier afterwards", func() {
			resp := api.CreateCourier(client, ctx, api.NewCourierPayload().Build())

			api.VerifyCreated(resp)
			Expect(resp.ID).To(BeNil())
			Expect(store.Len()).To(Equal(1))
		})

		It("should track couriers created from typed payloads", func() {
			resp := api.CreateCourier(client, ctx, api.NewCourierPayload().WithLastName(api.ExtraLastName).BuildTyped())

			api.VerifyCreated(resp)
			Expect(store.Len()).To(Equal(1))
		})

		It("should not schedule deletion for rejected requests", func() {
			resp := api.CreateCourier(client, ctx, api.NewCourierPayload().WithPassword("").Build())

			api.VerifyRejected(resp, http.StatusBadRequest, stub.MessageNotEnoughData)
			Expect(store.Len()).To(BeZero())
		})

		It("should register the fixture login once and report conflicts after", func() {
			api.EnsureCourierRegistered(client, ctx, config)
			api.EnsureCourierRegistered(client, ctx, config)

			Expect(store.Len()).To(Equal(1))

			resp := api.CreateCourier(client, ctx, api.NewCourierPayload().WithLogin(config.ExistingLogin).Build())
			api.VerifyRejected(resp, http.StatusConflict, stub.MessageLoginTaken)
		})
	})

	Context("When the service echoes identifiers", func() {
		BeforeEach(func() {
			setup(stub.Options{EchoID: true})
		})

		It("should delete the courier by the echoed identifier", func() {
			resp := api.CreateCourier(client, ctx, api.NewCourierPayload().Build())

			api.VerifyCreated(resp)
			Expect(resp.ID).NotTo(BeNil())
		})

		It("should delete explicitly tracked couriers", func() {
			resp, err := client.CreateCourier(ctx, api.NewCourierPayload().Build())
			Expect(err).NotTo(HaveOccurred())

			courierID := api.TrackCourier(client, ctx, resp, "", "")
			Expect(courierID).To(Equal(*resp.ID))
		})
	})
})
