// Package mocks provides mock implementations of the backend ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockEarningsAPI(ctrl)
//	api.EXPECT().Earnings(gomock.Any(), "token").Return(model.Earnings{AvailableBalance: 10}, nil)
package mocks

// Generate mocks for the REST backend surfaces from internal/ports.
// This creates MockAccountAPI, MockAdminAPI, MockEarningsAPI, MockFilesAPI and MockNotificationsAPI.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=backend_mock.go github.com/megabox/megabox-web/internal/ports AccountAPI,AdminAPI,EarningsAPI,FilesAPI,NotificationsAPI

// Generate mocks for the auth and idempotency ports from internal/ports.
// This creates MockAuthAPI, MockAuthProvider, MockIdempotencyStore and MockTokenClaims.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/megabox/megabox-web/internal/ports AuthAPI,AuthProvider,IdempotencyStore,TokenClaims
