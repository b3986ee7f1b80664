// Package mocks provides gomock implementations of the ports used by the web layer.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Load(gomock.Any(), "sid").Return(map[string]string{}, nil)
package mocks

// Generate mock for SessionStore interface from internal/ports package.
// Load, Save, Remove, Destroy
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/ghugn/chem-class-git/internal/ports SessionStore

// Generate mock for AccountAPI interface from internal/ports package.
// Login, Register, RegistrationClasses, UpdateProfile
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=account_api_mock.go github.com/ghugn/chem-class-git/internal/ports AccountAPI

// Generate mock for HealthChecker interface from internal/ports package.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=health_checker_mock.go github.com/ghugn/chem-class-git/internal/ports HealthChecker
