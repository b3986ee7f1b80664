package ports_test

import (
	"testing"

	"github.com/ghugn/chem-class-git/internal/adapters/memstore"
	redisadapter "github.com/ghugn/chem-class-git/internal/adapters/redis"
	"github.com/ghugn/chem-class-git/internal/adapters/schoolapi"
	"github.com/ghugn/chem-class-git/internal/mocks"
	"github.com/ghugn/chem-class-git/internal/ports"
)

// This test only verifies that adapters and mocks conform to the ports at compile time.
func TestImplementationsSatisfyPorts(t *testing.T) {
	t.Helper()

	var _ ports.SessionStore = (*memstore.Store)(nil)
	var _ ports.SessionStore = (*redisadapter.SessionStore)(nil)
	var _ ports.SessionStore = (*mocks.MockSessionStore)(nil)

	var _ ports.AccountAPI = (*schoolapi.Client)(nil)
	var _ ports.AccountAPI = (*mocks.MockAccountAPI)(nil)
	var _ ports.SchoolAPIFactory = (*schoolapi.Client)(nil)
	var _ ports.HealthChecker = (*schoolapi.Client)(nil)
	var _ ports.SchoolAPI = (*schoolapi.Scoped)(nil)
}
