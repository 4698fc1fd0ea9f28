//go:build integration

package e2e

import (
	"crypto/rsa"
	"database/sql"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/WailSalutem-Health-Care/hospital-console/internal/auth"
	httpserver "github.com/WailSalutem-Health-Care/hospital-console/internal/http"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/patient"
	"github.com/WailSalutem-Health-Care/hospital-console/internal/testutil"
)

// TestServer is a patient service backed by the integration database with
// bearer auth switched on.
type TestServer struct {
	Server        *httptest.Server
	DB            *sql.DB
	MockPublisher *testutil.MockPublisher
	PrivateKey    *rsa.PrivateKey
}

// SetupE2ETest starts the full router against a clean patients table.
func SetupE2ETest(t *testing.T) *TestServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	perms, err := auth.LoadPermissions("../../permissions.yml")
	if err != nil {
		t.Fatalf("Failed to load permissions: %v", err)
	}
	verifier, privateKey := testutil.CreateTestVerifier(t)

	pub := testutil.NewMockPublisher()
	repo := patient.NewRepository(db, zerolog.Nop())
	svc := patient.NewService(repo, pub, nil, "none", zerolog.Nop())

	router := httpserver.SetupRouter(httpserver.RouterDeps{
		Patients: patient.NewHandler(svc, zerolog.Nop()),
		Verifier: verifier,
		Perms:    perms,
		Ping:     db.PingContext,
		Logger:   zerolog.Nop(),
	})

	ts := &TestServer{
		Server:        httptest.NewServer(router),
		DB:            db,
		MockPublisher: pub,
		PrivateKey:    privateKey,
	}
	t.Cleanup(ts.Server.Close)
	return ts
}

// NewClient returns a client that authenticates with the given token.
func (ts *TestServer) NewClient(token string) *testutil.HTTPTestClient {
	c := testutil.NewHTTPTestClient(ts.Server.URL, "")
	c.Token = token
	return c
}

func (ts *TestServer) AdminClient(t *testing.T) *testutil.HTTPTestClient {
	t.Helper()
	return ts.NewClient(testutil.GenerateAdminToken(t, ts.PrivateKey))
}

func (ts *TestServer) DoctorClient(t *testing.T) *testutil.HTTPTestClient {
	t.Helper()
	return ts.NewClient(testutil.GenerateDoctorToken(t, ts.PrivateKey))
}
