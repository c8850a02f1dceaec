package polls_test

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/polls/pkg/pollsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

/*
 * Container setup and shared helpers for the polls service end-to-end tests.
 */

const (
	testImageName = "polls-test:latest"

	adminUsername = "admin"
	adminPassword = "Admin123!"
	userPassword  = "secret1"
)

// TestMain builds the Docker image once before all tests and removes it afterwards.
func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		fmt.Fprintln(os.Stdout, "skipping e2e tests in short mode")
		os.Exit(0)
	}

	fmt.Fprintf(os.Stdout, "Building polls Docker image...")
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up polls Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/polls/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupPollsContainer starts the service with a seeded admin and returns an
// SDK client pointed at it. extraEnv overrides the defaults.
func setupPollsContainer(t *testing.T, extraEnv map[string]string) *pollsdk.SDKClient {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"POLLS_DATABASE_FILE":  "/data/polls.db",
		"POLLS_PEPPER_FILE":    "/data/pepper",
		"POLLS_ISSUER":         "polls-e2e",
		"POLLS_JWT_ALGORITHM":  "EdDSA",
		"POLLS_ADMIN_USERNAME": adminUsername,
		"POLLS_ADMIN_PASSWORD": adminPassword,
		"ENV":                  "test",
		"LOG_LEVEL":            "info",
		"LOG_FORMAT":           "json",
	}
	maps.Copy(env, extraEnv)

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"8080/tcp"},
		Env:          env,
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("8080/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "8080")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return pollsdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// loginAdmin logs in as the seeded admin.
func loginAdmin(t *testing.T, client *pollsdk.SDKClient) *pollsdk.Session {
	t.Helper()
	session, err := client.Login(t.Context(), adminUsername, adminPassword)
	require.NoError(t, err, "seeded admin should be able to log in")
	require.True(t, session.User().IsAdmin())
	return session
}

// registerAndLogin creates a regular user and returns its session.
func registerAndLogin(t *testing.T, client *pollsdk.SDKClient, username string) *pollsdk.Session {
	t.Helper()

	resp, err := client.Register(t.Context(), pollsdk.RegisterRequest{
		Username:  username,
		Password:  userPassword,
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	require.Equal(t, username, resp.User.Username)

	session, err := client.Login(t.Context(), username, userPassword)
	require.NoError(t, err)
	return session
}

// assertHealthy verifies a health check response is OK.
func assertHealthy(t *testing.T, health *pollsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}
