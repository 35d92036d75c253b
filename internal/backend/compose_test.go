package backend

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackctl/internal/config"
	"stackctl/internal/registry"
)

func configSettings(runtime string) config.GlobalSettings {
	return config.GlobalSettings{Runtime: runtime, ComposeDir: "apps"}
}

// recordedCall captures one external invocation made by the client.
type recordedCall struct {
	name string
	args []string
}

func (r recordedCall) String() string {
	return r.name + " " + strings.Join(r.args, " ")
}

// newTestClient returns a ComposeClient whose exec seam records calls and
// answers from the provided responder.
func newTestClient(responder func(call recordedCall) (string, error)) (*ComposeClient, *[]recordedCall) {
	calls := &[]recordedCall{}
	c := &ComposeClient{
		runtime:    "podman",
		composeCmd: "compose",
		composeDir: "apps",
	}
	c.execCommand = func(ctx context.Context, name string, args ...string) (string, error) {
		call := recordedCall{name: name, args: args}
		*calls = append(*calls, call)
		if responder != nil {
			return responder(call)
		}
		return "", nil
	}
	return c, calls
}

func testDescriptor() registry.ServiceDescriptor {
	return registry.ServiceDescriptor{
		ID:            "postgres",
		Category:      "database",
		ComposeFile:   "database/postgres.yml",
		ContainerName: "postgres",
	}
}

func TestStart_NotRunningBringsServiceUp(t *testing.T) {
	c, calls := newTestClient(func(call recordedCall) (string, error) {
		if call.args[0] == "inspect" {
			return "", fmt.Errorf("no such container")
		}
		return "", nil
	})

	result, err := c.Start(context.Background(), testDescriptor(), StartOptions{})
	require.NoError(t, err)
	assert.Equal(t, StartResultStarted, result)

	require.Len(t, *calls, 2)
	assert.Equal(t, "podman compose -f apps/database/postgres.yml up -d", (*calls)[1].String())
}

func TestStart_AlreadyRunningIsIdempotent(t *testing.T) {
	c, calls := newTestClient(func(call recordedCall) (string, error) {
		if call.args[0] == "inspect" {
			return "running\n", nil
		}
		t.Fatalf("unexpected call: %s", call)
		return "", nil
	})

	// Two consecutive starts: both report AlreadyRunning, neither invokes compose.
	for i := 0; i < 2; i++ {
		result, err := c.Start(context.Background(), testDescriptor(), StartOptions{})
		require.NoError(t, err)
		assert.Equal(t, StartResultAlreadyRunning, result)
	}
	assert.Len(t, *calls, 2) // only the two inspects
}

func TestStart_ForceRecreateBypassesRunningCheck(t *testing.T) {
	c, calls := newTestClient(func(call recordedCall) (string, error) {
		if call.args[0] == "inspect" {
			return "running\n", nil
		}
		return "", nil
	})

	result, err := c.Start(context.Background(), testDescriptor(), StartOptions{ForceRecreate: true, Rebuild: true})
	require.NoError(t, err)
	assert.Equal(t, StartResultStarted, result)

	last := (*calls)[len(*calls)-1]
	assert.Equal(t, "podman compose -f apps/database/postgres.yml up -d --force-recreate --build", last.String())
}

func TestStart_ComposeFailureIsReported(t *testing.T) {
	c, _ := newTestClient(func(call recordedCall) (string, error) {
		if call.args[0] == "inspect" {
			return "", fmt.Errorf("no such container")
		}
		return "", fmt.Errorf("image pull failed")
	})

	_, err := c.Start(context.Background(), testDescriptor(), StartOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database/postgres")
}

func TestStop(t *testing.T) {
	c, calls := newTestClient(nil)

	err := c.Stop(context.Background(), testDescriptor())
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "podman compose -f apps/database/postgres.yml down", (*calls)[0].String())
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		execErr  error
		expected Status
	}{
		{"running container", "running\n", nil, StatusRunning},
		{"exited container", "exited\n", nil, StatusStopped},
		{"created container", "created\n", nil, StatusStopped},
		{"missing container", "", fmt.Errorf("no such container"), StatusStopped},
		{"unrecognized state", "restarting\n", nil, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(func(call recordedCall) (string, error) {
				return tt.output, tt.execErr
			})

			status, err := c.Status(context.Background(), testDescriptor())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestExecute_BuildsExecInvocation(t *testing.T) {
	c, calls := newTestClient(func(call recordedCall) (string, error) {
		return "accepting connections\n", nil
	})

	output, exitCode, err := c.Execute(context.Background(), testDescriptor(), []string{"pg_isready", "-U", "postgres"})
	require.NoError(t, err)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, output, "accepting connections")

	require.Len(t, *calls, 1)
	assert.Equal(t, "podman exec postgres pg_isready -U postgres", (*calls)[0].String())
}

func TestAvailable_WrapsFailureAsUnavailable(t *testing.T) {
	c, _ := newTestClient(func(call recordedCall) (string, error) {
		return "", fmt.Errorf("cannot connect to socket")
	})

	err := c.Available(context.Background())
	require.Error(t, err)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "podman", unavailable.Runtime)
}

func TestEnsureNetwork_ExistingNetworkIsNoop(t *testing.T) {
	c, calls := newTestClient(func(call recordedCall) (string, error) {
		return "[{}]", nil // inspect succeeds
	})

	err := c.EnsureNetwork(context.Background(), "microservices-net")
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, "podman network inspect microservices-net", (*calls)[0].String())
}

func TestEnsureNetwork_CreatesMissingNetwork(t *testing.T) {
	inspected := false
	c, calls := newTestClient(func(call recordedCall) (string, error) {
		if call.args[0] == "network" && call.args[1] == "inspect" && !inspected {
			inspected = true
			return "", fmt.Errorf("no such network")
		}
		return "", nil
	})

	err := c.EnsureNetwork(context.Background(), "microservices-net")
	require.NoError(t, err)
	require.Len(t, *calls, 2)
	assert.Equal(t, "podman network create microservices-net", (*calls)[1].String())
}

func TestNewComposeClient_RejectsInvalidRuntime(t *testing.T) {
	t.Setenv(RuntimeEnvVar, "lxc")

	_, err := NewComposeClient(configSettings("lxc"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid runtime")
}

func TestNewComposeClient_MissingRuntimeBinaryFails(t *testing.T) {
	t.Setenv(RuntimeEnvVar, "")

	originalLookPath := lookPath
	defer func() { lookPath = originalLookPath }()
	lookPath = func(file string) (string, error) {
		return "", fmt.Errorf("not found")
	}

	_, err := NewComposeClient(configSettings("docker"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in PATH")
}

func TestResolveComposePath(t *testing.T) {
	c := &ComposeClient{composeDir: "apps"}
	assert.Equal(t, "apps/database/postgres.yml", c.resolveComposePath("database/postgres.yml"))
	assert.Equal(t, "/abs/override.yml", c.resolveComposePath("/abs/override.yml"))

	c.composeDir = ""
	assert.Equal(t, "database/postgres.yml", c.resolveComposePath("database/postgres.yml"))
}
