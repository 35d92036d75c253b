package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"stackctl/internal/config"
	"stackctl/internal/registry"
	"stackctl/pkg/logging"
)

var _ ServiceBackend = (*ComposeClient)(nil)

// For mocking in tests
var lookPath = exec.LookPath

// RuntimeEnvVar overrides runtime auto-detection ("podman" or "docker").
const RuntimeEnvVar = "STACKCTL_RUNTIME"

// ComposeClient is a ServiceBackend that shells out to a compose-capable
// container runtime. Podman is preferred when both runtimes are installed.
type ComposeClient struct {
	runtime    string // "podman" or "docker"
	composeCmd string // "compose" subcommand, or "podman-compose" fallback binary
	composeDir string // base directory for relative compose file paths

	// execCommand runs one runtime invocation and returns its stdout.
	// Replaceable in tests.
	execCommand func(ctx context.Context, name string, args ...string) (string, error)
}

// NewComposeClient detects the container runtime and returns a client bound
// to it. Detection order: the STACKCTL_RUNTIME environment variable, the
// configured runtime, then auto-detection preferring podman.
func NewComposeClient(settings config.GlobalSettings) (*ComposeClient, error) {
	c := &ComposeClient{
		composeDir:  settings.ComposeDir,
		execCommand: runCommand,
	}

	requested := os.Getenv(RuntimeEnvVar)
	if requested == "" {
		requested = settings.Runtime
	}

	switch requested {
	case "podman", "docker":
		if _, err := lookPath(requested); err != nil {
			return nil, fmt.Errorf("runtime %s requested but not found in PATH", requested)
		}
		c.runtime = requested
	case "":
		// Auto-detect: prefer podman
		if _, err := lookPath("podman"); err == nil {
			c.runtime = "podman"
		} else if _, err := lookPath("docker"); err == nil {
			c.runtime = "docker"
		} else {
			return nil, fmt.Errorf("no container runtime found: install podman or docker")
		}
	default:
		return nil, fmt.Errorf("invalid runtime %q: must be 'podman' or 'docker'", requested)
	}

	c.composeCmd = "compose"
	if c.runtime == "podman" && !c.composeSubcommandAvailable() {
		c.composeCmd = "podman-compose"
	}

	logging.Debug("Backend", "Using container runtime %s (compose via %s)", c.runtime, c.composeCmd)
	return c, nil
}

// RuntimeName returns the detected runtime binary name.
func (c *ComposeClient) RuntimeName() string {
	return c.runtime
}

func (c *ComposeClient) composeSubcommandAvailable() bool {
	cmd := exec.Command(c.runtime, "compose", "version")
	return cmd.Run() == nil
}

// runCommand executes one external command, capturing stdout and folding
// stderr into the error.
func runCommand(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// runRuntime invokes the runtime binary itself (podman/docker).
func (c *ComposeClient) runRuntime(ctx context.Context, args ...string) (string, error) {
	return c.execCommand(ctx, c.runtime, args...)
}

// runCompose invokes the compose layer against one compose file.
func (c *ComposeClient) runCompose(ctx context.Context, composeFile string, args ...string) (string, error) {
	path := c.resolveComposePath(composeFile)

	if c.composeCmd == "compose" {
		cmdArgs := append([]string{"compose", "-f", path}, args...)
		return c.execCommand(ctx, c.runtime, cmdArgs...)
	}
	cmdArgs := append([]string{"-f", path}, args...)
	return c.execCommand(ctx, c.composeCmd, cmdArgs...)
}

func (c *ComposeClient) resolveComposePath(composeFile string) string {
	if filepath.IsAbs(composeFile) || c.composeDir == "" {
		return composeFile
	}
	return filepath.Join(c.composeDir, composeFile)
}

// Available verifies the runtime daemon/CLI answers at all.
func (c *ComposeClient) Available(ctx context.Context) error {
	if _, err := c.runRuntime(ctx, "info", "--format", "{{.Host.Hostname}}"); err != nil {
		return &UnavailableError{Runtime: c.runtime, Err: err}
	}
	return nil
}

// EnsureNetwork creates the shared network if it does not exist. Idempotent.
func (c *ComposeClient) EnsureNetwork(ctx context.Context, name string) error {
	if _, err := c.runRuntime(ctx, "network", "inspect", name); err == nil {
		return nil
	}

	logging.Info("Backend", "Creating shared network %s", name)
	if _, err := c.runRuntime(ctx, "network", "create", name); err != nil {
		// Another process may have created it between inspect and create.
		if _, inspectErr := c.runRuntime(ctx, "network", "inspect", name); inspectErr == nil {
			return nil
		}
		return fmt.Errorf("create network %s: %w", name, err)
	}
	return nil
}

// Start brings the service up. A service whose container is already running
// is left alone unless the caller asked for recreation.
func (c *ComposeClient) Start(ctx context.Context, desc registry.ServiceDescriptor, opts StartOptions) (StartResult, error) {
	status, err := c.Status(ctx, desc)
	if err == nil && status == StatusRunning && !opts.ForceRecreate {
		logging.Debug("Backend", "Service %s/%s already running", desc.Category, desc.ID)
		return StartResultAlreadyRunning, nil
	}

	args := []string{"up", "-d"}
	if opts.ForceRecreate {
		args = append(args, "--force-recreate")
	}
	if opts.Rebuild {
		args = append(args, "--build")
	}

	if _, err := c.runCompose(ctx, desc.ComposeFile, args...); err != nil {
		return "", fmt.Errorf("start %s/%s: %w", desc.Category, desc.ID, err)
	}
	return StartResultStarted, nil
}

// Stop tears the service down via compose.
func (c *ComposeClient) Stop(ctx context.Context, desc registry.ServiceDescriptor) error {
	if _, err := c.runCompose(ctx, desc.ComposeFile, "down"); err != nil {
		return fmt.Errorf("stop %s/%s: %w", desc.Category, desc.ID, err)
	}
	return nil
}

// Status inspects the service's container. A missing container reports
// StatusStopped rather than an error so callers can treat "never started"
// and "stopped" alike.
func (c *ComposeClient) Status(ctx context.Context, desc registry.ServiceDescriptor) (Status, error) {
	output, err := c.runRuntime(ctx, "inspect", "--format", "{{.State.Status}}", desc.ContainerName)
	if err != nil {
		return StatusStopped, nil
	}

	switch strings.TrimSpace(output) {
	case "running":
		return StatusRunning, nil
	case "created", "paused", "exited", "stopped", "dead":
		return StatusStopped, nil
	default:
		return StatusUnknown, nil
	}
}

// Execute runs a command inside the service's container. The exit code is
// reported separately from the transport error so probes can distinguish
// "command said not ready" from "could not even exec".
func (c *ComposeClient) Execute(ctx context.Context, desc registry.ServiceDescriptor, command []string) (string, int, error) {
	args := append([]string{"exec", desc.ContainerName}, command...)
	output, err := c.runRuntime(ctx, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return output, -1, err
	}
	return output, 0, nil
}

// Logs returns the last tail lines of the container's logs.
func (c *ComposeClient) Logs(ctx context.Context, desc registry.ServiceDescriptor, tail string) (string, error) {
	return c.runRuntime(ctx, "logs", "--tail", tail, desc.ContainerName)
}
