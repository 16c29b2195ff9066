package docker

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls  [][]string
	stdins []string
	errOn  map[string]error // keyed by substring of the joined args
}

func (f *fakeRunner) record(stdin string, name string, args []string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	f.stdins = append(f.stdins, stdin)
	joined := strings.Join(args, " ")
	for key, err := range f.errOn {
		if strings.Contains(joined, key) {
			return err
		}
	}
	return nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	return f.record("", name, args)
}

func (f *fakeRunner) RunOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	return nil, f.record("", name, args)
}

func (f *fakeRunner) RunInput(_ context.Context, stdin io.Reader, name string, args ...string) error {
	data, _ := io.ReadAll(stdin)
	return f.record(string(data), name, args)
}

func (f *fakeRunner) lastCall() []string {
	if len(f.calls) == 0 {
		return nil
	}
	return f.calls[len(f.calls)-1]
}

func TestLoginPassesPasswordViaStdin(t *testing.T) {
	runner := &fakeRunner{}

	err := Login(context.Background(), runner, "824917158299.dkr.ecr.us-east-1.amazonaws.com", "AWS", "super-secret")
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)

	call := runner.lastCall()
	assert.Contains(t, call, "login")
	assert.Contains(t, call, "--password-stdin")
	assert.Contains(t, call, "824917158299.dkr.ecr.us-east-1.amazonaws.com")
	assert.NotContains(t, call, "super-secret")
	assert.Equal(t, "super-secret", runner.stdins[0])
}

func TestLoginFailure(t *testing.T) {
	runner := &fakeRunner{errOn: map[string]error{"login": errors.New("denied")}}

	err := Login(context.Background(), runner, "example.com", "AWS", "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to authenticate to example.com")
}

func TestEnsureBuilderExisting(t *testing.T) {
	runner := &fakeRunner{}

	err := EnsureBuilder(context.Background(), runner, BuilderName)
	require.NoError(t, err)
	require.Len(t, runner.calls, 2)
	assert.Contains(t, runner.calls[0], "inspect")
	assert.Contains(t, runner.calls[1], "use")
	for _, call := range runner.calls {
		assert.NotContains(t, call, "create")
	}
}

func TestEnsureBuilderCreatesOnFirstUse(t *testing.T) {
	runner := &fakeRunner{errOn: map[string]error{"inspect": errors.New("no such builder")}}

	err := EnsureBuilder(context.Background(), runner, BuilderName)
	require.NoError(t, err)
	require.Len(t, runner.calls, 2)

	call := runner.lastCall()
	assert.Contains(t, call, "create")
	assert.Contains(t, call, "--name")
	assert.Contains(t, call, BuilderName)
	assert.Contains(t, call, "--use")
}

func TestEnsureBuilderCreateFailure(t *testing.T) {
	runner := &fakeRunner{errOn: map[string]error{
		"inspect": errors.New("no such builder"),
		"create":  errors.New("daemon unreachable"),
	}}

	err := EnsureBuilder(context.Background(), runner, BuilderName)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create buildx builder")
}

func TestBuildAndPushArgs(t *testing.T) {
	runner := &fakeRunner{}

	err := BuildAndPush(context.Background(), runner, BuildOptions{
		ImageRef:   "824917158299.dkr.ecr.us-east-1.amazonaws.com/civic/platform:latest",
		ContextDir: "./app",
	})
	require.NoError(t, err)
	require.Len(t, runner.calls, 1)

	call := runner.lastCall()
	assert.Equal(t, "docker", call[0])
	assert.Contains(t, call, "buildx")
	assert.Contains(t, call, "build")
	assert.Contains(t, call, "--platform")
	assert.Contains(t, call, Platforms)
	assert.Contains(t, call, "--no-cache")
	assert.Contains(t, call, "--push")
	assert.Contains(t, call, "824917158299.dkr.ecr.us-east-1.amazonaws.com/civic/platform:latest")
	assert.Equal(t, "./app", call[len(call)-1])
}

func TestBuildAndPushDefaults(t *testing.T) {
	runner := &fakeRunner{}

	err := BuildAndPush(context.Background(), runner, BuildOptions{ImageRef: "example.com/civic/platform:latest"})
	require.NoError(t, err)

	call := runner.lastCall()
	assert.Contains(t, call, BuilderName)
	assert.Equal(t, ".", call[len(call)-1])
}

func TestBuildAndPushRequiresImageRef(t *testing.T) {
	runner := &fakeRunner{}

	err := BuildAndPush(context.Background(), runner, BuildOptions{})
	require.Error(t, err)
	assert.Empty(t, runner.calls, "no command should run without an image reference")
}

func TestBuildAndPushFailure(t *testing.T) {
	runner := &fakeRunner{errOn: map[string]error{"buildx build": errors.New("exit status 1")}}

	err := BuildAndPush(context.Background(), runner, BuildOptions{ImageRef: "example.com/civic/platform:latest"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to build and push")
	assert.Len(t, runner.calls, 1, "build must not be retried")
}
