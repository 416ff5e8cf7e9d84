package test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"hk/pkg/api"
	"hk/pkg/command"
	"hk/pkg/system"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingT collects failures instead of failing the real test, so the
// harness's own failure paths can be asserted on.
type recordingT struct {
	*testing.T
	failures []string
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recordingT) failed(substring string) bool {
	for _, f := range r.failures {
		if strings.Contains(f, substring) {
			return true
		}
	}
	return false
}

type toy struct{ *command.Invocation }

func (h toy) Method(name string) (command.Method, bool) {
	switch name {
	case "index":
		return func() error {
			h.Puts("hello")
			h.Puts("world")
			return nil
		}, true
	case "app":
		return func() error {
			app, err := h.App()
			if err != nil {
				return err
			}
			h.Puts(app)
			return nil
		}, true
	case "fail":
		return func() error { return h.Error("it broke") }, true
	case "twice":
		return func() error {
			_ = h.Error("it broke")
			return h.Error("something else")
		}, true
	case "host":
		return func() error {
			h.Puts(h.Heroku().Host())
			return nil
		}, true
	case "boom":
		return func() error { return errors.New("boom") }, true
	case "ask":
		return func() error {
			h.Display("Continue? ", false)
			h.Puts("[" + h.Ask() + "]")
			return nil
		}, true
	case "api":
		return func() error {
			apps, err := h.Heroku().ListApps()
			if err != nil {
				return err
			}
			for _, app := range apps {
				h.Puts(app.Name)
			}
			return nil
		}, true
	}
	return nil, false
}

type toyCounters struct {
	built int
}

func toyRegistry(t *testing.T) (*command.Registry, *toyCounters) {
	counters := &toyCounters{}
	reg := command.NewRegistry()
	err := reg.RegisterGroup("toy", func(inv *command.Invocation) command.Handler {
		counters.built++
		return toy{inv}
	},
		command.Definition{Name: "toy"},
		command.Definition{Name: "toy:app"},
		command.Definition{Name: "toy:fail"},
		command.Definition{Name: "toy:twice"},
		command.Definition{Name: "toy:host"},
		command.Definition{Name: "toy:boom"},
		command.Definition{Name: "toy:ask"},
		command.Definition{Name: "toy:api"},
		command.Definition{Name: "toy:ghost"},
	)
	require.NoError(t, err)
	return reg, counters
}

func TestExecute_CapturesOutput(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	out := s.Execute("toy")

	assert.Equal(t, "hello\nworld", out)
	assert.Equal(t, out, s.Output())
}

func TestExecute_IsRepeatable(t *testing.T) {
	reg, counters := toyRegistry(t)
	s := NewSandbox(t, reg)

	first := s.Execute("toy")
	second := s.Execute("toy")

	assert.Equal(t, first, second)
	assert.Equal(t, 2, counters.built, "each execution builds a fresh handler")
}

func TestExecute_FixedApp(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	assert.Equal(t, App, s.Execute("toy:app"))
	assert.Equal(t, "other", s.Execute("toy:app --app other"))
	assert.Equal(t, "short", s.Execute("toy:app -a short"))
}

func TestExecute_HerokuHost(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	assert.Equal(t, "heroku.com", s.Execute("toy:host"))

	s.StubCore()
	assert.Equal(t, "heroku.com", s.Execute("toy:host"))
}

func TestExecute_AskAndDisplayAreSilent(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	assert.Equal(t, "[]", s.Execute("toy:ask"))
}

func TestExecute_UnexpectedErrorFailsTest(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	s.Execute("toy:fail")

	require.Len(t, rec.failures, 1)
	assert.Equal(t, `unexpected call to Error("it broke")`, rec.failures[0])
}

func TestExecute_ReturnedErrorFailsTest(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	s.Execute("toy:boom")

	assert.True(t, rec.failed(`"toy:boom" returned unexpected error: boom`), rec.failures)
}

func TestExecuteExpectingError(t *testing.T) {
	reg, _ := toyRegistry(t)

	t.Run("any message", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy:fail")
		assert.Empty(t, rec.failures)
	})

	t.Run("exact message", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy:fail", "it broke")
		assert.Empty(t, rec.failures)
	})

	t.Run("different message", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy:fail", "something else")
		require.Len(t, rec.failures, 1)
		assert.Equal(t, `expected "toy:fail" to call Error("something else"), got Error("it broke")`, rec.failures[0])
	})

	t.Run("one of several messages", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy:twice", "it broke")
		require.Len(t, rec.failures, 1)
		assert.Equal(t, `expected "toy:twice" to call Error("it broke"), got Error("it broke"), Error("something else")`, rec.failures[0])
	})

	t.Run("same message twice", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy:twice")
		assert.Empty(t, rec.failures)
	})

	t.Run("never called", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy")
		require.Len(t, rec.failures, 1)
		assert.Equal(t, `expected "toy" to call Error, but it was never called`, rec.failures[0])
	})

	t.Run("returned a plain error instead", func(t *testing.T) {
		rec := &recordingT{T: t}
		NewSandbox(rec, reg).ExecuteExpectingError("toy:boom")
		require.Len(t, rec.failures, 1)
		assert.Equal(t, `expected "toy:boom" to call Error, but it returned boom`, rec.failures[0])
	})
}

func TestExecute_CommandNotFound(t *testing.T) {
	reg, counters := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	out := s.Execute("nope")

	assert.Empty(t, out)
	assert.True(t, rec.failed("nope is not a hk command"), rec.failures)
	assert.Zero(t, counters.built, "no handler is built for an unknown name")
}

func TestExecute_MethodNotDefined(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	s.Execute("toy:ghost")

	assert.True(t, rec.failed("toy:ghost is not a hk command"), rec.failures)
}

func TestExecute_EmptyLine(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}

	NewSandbox(rec, reg).Execute("   ")

	assert.True(t, rec.failed("empty command line"), rec.failures)
}

func TestExecute_NoStateLeaksBetweenInvocations(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	s.ExecuteExpectingError("toy:fail", "it broke")
	out := s.Execute("toy")
	require.Empty(t, rec.failures)
	assert.Equal(t, "hello\nworld", out)

	s.Execute("toy:fail")
	assert.Len(t, rec.failures, 1, "an earlier expectation must not excuse a later error")
}

func TestStubAPIRequest(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	stub := s.StubAPIRequest(http.MethodGet, "/apps").ToReturnJSON(http.StatusOK, SampleApps())

	out := s.Execute("toy:api")

	assert.Equal(t, "myapp\nanotherapp", out)
	assert.Equal(t, 1, stub.Times())
	s.AssertRequested(http.MethodGet, "/apps")
}

func TestStubAPIRequest_LaterStubWins(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	first := s.StubAPIRequest(http.MethodGet, "/apps").ToReturn(http.StatusOK, `[{"name":"old"}]`)
	second := s.StubAPIRequest(http.MethodGet, "/apps").ToReturn(http.StatusOK, `[{"name":"new"}]`)

	assert.Equal(t, "new", s.Execute("toy:api"))
	assert.Zero(t, first.Times())
	assert.Equal(t, 1, second.Times())
}

func TestStubAPIRequest_UnregisteredRequestFails(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	s.Execute("toy:api")

	assert.True(t, rec.failed("Real HTTP connections are disabled. Unregistered request: GET https://api.heroku.com/apps"), rec.failures)
	assert.True(t, rec.failed("returned unexpected error"), rec.failures)
}

func TestAssertRequested_Missing(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	assert.False(t, s.AssertRequested(http.MethodDelete, "/apps/myapp"))
	assert.True(t, rec.failed("expected request DELETE https://api.heroku.com/apps/myapp"), rec.failures)
}

func TestReset_DropsNetworkStubs(t *testing.T) {
	reg, _ := toyRegistry(t)
	rec := &recordingT{T: t}
	s := NewSandbox(rec, reg)

	s.StubAPIRequest(http.MethodGet, "/apps").ToReturn(http.StatusOK, `[]`)
	s.Reset()
	s.Execute("toy:api")

	assert.True(t, rec.failed("Unregistered request"), rec.failures)
}

func TestStubCore(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	core := s.StubCore()
	core.On("ListApps").Return([]api.App{{Name: "mocked"}}, nil).Once()

	assert.Equal(t, "mocked", s.Execute("toy:api"))
	assert.Equal(t, "user", s.Credentials().User())
	assert.Equal(t, "apikey01", s.Credentials().Password())
	core.AssertExpectations(t)
}

func TestRun_DispatchesThroughBase(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	out, err := s.Run("toy:ask")
	require.NoError(t, err)
	assert.Equal(t, "Continue? []\n", out)

	SetupGitRemotes(s.Runner(), "", system.GitRemote{Name: "heroku", URL: "git@heroku.com:fromgit.git"})
	out, err = s.Run("toy:app")
	require.NoError(t, err)
	assert.Equal(t, "fromgit\n", out)
	AssertCommandExecuted(t, s.Runner(), system.GitRemotesCommand)
}

func TestRun_Errors(t *testing.T) {
	reg, _ := toyRegistry(t)
	s := NewSandbox(t, reg)

	out, err := s.Run("toy:fail")
	assert.Empty(t, out)
	AssertCommandFailed(t, err, "it broke")

	_, err = s.Run("nope")
	assert.ErrorIs(t, err, command.ErrCommandNotFound)

	_, err = s.Run("toy:app")
	AssertCommandFailed(t, err, "No app specified. Run this command from an app folder or specify which app to use with --app APP.")
}
