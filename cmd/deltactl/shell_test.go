// cmd/deltactl/shell_test.go
package main

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/modbus-delta/internal/address"
	"github.com/tamzrod/modbus-delta/internal/status"
)

type mockController struct {
	mock.Mock
}

func (m *mockController) ReadBoolean(a address.Address) (bool, bool) {
	args := m.Called(a)
	return args.Bool(0), args.Bool(1)
}

func (m *mockController) ReadSignedValue(a address.Address) (int, bool) {
	args := m.Called(a)
	return args.Int(0), args.Bool(1)
}

func (m *mockController) WriteBoolean(a address.Address, value bool) error {
	return m.Called(a, value).Error(0)
}

func (m *mockController) WriteSignedValue(a address.Address, value int) error {
	return m.Called(a, value).Error(0)
}

func (m *mockController) Status() status.Snapshot {
	return m.Called().Get(0).(status.Snapshot)
}

func newTestShell(ctl controller) (*shell, *bytes.Buffer) {
	var out bytes.Buffer
	sh := newShell(ctl, &out)
	return sh, &out
}

func TestShell_ReadBool(t *testing.T) {
	ctl := &mockController{}
	ctl.On("ReadBoolean", address.MustParse("M123")).Return(true, true).Once()

	sh, out := newTestShell(ctl)
	assert.False(t, sh.exec("read-bool m123"))
	assert.Equal(t, "M123 = true\n", out.String())
	ctl.AssertExpectations(t)
}

func TestShell_ReadIntMissingValue(t *testing.T) {
	ctl := &mockController{}
	ctl.On("ReadSignedValue", address.MustParse("D194")).Return(0, false).Once()

	sh, out := newTestShell(ctl)
	sh.exec("read-int D194")
	assert.Equal(t, "error: D194: no value\n", out.String())
}

func TestShell_Writes(t *testing.T) {
	ctl := &mockController{}
	ctl.On("WriteBoolean", address.MustParse("M7"), true).Return(nil).Once()
	ctl.On("WriteSignedValue", address.MustParse("D10"), -3).Return(nil).Once()
	ctl.On("WriteSignedValue", address.MustParse("D10"), 70000).
		Return(errors.New("driver: value does not fit a 16-bit register")).Once()

	sh, out := newTestShell(ctl)
	sh.exec("write-bool M7 true")
	sh.exec("write-int D10 -3")
	sh.exec("write-int D10 70000")

	assert.Equal(t, "ok\nok\nerror: driver: value does not fit a 16-bit register\n", out.String())
	ctl.AssertExpectations(t)
}

func TestShell_BadArguments(t *testing.T) {
	ctl := &mockController{}
	sh, out := newTestShell(ctl)

	sh.exec("read-bool")
	assert.Equal(t, "usage: read-bool\n", out.String())

	out.Reset()
	sh.exec("write-bool M1 maybe")
	assert.Equal(t, "error: bad boolean \"maybe\"\n", out.String())

	out.Reset()
	sh.exec("write-int D1 ten")
	assert.Equal(t, "error: bad integer \"ten\"\n", out.String())

	out.Reset()
	sh.exec("read-int X1")
	assert.Contains(t, out.String(), "invalid register class")

	out.Reset()
	sh.exec("frobnicate")
	assert.Contains(t, out.String(), "unknown command")

	ctl.AssertNotCalled(t, "WriteBoolean", mock.Anything, mock.Anything)
	ctl.AssertNotCalled(t, "WriteSignedValue", mock.Anything, mock.Anything)
}

func TestShell_Translate(t *testing.T) {
	sh, out := newTestShell(&mockController{})

	sh.exec("translate t0")
	assert.Equal(t, "T0 -> 57344 (0xE000)\n", out.String())

	out.Reset()
	sh.exec("translate T9000")
	assert.Contains(t, out.String(), "exceeds 16-bit register space")
}

func TestShell_Status(t *testing.T) {
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ctl := &mockController{}
	ctl.On("Status").Return(status.Snapshot{
		Health:              status.HealthError,
		Since:               since,
		ConsecutiveFailures: 3,
		LastError:           "connection refused",
	})

	sh, out := newTestShell(ctl)
	sh.now = func() time.Time { return since.Add(90 * time.Second) }
	sh.exec("status")

	assert.Equal(t,
		"state: disconnected\n"+
			"since: 2026-01-02T03:04:05Z (1m30s)\n"+
			"failures: 3\n"+
			"last error: connection refused\n",
		out.String())
}

func TestShell_HelpAndQuit(t *testing.T) {
	sh, out := newTestShell(&mockController{})

	assert.False(t, sh.exec(""))
	assert.False(t, sh.exec("help"))
	assert.Contains(t, out.String(), "write-int")
	assert.True(t, sh.exec("quit"))
	assert.True(t, sh.exec("EXIT"))
}

type scriptedReader struct {
	lines []string
	errs  []error
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line, err := r.lines[0], r.errs[0]
	r.lines, r.errs = r.lines[1:], r.errs[1:]
	return line, err
}

func TestShell_RunStopsOnQuit(t *testing.T) {
	ctl := &mockController{}
	ctl.On("ReadBoolean", address.MustParse("M0")).Return(false, true).Once()

	sh, out := newTestShell(ctl)
	sh.run(&scriptedReader{
		lines: []string{"read-bool M0", "quit", "read-bool M0"},
		errs:  []error{nil, nil, nil},
	})

	assert.Equal(t, "M0 = false\n", out.String())
	ctl.AssertExpectations(t)
}

func TestShell_RunInterrupt(t *testing.T) {
	ctl := &mockController{}
	ctl.On("ReadSignedValue", address.MustParse("D1")).Return(5, true).Once()

	sh, out := newTestShell(ctl)
	sh.run(&scriptedReader{
		lines: []string{"half typed", "read-int D1", "", "read-int D1"},
		errs:  []error{readline.ErrInterrupt, nil, readline.ErrInterrupt, nil},
	})

	require.Equal(t, "D1 = 5\n", out.String())
	ctl.AssertExpectations(t)
}
