// cmd/deltactl/shell.go
package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/tamzrod/modbus-delta/internal/address"
	"github.com/tamzrod/modbus-delta/internal/status"
)

var errUsage = errors.New("usage")

// controller is the part of the driver the shell drives.
type controller interface {
	ReadBoolean(a address.Address) (bool, bool)
	ReadSignedValue(a address.Address) (int, bool)
	WriteBoolean(a address.Address, value bool) error
	WriteSignedValue(a address.Address, value int) error
	Status() status.Snapshot
}

type shell struct {
	ctl controller
	out io.Writer
	now func() time.Time
}

func newShell(ctl controller, out io.Writer) *shell {
	return &shell{ctl: ctl, out: out, now: time.Now}
}

const helpText = `commands:
  read-bool  <addr>             read a coil (M, T)
  read-int   <addr>             read a register as a signed value (D, T)
  write-bool <addr> <true|false>
  write-int  <addr> <n>         n in -32768..65535
  translate  <addr>             show the physical Modbus address
  status                        show connection state
  help
  quit
`

// run reads commands until quit, EOF or an interrupt on an empty line.
func (s *shell) run(in lineReader) {
	for {
		line, err := in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return
			}
			continue
		}
		if err != nil {
			return
		}
		if s.exec(line) {
			return
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (s *shell) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]
	var err error

	switch cmd {
	case "quit", "exit":
		return true
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "status":
		s.status()
	case "translate":
		err = s.translate(args)
	case "read-bool":
		err = s.readBool(args)
	case "read-int":
		err = s.readInt(args)
	case "write-bool":
		err = s.writeBool(args)
	case "write-int":
		err = s.writeInt(args)
	default:
		err = fmt.Errorf("unknown command %q (try help)", cmd)
	}

	if errors.Is(err, errUsage) {
		fmt.Fprintf(s.out, "%v: %s\n", err, cmd)
		return false
	}
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return false
}

func (s *shell) status() {
	snap := s.ctl.Status()
	fmt.Fprintf(s.out, "state: %s\n", status.HealthName(snap.Health))
	if !snap.Since.IsZero() {
		fmt.Fprintf(s.out, "since: %s (%s)\n",
			snap.Since.Format(time.RFC3339),
			snap.Uptime(s.now()).Truncate(time.Second))
	}
	if snap.ConsecutiveFailures > 0 {
		fmt.Fprintf(s.out, "failures: %d\n", snap.ConsecutiveFailures)
	}
	if snap.LastError != "" {
		fmt.Fprintf(s.out, "last error: %s\n", snap.LastError)
	}
}

func (s *shell) translate(args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	a, err := address.Parse(args[0])
	if err != nil {
		return err
	}
	phys := a.Physical()
	fmt.Fprintf(s.out, "%s -> %d (0x%04X)\n", a, phys, phys)
	return nil
}

func (s *shell) readBool(args []string) error {
	a, err := oneAddress(args, 1)
	if err != nil {
		return err
	}
	v, ok := s.ctl.ReadBoolean(a)
	if !ok {
		return fmt.Errorf("%s: no value", a)
	}
	fmt.Fprintf(s.out, "%s = %t\n", a, v)
	return nil
}

func (s *shell) readInt(args []string) error {
	a, err := oneAddress(args, 1)
	if err != nil {
		return err
	}
	v, ok := s.ctl.ReadSignedValue(a)
	if !ok {
		return fmt.Errorf("%s: no value", a)
	}
	fmt.Fprintf(s.out, "%s = %d\n", a, v)
	return nil
}

func (s *shell) writeBool(args []string) error {
	a, err := oneAddress(args, 2)
	if err != nil {
		return err
	}
	v, err := strconv.ParseBool(args[1])
	if err != nil {
		return fmt.Errorf("bad boolean %q", args[1])
	}
	if err := s.ctl.WriteBoolean(a, v); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func (s *shell) writeInt(args []string) error {
	a, err := oneAddress(args, 2)
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad integer %q", args[1])
	}
	if err := s.ctl.WriteSignedValue(a, v); err != nil {
		return err
	}
	fmt.Fprintln(s.out, "ok")
	return nil
}

func oneAddress(args []string, want int) (address.Address, error) {
	if len(args) != want {
		return address.Address{}, errUsage
	}
	return address.Parse(args[0])
}
