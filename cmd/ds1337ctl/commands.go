package main

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ajanata/tinygo-rtc/ds1337"
)

var errUsage = errors.New("usage")

// env is what a command runs against. The function fields are swapped out in
// tests.
type env struct {
	ctx context.Context
	dev *ds1337.Device
	cfg *config
	in  io.Reader
	out io.Writer

	now            func() time.Time
	setSystemClock func(time.Time) error
	queryNTP       func(server string, timeout time.Duration) (time.Time, error)
	dialMQTT       func(cfg mqttConfig) (publisher, error)
}

type command struct {
	usage string
	help  string
	run   func(e *env, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"read":    {"read", "print the clock", cmdRead},
		"set":     {"set now|<unix>|<RFC3339>", "set the clock", cmdSet},
		"field":   {"field <name> [value]", "read or write one register field", cmdField},
		"dump":    {"dump", "print every register", cmdDump},
		"osc":     {"osc start|stop|status", "control the oscillator", cmdOsc},
		"hctosys": {"hctosys", "set the system clock from the RTC", cmdHCToSys},
		"systohc": {"systohc", "set the RTC from the system clock", cmdSysToHC},
		"ntp":     {"ntp [server]", "set the RTC from an NTP server", cmdNTP},
		"publish": {"publish [count]", "publish the RTC time over MQTT", cmdPublish},
		"shell":   {"shell", "read commands from standard input", cmdShell},
		"help":    {"help", "list commands", cmdHelp},
	}
}

func dispatch(e *env, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errors.Errorf("unknown command %q", args[0])
	}
	glog.V(1).Infof("running %q", args)
	err := cmd.run(e, args[1:])
	if errors.Cause(err) == errUsage {
		return errors.Errorf("usage: %s", cmd.usage)
	}
	return err
}

func cmdHelp(e *env, args []string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(e.out, "  %-28s %s\n", commands[name].usage, commands[name].help)
	}
	return nil
}

func cmdRead(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	f, err := e.dev.Fields()
	if err != nil {
		return errors.Wrap(err, "reading clock")
	}
	fmt.Fprintln(e.out, f)
	ts, err := e.dev.Calendar().UTCFromFields(f)
	if err != nil {
		return errors.Wrap(err, "converting clock")
	}
	fmt.Fprintf(e.out, "uts %d\n", ts)
	fmt.Fprintf(e.out, "utc %s\n", time.Unix(int64(ts), 0).UTC().Format(time.RFC3339))

	lost, err := e.dev.LostPower()
	if err != nil {
		return errors.Wrap(err, "reading status")
	}
	if lost {
		fmt.Fprintln(e.out, "oscillator stopped since last set; time is not valid")
	}
	return nil
}

func parseTime(e *env, s string) (time.Time, error) {
	if s == "now" {
		return e.now(), nil
	}
	if u, err := strconv.ParseUint(s, 10, 32); err == nil {
		return time.Unix(int64(u), 0), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Errorf("cannot parse %q as a unix timestamp or RFC3339 time", s)
	}
	return t, nil
}

// setClock sets the RTC and clears the oscillator stop flag, so the next read
// reports a valid time.
func setClock(e *env, t time.Time) error {
	if err := e.dev.Set(t); err != nil {
		return errors.Wrapf(err, "setting clock to %s", t.UTC().Format(time.RFC3339))
	}
	if err := e.dev.ClearLostPower(); err != nil {
		return errors.Wrap(err, "clearing oscillator stop flag")
	}
	glog.Infof("clock set to %s", t.UTC().Format(time.RFC3339))
	return nil
}

func cmdSet(e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	t, err := parseTime(e, args[0])
	if err != nil {
		return err
	}
	return setClock(e, t)
}

func cmdField(e *env, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errUsage
	}
	f, ok := ds1337.ParseField(args[0])
	if !ok {
		return errors.Errorf("unknown field %q", args[0])
	}
	if len(args) == 1 {
		v, err := e.dev.Field(f, true)
		if err != nil {
			return errors.Wrapf(err, "reading %s", f)
		}
		fmt.Fprintln(e.out, v)
		return nil
	}
	v, err := strconv.Atoi(args[1])
	if err != nil {
		return errors.Errorf("%s: %q is not a number", f, args[1])
	}
	return errors.Wrapf(e.dev.SetField(f, v), "writing %s", f)
}

func cmdDump(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return e.dev.DumpRegisters(e.out)
}

func cmdOsc(e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	switch args[0] {
	case "start":
		return e.dev.StartOscillator()
	case "stop":
		return e.dev.StopOscillator()
	case "status":
		running, err := e.dev.OscillatorRunning()
		if err != nil {
			return err
		}
		if running {
			fmt.Fprintln(e.out, "running")
		} else {
			fmt.Fprintln(e.out, "stopped")
		}
		return nil
	}
	return errUsage
}

func cmdHCToSys(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	t, err := e.dev.Now()
	if err != nil {
		return errors.Wrap(err, "reading clock")
	}
	if err := e.setSystemClock(t); err != nil {
		return errors.Wrap(err, "setting system clock")
	}
	glog.Infof("system clock set to %s", t.Format(time.RFC3339))
	return nil
}

func cmdSysToHC(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return setClock(e, e.now())
}

func cmdNTP(e *env, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	server := e.cfg.NTP.Server
	if len(args) == 1 {
		server = args[0]
	}
	t, err := e.queryNTP(server, e.cfg.NTP.timeout)
	if err != nil {
		return errors.Wrapf(err, "querying %s", server)
	}
	if err := setClock(e, t); err != nil {
		return err
	}
	fmt.Fprintln(e.out, t.UTC().Format(time.RFC3339))
	return nil
}

func cmdPublish(e *env, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	count := 0
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return errUsage
		}
		count = n
	}
	pub, err := e.dialMQTT(e.cfg.MQTT)
	if err != nil {
		return errors.Wrapf(err, "connecting to %s", e.cfg.MQTT.Broker)
	}
	defer pub.Close()
	return publishLoop(e.ctx, e.dev, pub, e.cfg.MQTT.Topic, e.cfg.MQTT.interval, count)
}

func cmdShell(e *env, args []string) error {
	if len(args) != 0 {
		return errUsage
	}
	return runShell(e, e.in)
}

func commandNames() string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
