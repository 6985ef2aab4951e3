// ds1337ctl reads and sets a DS1337 real-time clock attached to a Linux I2C bus.
//
//	ds1337ctl [flags] <command> [args]
//
// Run "ds1337ctl help" for the list of commands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ajanata/tinygo-rtc/ds1337"
)

var (
	configPath = flag.String("config", "", "YAML configuration file")
	busName    = flag.String("bus", "", `I2C bus name, "sim" for a simulated chip (default: first bus)`)
	address    = flag.Uint("addr", ds1337.Address, "7-bit device address")
	gmtOffset  = flag.Int("gmt", 0, "hours local time is ahead of UTC")
	dstRule    = flag.String("dst", "none", "daylight saving rule: none, us, eu or legacy")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <command> [args]\n\ncommands: %s\n\nflags:\n",
		os.Args[0], commandNames())
	flag.PrintDefaults()
}

// applyFlags copies explicitly set flags over the file configuration.
func applyFlags(cfg *config) error {
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bus":
			cfg.Bus = *busName
		case "addr":
			err = cfg.setAddress(*address)
		case "gmt":
			cfg.GMTOffset = *gmtOffset
		case "dst":
			cfg.DST = *dstRule
		}
	})
	if err != nil {
		return err
	}
	return cfg.validate()
}

func run() error {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := applyFlags(cfg); err != nil {
		return err
	}

	bus, err := openBus(cfg.Bus)
	if err != nil {
		return err
	}
	defer bus.Close()

	dev, err := ds1337.Open(bus, cfg.driver())
	if err != nil {
		return errors.Wrapf(err, "probing address %#x", cfg.Address)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e := &env{
		ctx:            ctx,
		dev:            dev,
		cfg:            cfg,
		in:             os.Stdin,
		out:            os.Stdout,
		now:            time.Now,
		setSystemClock: setSystemClock,
		queryNTP:       queryNTP,
		dialMQTT:       dialMQTT,
	}
	return dispatch(e, flag.Args())
}

func main() {
	flag.Usage = usage
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}
	if err := run(); err != nil {
		glog.Errorf("%v", err)
		glog.Flush()
		os.Exit(1)
	}
}
