package main

import (
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"github.com/ajanata/tinygo-rtc/internal/sim"
)

type busCloser interface {
	drivers.I2C
	io.Closer
}

type nopCloser struct{ drivers.I2C }

func (nopCloser) Close() error { return nil }

// openBus opens a host I2C bus by name; an empty name picks the first one
// found. The name "sim" selects an in-memory chip.
func openBus(name string) (busCloser, error) {
	if name == "sim" {
		glog.Info("using simulated DS1337")
		return nopCloser{sim.New()}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "initializing host drivers")
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, errors.Wrapf(err, "opening I2C bus %q", name)
	}
	glog.Infof("opened %s", bus)
	return bus, nil
}
