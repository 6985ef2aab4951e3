//go:build !linux

package main

import (
	"time"

	"github.com/pkg/errors"
)

func setSystemClock(time.Time) error {
	return errors.New("setting the system clock is only supported on linux")
}
