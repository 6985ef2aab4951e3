package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"sigs.k8s.io/yaml"

	"github.com/ajanata/tinygo-rtc/ds1337"
)

type mqttConfig struct {
	Broker   string `json:"broker"`
	Topic    string `json:"topic"`
	ClientID string `json:"client_id"`
	Interval string `json:"interval"`

	interval time.Duration
}

type ntpConfig struct {
	Server  string `json:"server"`
	Timeout string `json:"timeout"`

	timeout time.Duration
}

// config is the on-disk configuration. Zero values select defaults.
type config struct {
	Bus       string     `json:"bus"`
	Address   uint16     `json:"address"`
	GMTOffset int        `json:"gmt_offset"`
	DST       string     `json:"dst"`
	Anchor    int        `json:"anchor"`
	MQTT      mqttConfig `json:"mqtt"`
	NTP       ntpConfig  `json:"ntp"`

	dst ds1337.DSTRule
}

func defaultConfig() *config {
	return &config{
		Address: ds1337.Address,
		DST:     ds1337.DSTNone.String(),
		Anchor:  ds1337.DefaultAnchor,
		MQTT: mqttConfig{
			Topic:    "rtc/ds1337",
			ClientID: "ds1337ctl",
			Interval: "10s",
		},
		NTP: ntpConfig{
			Server:  "pool.ntp.org",
			Timeout: "1s",
		},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, cfg.validate()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return cfg, cfg.validate()
}

func (c *config) validate() error {
	rule, ok := ds1337.ParseDSTRule(c.DST)
	if !ok {
		return errors.Errorf("unknown dst rule %q", c.DST)
	}
	c.dst = rule
	if c.GMTOffset < -12 || c.GMTOffset > 14 {
		return errors.Errorf("gmt_offset %d out of range", c.GMTOffset)
	}
	if c.Anchor < 1 || c.Anchor > 7 {
		return errors.Errorf("anchor %d out of range 1-7", c.Anchor)
	}
	if c.Address == 0 || c.Address > 0x7F {
		return errors.Errorf("address %#x is not a 7-bit address", c.Address)
	}
	var err error
	if c.MQTT.interval, err = time.ParseDuration(c.MQTT.Interval); err != nil {
		return errors.Wrap(err, "mqtt.interval")
	}
	if c.MQTT.interval <= 0 {
		return errors.New("mqtt.interval must be positive")
	}
	if c.NTP.timeout, err = time.ParseDuration(c.NTP.Timeout); err != nil {
		return errors.Wrap(err, "ntp.timeout")
	}
	return nil
}

// setAddress stores an address given on the command line. The range is checked
// before narrowing so that out-of-range values are not silently truncated.
func (c *config) setAddress(a uint) error {
	if a == 0 || a > 0x7F {
		return errors.Errorf("address %#x is not a 7-bit address", a)
	}
	c.Address = uint16(a)
	return nil
}

func (c *config) driver() ds1337.Config {
	return ds1337.Config{
		Address:   c.Address,
		GMTOffset: c.GMTOffset,
		DST:       c.dst,
		Anchor:    c.Anchor,
	}
}
