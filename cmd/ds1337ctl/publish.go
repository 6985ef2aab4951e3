package main

import (
	"context"
	"encoding/json"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/ajanata/tinygo-rtc/ds1337"
)

type publisher interface {
	Publish(topic string, payload []byte) error
	Close()
}

// reading is the payload published for each sample.
type reading struct {
	UTS   uint32 `json:"uts"`
	Local string `json:"local"`
	Lost  bool   `json:"lost_power"`
}

// publishLoop publishes the clock every interval until ctx is done or, if
// count is positive, count readings have been sent.
func publishLoop(ctx context.Context, dev *ds1337.Device, pub publisher, topic string, interval time.Duration, count int) error {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for sent := 0; count == 0 || sent < count; sent++ {
		if sent > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-tick.C:
			}
		}
		f, err := dev.Fields()
		if err != nil {
			return errors.Wrap(err, "reading clock")
		}
		ts, err := dev.Calendar().UTCFromFields(f)
		if err != nil {
			return errors.Wrap(err, "converting clock")
		}
		lost, err := dev.LostPower()
		if err != nil {
			return errors.Wrap(err, "reading status")
		}
		payload, err := json.Marshal(reading{UTS: ts, Local: f.String(), Lost: lost})
		if err != nil {
			return err
		}
		if err := pub.Publish(topic, payload); err != nil {
			return errors.Wrapf(err, "publishing to %s", topic)
		}
		glog.V(1).Infof("published %s to %s", payload, topic)
	}
	return nil
}

type pahoPublisher struct {
	client mqtt.Client
}

func dialMQTT(cfg mqttConfig) (publisher, error) {
	if cfg.Broker == "" {
		return nil, errors.New("mqtt.broker is not configured")
	}
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	glog.Infof("connected to %s", cfg.Broker)
	return &pahoPublisher{client: client}, nil
}

func (p *pahoPublisher) Publish(topic string, payload []byte) error {
	token := p.client.Publish(topic, 1, false, payload)
	token.Wait()
	return token.Error()
}

func (p *pahoPublisher) Close() {
	p.client.Disconnect(250)
}
