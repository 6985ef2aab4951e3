package main

import (
	"encoding/binary"
	"net"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
)

// serveNTP answers one request on a loopback socket with transmit time secs.
func serveNTP(c *qt.C, mode byte, secs uint32) string {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	c.Assert(err, qt.IsNil)
	c.Cleanup(func() { pc.Close() })
	go func() {
		b := make([]byte, ntpPacketSize)
		n, addr, err := pc.ReadFrom(b)
		if err != nil || n != ntpPacketSize || b[0] != 0b11100011 {
			return
		}
		b[0] = 0b00100000 | mode
		b[1] = 2
		binary.BigEndian.PutUint32(b[40:], secs)
		pc.WriteTo(b, addr)
	}()
	return pc.LocalAddr().String()
}

func TestQueryNTP(t *testing.T) {
	c := qt.New(t)
	addr := serveNTP(c, 4, 1709214330+ntpEpochOffset)
	got, err := queryNTP(addr, time.Second)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Unix(), qt.Equals, int64(1709214330))
}

func TestQueryNTPBadMode(t *testing.T) {
	c := qt.New(t)
	addr := serveNTP(c, 3, 1709214330+ntpEpochOffset)
	_, err := queryNTP(addr, time.Second)
	c.Assert(err, qt.ErrorMatches, `unexpected NTP mode 3`)
}

func TestQueryNTPTimeout(t *testing.T) {
	c := qt.New(t)
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	c.Assert(err, qt.IsNil)
	defer pc.Close()
	_, err = queryNTP(pc.LocalAddr().String(), 50*time.Millisecond)
	c.Assert(err, qt.ErrorMatches, `reading reply: .*`)
}

func TestParseNTPReplyBeforeEpoch(t *testing.T) {
	c := qt.New(t)
	b := make([]byte, ntpPacketSize)
	b[0] = 0x24
	b[1] = 1
	binary.BigEndian.PutUint32(b[40:], 12345)
	_, err := parseNTPReply(b)
	c.Assert(err, qt.ErrorMatches, `NTP reply predates 1970`)
}

func TestParseNTPReplyRejectsUnusableServers(t *testing.T) {
	c := qt.New(t)
	tests := []struct {
		lead    byte
		stratum byte
		refID   string
		err     string
	}{
		{0xE4, 2, "GPS\x00", `NTP server clock is not synchronized`},
		{0x24, 0, "RATE", `NTP kiss of death "RATE"`},
		{0x24, 16, "\x00\x00\x00\x00", `invalid NTP stratum 16`},
	}
	for _, test := range tests {
		b := make([]byte, ntpPacketSize)
		b[0] = test.lead
		b[1] = test.stratum
		copy(b[12:], test.refID)
		binary.BigEndian.PutUint32(b[40:], 1709214330+ntpEpochOffset)
		_, err := parseNTPReply(b)
		c.Assert(err, qt.ErrorMatches, test.err)
	}

	b := make([]byte, ntpPacketSize)
	b[0] = 0x24
	b[1] = 1
	binary.BigEndian.PutUint32(b[40:], 1709214330+ntpEpochOffset)
	got, err := parseNTPReply(b)
	c.Assert(err, qt.IsNil)
	c.Assert(got.Unix(), qt.Equals, int64(1709214330))
}
