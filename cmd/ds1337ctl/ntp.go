package main

import (
	"encoding/binary"
	"net"
	"time"

	"github.com/pkg/errors"
)

const (
	ntpPacketSize = 48
	// seconds between the NTP era (1900) and the Unix epoch
	ntpEpochOffset = 2208988800
)

// queryNTP asks server for the time with a single SNTP client request.
func queryNTP(server string, timeout time.Duration) (time.Time, error) {
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "123")
	}
	conn, err := net.Dial("udp", server)
	if err != nil {
		return time.Time{}, err
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		return time.Time{}, err
	}

	b := make([]byte, ntpPacketSize)
	fillNTPRequest(b)
	if _, err := conn.Write(b); err != nil {
		return time.Time{}, errors.Wrap(err, "sending request")
	}
	n, err := conn.Read(b)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "reading reply")
	}
	if n != ntpPacketSize {
		return time.Time{}, errors.Errorf("expected NTP packet size of %d: %d", ntpPacketSize, n)
	}
	return parseNTPReply(b)
}

func fillNTPRequest(b []byte) {
	for i := range b {
		b[i] = 0
	}
	b[0] = 0b11100011 // LI, Version, Mode
	b[1] = 0          // Stratum, or type of clock
	b[2] = 6          // Polling Interval
	b[3] = 0xEC       // Peer Clock Precision
	// 8 bytes of zero for Root Delay & Root Dispersion
	b[12] = 49
	b[13] = 0x4E
	b[14] = 49
	b[15] = 52
}

// parseNTPReply returns the transmit timestamp, which starts at byte 40 and
// counts seconds since 1900. Replies from unsynchronized servers and
// kiss-of-death packets are rejected.
func parseNTPReply(b []byte) (time.Time, error) {
	if mode := b[0] & 0x07; mode != 4 {
		return time.Time{}, errors.Errorf("unexpected NTP mode %d", mode)
	}
	if b[0]>>6 == 3 {
		return time.Time{}, errors.New("NTP server clock is not synchronized")
	}
	switch stratum := b[1]; {
	case stratum == 0:
		return time.Time{}, errors.Errorf("NTP kiss of death %q", b[12:16])
	case stratum > 15:
		return time.Time{}, errors.Errorf("invalid NTP stratum %d", stratum)
	}
	secs := binary.BigEndian.Uint32(b[40:44])
	if secs < ntpEpochOffset {
		return time.Time{}, errors.New("NTP reply predates 1970")
	}
	return time.Unix(int64(secs-ntpEpochOffset), 0), nil
}
