package ds1337

// DecodeBCD converts a packed BCD byte to its decimal value. Any byte is
// accepted: a high nibble above 9 still counts as tens, the way the chip's
// counters read back.
func DecodeBCD(bcd uint8) int {
	return int(bcd&0x0F) + 10*int(bcd>>4)
}

// EncodeBCD packs a value in [0,99] as BCD.
func EncodeBCD(dec int) (uint8, error) {
	if dec < 0 || dec > 99 {
		return 0, ErrInvalidFieldValue
	}
	return uint8(dec/10)<<4 | uint8(dec%10), nil
}

// EncodeBCDCompat packs dec the way the Arduino DS1337 library does: tens
// above 15 are truncated by the shift instead of being rejected. Only useful
// for reproducing register images written by that library.
func EncodeBCDCompat(dec uint16) uint8 {
	return uint8((dec/10)<<4) | uint8(dec%10)
}
