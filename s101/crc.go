package s101

// The frame checksum is the CRC-16/CCITT used by HDLC-style framing:
// bit-reversed polynomial 0x8408, initial value 0xFFFF, transmitted as the
// one's complement of the register, low byte first. Folding a valid frame
// including its two checksum bytes into the register always yields the fixed
// residue 0xF0B8.
const (
	crcInitial uint16 = 0xFFFF
	crcResidue uint16 = 0xF0B8
	crcPoly    uint16 = 0x8408
)

var crcTable [256]uint16

func init() {
	for i := range crcTable {
		crc := uint16(i)
		for range 8 {
			if crc&1 != 0 {
				crc = crc>>1 ^ crcPoly
			} else {
				crc >>= 1
			}
		}
		crcTable[i] = crc
	}
}

// crcAdd folds b into the running checksum.
func crcAdd(crc uint16, b byte) uint16 {
	return crc>>8 ^ crcTable[byte(crc)^b]
}
