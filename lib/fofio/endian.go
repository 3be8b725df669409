package fofio

import (
	"encoding/binary"
	"unsafe"
)

// HostOrder returns the byte order of the machine the code is running on.
func HostOrder() binary.ByteOrder {
	// 0x0100 stores its low byte first on little-endian machines.
	var i uint16 = 0x0100
	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 { return binary.BigEndian }
	return binary.LittleEndian
}

// FileOrder returns the byte order of a catalog file given whether it needs
// to be swapped.
func FileOrder(swap bool) binary.ByteOrder {
	host := HostOrder()
	if !swap { return host }
	if host == binary.LittleEndian { return binary.BigEndian }
	return binary.LittleEndian
}
