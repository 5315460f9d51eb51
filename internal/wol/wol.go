// Package wol builds and sends Wake-on-LAN magic packets.
package wol

import (
	"fmt"
	"net"
)

// DefaultBroadcast is where magic packets go when the caller does not name a
// target network.
const DefaultBroadcast = "255.255.255.255:9"

// MagicPacket returns the 102-byte wake frame for the given hardware address:
// six 0xFF bytes followed by sixteen repetitions of the MAC.
func MagicPacket(mac string) ([]byte, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return nil, fmt.Errorf("invalid MAC address %q: %w", mac, err)
	}
	if len(hw) != 6 {
		return nil, fmt.Errorf("invalid MAC address %q: expected 6 octets, got %d", mac, len(hw))
	}

	packet := make([]byte, 0, 102)
	for i := 0; i < 6; i++ {
		packet = append(packet, 0xFF)
	}
	for i := 0; i < 16; i++ {
		packet = append(packet, hw...)
	}
	return packet, nil
}

// Send writes a magic packet for mac to the given UDP address. An empty
// address falls back to DefaultBroadcast. It returns the address actually
// used.
func Send(mac, address string) (string, error) {
	packet, err := MagicPacket(mac)
	if err != nil {
		return "", err
	}

	if address == "" {
		address = DefaultBroadcast
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, "9")
	}

	addr, err := net.ResolveUDPAddr("udp", address)
	if err != nil {
		return "", fmt.Errorf("invalid broadcast address %q: %w", address, err)
	}

	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return "", fmt.Errorf("failed to open UDP socket: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write(packet); err != nil {
		return "", fmt.Errorf("failed to send magic packet: %w", err)
	}
	return addr.String(), nil
}
