package wol

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicPacket(t *testing.T) {
	packet, err := MagicPacket("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	require.Len(t, packet, 102)

	assert.Equal(t, bytes.Repeat([]byte{0xFF}, 6), packet[:6])

	mac := []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE, 0xFF}
	for i := 0; i < 16; i++ {
		start := 6 + i*6
		assert.Equal(t, mac, packet[start:start+6])
	}
}

func TestMagicPacket_AcceptsDashSeparators(t *testing.T) {
	packet, err := MagicPacket("aa-bb-cc-dd-ee-ff")
	require.NoError(t, err)
	assert.Len(t, packet, 102)
}

func TestMagicPacket_RejectsInvalidMAC(t *testing.T) {
	for _, mac := range []string{"", "not-a-mac", "AA:BB:CC:DD:EE", "AA:BB:CC:DD:EE:FF:00:11"} {
		_, err := MagicPacket(mac)
		assert.Error(t, err, "MAC %q should be rejected", mac)
	}
}

func TestSend_DeliversPacketOverUDP(t *testing.T) {
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer conn.Close()

	address := conn.LocalAddr().String()
	used, err := Send("AA:BB:CC:DD:EE:FF", address)
	require.NoError(t, err)
	assert.Equal(t, address, used)

	buf := make([]byte, 200)
	n, _, err := conn.ReadFromUDP(buf)
	require.NoError(t, err)
	assert.Equal(t, 102, n)

	expected, err := MagicPacket("AA:BB:CC:DD:EE:FF")
	require.NoError(t, err)
	assert.Equal(t, expected, buf[:n])
}

func TestSend_RejectsInvalidMAC(t *testing.T) {
	_, err := Send("bogus", "")
	assert.Error(t, err)
}
