package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteTypeProcessor_Classification(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, ByteTypeUTF8},
		{"plain utf8", []byte("hello, world"), ByteTypeUTF8},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...), ByteTypeUTF8BOM},
		{"utf16 le bom", append([]byte{0xFF, 0xFE}, []byte("h\x00i\x00")...), ByteTypeUTF16LE},
		{"utf16 be bom", append([]byte{0xFE, 0xFF}, []byte("\x00h\x00i")...), ByteTypeUTF16BE},
		{"null byte", []byte("abc\x00def"), ByteTypeBinary},
		{"invalid utf8", []byte{0x80, 0xfd, 0xfe, 0xff}, ByteTypeBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewByteTypeProcessor()
			p.Consume(tt.data)
			v, err := p.Finish()
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestByteTypeProcessor_CapsAtSniffWindow(t *testing.T) {
	filler := make([]byte, sniffWindow)
	for i := range filler {
		filler[i] = 'x'
	}

	p := NewByteTypeProcessor()
	p.Consume(filler)
	p.Consume([]byte{0x00}) // would flip to binary if not capped
	v, err := p.Finish()
	require.NoError(t, err)
	assert.Equal(t, ByteTypeUTF8, v)
}

func TestIsBinary(t *testing.T) {
	assert.True(t, IsBinary(ByteTypeBinary))
	assert.False(t, IsBinary(ByteTypeUTF8))
	assert.False(t, IsBinary(ByteTypeUTF8BOM))
}
