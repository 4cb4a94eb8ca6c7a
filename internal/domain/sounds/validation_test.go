package sounds

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwightbot/dwight-web/internal/domain"
)

func Test_validateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "Trimmed", input: "  bears beets  ", want: "bears beets"},
		{name: "Multibyte at limit", input: strings.Repeat("é", 32), want: strings.Repeat("é", 32)},
		{name: "Too long", input: strings.Repeat("a", 33), wantErr: true},
		{name: "Blank", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := validateName(tt.input, 32)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_validateAudio(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr bool
	}{
		{name: "ID3 tag", data: []byte("ID3\x04\x00\x00\x00\x00\x00\x00")},
		{name: "Frame sync", data: []byte{0xFF, 0xFB, 0x90, 0x64}},
		{name: "Empty", data: nil, wantErr: true},
		{name: "Wave header", data: []byte("RIFF\x00\x00\x00\x00WAVE"), wantErr: true},
		{name: "Too large", data: append([]byte("ID3"), make([]byte, 1024)...), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAudio(tt.data, 512)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
