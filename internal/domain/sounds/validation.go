package sounds

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dwightbot/dwight-web/internal/domain"
)

var id3Tag = []byte("ID3")

func validateName(name string, maxLen int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: sound name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > maxLen {
		return "", fmt.Errorf("%w: sound name must be at most %d characters", domain.ErrInvalidInput, maxLen)
	}
	return name, nil
}

func validateAudio(data []byte, maxBytes int) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: sound file is empty", domain.ErrInvalidInput)
	}
	if len(data) > maxBytes {
		return fmt.Errorf("%w: sound file is larger than %d bytes", domain.ErrInvalidInput, maxBytes)
	}
	if !looksLikeMP3(data) {
		return fmt.Errorf("%w: sound file is not an mp3", domain.ErrInvalidInput)
	}
	return nil
}

// looksLikeMP3 accepts an ID3v2 tag or a bare MPEG audio frame sync.
func looksLikeMP3(data []byte) bool {
	if bytes.HasPrefix(data, id3Tag) {
		return true
	}
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}
