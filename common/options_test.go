package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func decode(s string) (uint64, uint64) {
	quiet := false
	return DecodeRange(&s, &quiet)
}

func TestDecodeRange(t *testing.T) {
	start, limit := decode("10M")
	assert.Equal(t, uint64(1), start)
	assert.Equal(t, uint64(10_000_000), limit)

	start, limit = decode("14..1_000_014")
	assert.Equal(t, uint64(14), start)
	assert.Equal(t, uint64(1_000_014), limit)

	start, limit = decode("2..10K")
	assert.Equal(t, uint64(2), start)
	assert.Equal(t, uint64(10_000), limit)

	s := "1G"
	quiet := false
	assert.Equal(t, uint64(1_000_000_000), DecodeLimit(&s, &quiet))
}

func TestFormatLimit(t *testing.T) {
	assert.Equal(t, "512", FormatLimit(512))
	assert.Equal(t, "10.0M", FormatLimit(10_000_000))
	assert.Equal(t, "2.5G", FormatLimit(2_500_000_000))
}
