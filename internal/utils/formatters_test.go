package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1 000", FormatNumber(1000))
	assert.Equal(t, "1 000 000", FormatNumber(1000000))
	assert.Equal(t, "-5 000", FormatNumber(-5000))
}

func TestFormatSignedNumber(t *testing.T) {
	assert.Equal(t, "+4 500", FormatSignedNumber(4500))
	assert.Equal(t, "+0", FormatSignedNumber(0))
	assert.Equal(t, "-50 000", FormatSignedNumber(-50000))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 1, 15, 14, 3, 0, 0, time.UTC)
	assert.Equal(t, "2025.01.15 14:03", FormatDate(ts))
}

func TestGenerateReferralLink(t *testing.T) {
	link, err := GenerateReferralLink("spk_bot", 42)
	assert.NoError(t, err)
	assert.Equal(t, "https://t.me/spk_bot?start=ref_42", link)

	_, err = GenerateReferralLink("", 42)
	assert.Error(t, err)
}

func TestGenerateReferralQR(t *testing.T) {
	png, err := GenerateReferralQR("https://t.me/spk_bot?start=ref_42")
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG-сигнатура
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])

	_, err = GenerateReferralQR("")
	assert.Error(t, err)
}
