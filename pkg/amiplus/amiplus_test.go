package amiplus

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

const fullTelegram = "4B4401067856341202027A2F2F0E031234568E10030012348E20030000428E30030100000B2B0015000E833C0045670BAB3C0002500AFDC9FC0102310AFDC9FC0202290AFDC9FC0302332F2F"

func TestDecodeHexSeparators(t *testing.T) {
	plain, err := DecodeHex(fullTelegram)
	require.NoError(t, err)
	spaced, err := DecodeHex("0x" + fullTelegram[:22] + " | " + fullTelegram[22:40] + "_" + fullTelegram[40:])
	require.NoError(t, err)
	require.Equal(t, plain, spaced)
}

func TestDecodeHexOddLength(t *testing.T) {
	_, err := DecodeHex("ABC")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoValues)
}

func TestDecodeHexInvalid(t *testing.T) {
	_, err := DecodeHex("ZZ")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoValues)
}

func TestDecodeHexAmiplus(t *testing.T) {
	result, err := DecodeHex(fullTelegram)
	require.NoError(t, err)
	require.Equal(t, "amiplus", result.Driver)
	require.Equal(t, len(fullTelegram)/2, result.ByteCount)
	require.Equal(t, fullTelegram, result.RawHex)
	require.Len(t, result.Fields, 10)

	fs := result.FieldSet()
	v, err := fs.Float("voltage_at_phase_2_v")
	require.NoError(t, err)
	require.Equal(t, 229.0, v)
	require.True(t, fs.Has("total_energy_consumption_kwh"))
	require.Len(t, fs.Names(), 10)
	_, err = fs.Float("missing")
	require.Error(t, err)
}

func TestDecodeHexNoValues(t *testing.T) {
	result, err := DecodeHex("1C4401067856341202027A2F2F046D27287E2A0C13663800002F2F2F2F")
	require.ErrorIs(t, err, ErrNoValues)
	require.Equal(t, "amiplus", result.Driver)
	require.Empty(t, result.Fields)
	require.False(t, result.FieldSet().Has("total_energy_consumption_kwh"))
}

func TestDecodeHexShortTelegram(t *testing.T) {
	_, err := DecodeHex("4401067856")
	require.ErrorIs(t, err, ErrNoValues)
}

func TestDecodeHexKey(t *testing.T) {
	_, err := DecodeHexWithOptions(fullTelegram, Options{KeyHex: strings.Repeat("0", 32)})
	require.NoError(t, err)

	_, err = DecodeHexWithOptions(fullTelegram, Options{KeyHex: "0011"})
	require.Error(t, err)
}

func TestDecodeHexCustomCatalog(t *testing.T) {
	cat := Catalog{{Name: "phase_two", Code: 0x0AFDC9FC, Width: 4, Selector: func() *uint8 { v := uint8(2); return &v }(), Digits: 4, Divisor: 10}}
	result, err := DecodeHexWithOptions(fullTelegram, Options{Catalog: cat})
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"phase_two": 22.9}, result.Fields)
}

func TestDefaultCatalog(t *testing.T) {
	require.Len(t, DefaultCatalog(), 10)
}

func TestResultString(t *testing.T) {
	result, err := DecodeHex(fullTelegram)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.String()), &decoded))
	require.Equal(t, "amiplus", decoded["driver"])
	fields, ok := decoded["fields"].(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 123.456, fields["total_energy_consumption_kwh"], 1e-9)
}

func TestResultCBOR(t *testing.T) {
	result, err := DecodeHex(fullTelegram)
	require.NoError(t, err)
	first, err := result.CBOR()
	require.NoError(t, err)
	second, err := result.CBOR()
	require.NoError(t, err)
	require.Equal(t, hex.EncodeToString(first), hex.EncodeToString(second))

	var decoded struct {
		Driver string             `cbor:"driver"`
		Fields map[string]float64 `cbor:"fields"`
	}
	require.NoError(t, cbor.Unmarshal(first, &decoded))
	require.Equal(t, "amiplus", decoded.Driver)
	require.Equal(t, result.Fields, decoded.Fields)
}
