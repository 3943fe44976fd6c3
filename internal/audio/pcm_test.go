package audio

import (
	"encoding/base64"
	"encoding/binary"
	"math"
	"testing"
)

func encodeSamples(samples []int16) string {
	raw := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(raw[2*i:], uint16(s))
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func TestDecodePCM16(t *testing.T) {
	payload := encodeSamples([]int16{0, 16384, -16384, 32767, -32768})

	samples, err := DecodePCM16(payload)
	if err != nil {
		t.Fatalf("DecodePCM16() unexpected error: %v", err)
	}
	if len(samples) != 5 {
		t.Fatalf("Expected 5 samples, got %d", len(samples))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1.0}
	for i, w := range want {
		if math.Abs(float64(samples[i]-w)) > 1e-6 {
			t.Errorf("Sample %d = %f, want %f", i, samples[i], w)
		}
	}
}

func TestDecodePCM16OddLength(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte{0x00, 0x40, 0x7f})

	samples, err := DecodePCM16(payload)
	if err != nil {
		t.Fatalf("DecodePCM16() unexpected error: %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("Expected trailing odd byte to be dropped, got %d samples", len(samples))
	}
}

func TestDecodePCM16InvalidBase64(t *testing.T) {
	if _, err := DecodePCM16("not-base64!!!"); err == nil {
		t.Error("DecodePCM16() expected error for invalid base64")
	}
}

func TestDecodePayload(t *testing.T) {
	raw, err := decodePayload(base64.StdEncoding.EncodeToString([]byte{0x00, 0x40, 0x7f}))
	if err != nil {
		t.Fatalf("decodePayload() unexpected error: %v", err)
	}
	if len(raw) != 2 {
		t.Errorf("Expected trailing odd byte to be dropped, got %d bytes", len(raw))
	}

	if _, err := decodePayload("not-base64!!!"); err == nil {
		t.Error("decodePayload() expected error for invalid base64")
	}
}

func TestWrapWAV(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04}
	wav := WrapWAV(raw)

	if len(wav) != 44+len(raw) {
		t.Fatalf("Expected %d bytes, got %d", 44+len(raw), len(wav))
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Error("Missing RIFF/WAVE markers")
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != SampleRate {
		t.Errorf("Sample rate = %d, want %d", rate, SampleRate)
	}
	if ch := binary.LittleEndian.Uint16(wav[22:24]); ch != Channels {
		t.Errorf("Channels = %d, want %d", ch, Channels)
	}
	if size := binary.LittleEndian.Uint32(wav[40:44]); size != uint32(len(raw)) {
		t.Errorf("Data size = %d, want %d", size, len(raw))
	}
	if string(wav[44:]) != string(raw) {
		t.Error("PCM data not appended after header")
	}
}
