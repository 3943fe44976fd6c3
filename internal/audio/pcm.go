package audio

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// Fixed payload format: 16-bit signed little-endian PCM, mono, 24kHz.
// This is not negotiated per call.
const (
	SampleRate    = 24000
	Channels      = 1
	BitsPerSample = 16
)

// decodePayload decodes a base64 payload into raw PCM bytes. A trailing
// odd byte cannot form a sample and is dropped.
func decodePayload(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid audio payload: %w", err)
	}
	return raw[:len(raw)-len(raw)%2], nil
}

// DecodePCM16 decodes a base64 payload into normalized samples in the
// [-1.0, 1.0] range, walking the bytes two at a time per channel.
func DecodePCM16(payload string) ([]float32, error) {
	raw, err := decodePayload(payload)
	if err != nil {
		return nil, err
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}

// WrapWAV frames raw PCM bytes with a RIFF header so platform players can
// consume them.
func WrapWAV(raw []byte) []byte {
	const headerSize = 44
	byteRate := SampleRate * Channels * BitsPerSample / 8
	blockAlign := Channels * BitsPerSample / 8

	buf := make([]byte, headerSize+len(raw))
	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+len(raw)))
	copy(buf[8:12], "WAVE")
	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], Channels)
	binary.LittleEndian.PutUint32(buf[24:28], SampleRate)
	binary.LittleEndian.PutUint32(buf[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], BitsPerSample)
	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(len(raw)))
	copy(buf[headerSize:], raw)
	return buf
}
