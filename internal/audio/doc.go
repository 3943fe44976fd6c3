// Package audio handles speech synthesis caching, PCM decoding and exclusive
// playback of the fixed-format payloads produced by the generation backend.
package audio
