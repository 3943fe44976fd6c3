package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"SourceLang", flags.SourceLang, "en-US"},
		{"TargetLang", flags.TargetLang, "zh-CN"},
		{"DeckName", flags.DeckName, "Wordwise Vocabulary"},
		{"TextModel", flags.TextModel, "gemini-2.5-flash"},
		{"ImageModel", flags.ImageModel, "gemini-2.5-flash-image"},
		{"TTSModel", flags.TTSModel, "gemini-2.5-flash-preview-tts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	boolTests := []struct {
		name  string
		value bool
	}{
		{"ExportAnki", flags.ExportAnki},
		{"Archive", flags.Archive},
		{"ListVoices", flags.ListVoices},
		{"NoAutoPlay", flags.NoAutoPlay},
	}

	for _, tt := range boolTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != false {
				t.Errorf("%s = %v, want false", tt.name, tt.value)
			}
		})
	}

	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"Voice", flags.Voice},
		{"StorePath", flags.StorePath},
		{"BatchFile", flags.BatchFile},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}
}
