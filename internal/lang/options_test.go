package lang

import "testing"

func TestByCode(t *testing.T) {
	opt, err := ByCode("zh-CN")
	if err != nil {
		t.Fatalf("ByCode() unexpected error: %v", err)
	}
	if opt.Label != "Chinese" {
		t.Errorf("Expected label 'Chinese', got '%s'", opt.Label)
	}
	if opt.DefaultVoice == "" {
		t.Error("Expected a default voice")
	}

	if _, err := ByCode("xx-XX"); err == nil {
		t.Error("ByCode() expected error for unknown code")
	}
}

func TestByLabel(t *testing.T) {
	opt, err := ByLabel("English")
	if err != nil {
		t.Fatalf("ByLabel() unexpected error: %v", err)
	}
	if opt.Code != "en-US" {
		t.Errorf("Expected code 'en-US', got '%s'", opt.Code)
	}

	if _, err := ByLabel("Klingon"); err == nil {
		t.Error("ByLabel() expected error for unknown label")
	}
}

func TestVoices(t *testing.T) {
	en, _ := ByCode("en-US")
	if len(en.Voices()) != 2 {
		t.Errorf("Expected 2 voices for English, got %d", len(en.Voices()))
	}
	if en.Voices()[0] != en.DefaultVoice {
		t.Error("Expected default voice first")
	}

	de, _ := ByCode("de-DE")
	if len(de.Voices()) != 1 {
		t.Errorf("Expected 1 voice for German, got %d", len(de.Voices()))
	}
}

func TestEveryOptionHasVoice(t *testing.T) {
	for _, o := range Options() {
		if o.DefaultVoice == "" {
			t.Errorf("Language %s has no default voice", o.Code)
		}
		if o.Label == "" || o.Code == "" {
			t.Errorf("Incomplete language option: %+v", o)
		}
	}
}
