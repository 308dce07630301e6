package i18n

import "testing"

func TestTranslatorLocales(t *testing.T) {
	tests := []struct {
		name   string
		locale string
		key    string
		want   string
	}{
		{"english default", "", MsgCannotCreate, "Repo cannot be created: boom"},
		{"english explicit", "en-US", MsgCannotCreate, "Repo cannot be created: boom"},
		{"german", "de", MsgCannotCreate, "Repo kann nicht erstellt werden: boom"},
		{"german region falls back to german", "de-AT", MsgCannotCreate, "Repo kann nicht erstellt werden: boom"},
		{"german teardown", "de", MsgCannotDestroy, "Repo kann nicht beendet werden: boom"},
		{"unknown locale renders english", "fr", MsgCannotCreate, "Repo cannot be created: boom"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tr, err := New(tc.locale)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", tc.locale, err)
			}
			if got := tr.Tr(tc.key, "Repo", "boom"); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTranslatorUnknownKey(t *testing.T) {
	tr := MustNew("de")
	if got := tr.Tr("plain %d", 7); got != "plain 7" {
		t.Errorf("expected key used as format, got %q", got)
	}
}

func TestNewInvalidLocale(t *testing.T) {
	if _, err := New("not a locale!"); err == nil {
		t.Error("expected error for invalid locale")
	}
}

func TestMustNewPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected MustNew to panic")
		}
	}()
	MustNew("???")
}

func TestLocale(t *testing.T) {
	if got := MustNew("de-DE").Locale(); got != "de-DE" {
		t.Errorf("expected de-DE, got %q", got)
	}
}
