package locale

import (
	"testing"

	"golang.org/x/text/language"
)

func TestEnglishDefault(t *testing.T) {
	p := New("en-US")
	if got := p.Get("chart_pie"); got != "Pie" {
		t.Fatalf("expected Pie, got %q", got)
	}
	if p.Language() != language.English {
		t.Fatalf("unexpected language %v", p.Language())
	}
}

func TestConcatenatesKeys(t *testing.T) {
	p := New("en")
	if got := p.Get("chart_column  stacked"); got != "Column stacked" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestFallbackChain(t *testing.T) {
	p := New("ru-RU")
	if got := p.Get("chart_pie"); got != "Круговая" {
		t.Fatalf("expected russian string, got %q", got)
	}
	// missing in ru, present in en
	if got := p.Get("unsaved"); got != "Unsaved changes, use :w or :q!" {
		t.Fatalf("expected english fallback, got %q", got)
	}
	if got := p.Get("no_such_key"); got != "no_such_key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestUnknownLanguage(t *testing.T) {
	for _, lang := range []string{"xx", "not a tag", "ja"} {
		if got := New(lang).Get("chart_bar"); got != "Bar" {
			t.Fatalf("%s: expected english, got %q", lang, got)
		}
	}
}

func TestEnvLanguage(t *testing.T) {
	t.Setenv("LANG", "ru_RU.UTF-8")
	if got := New("").Get("chart_line"); got != "График" {
		t.Fatalf("expected LANG to select russian, got %q", got)
	}
}
