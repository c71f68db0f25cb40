// Package locale resolves display strings for the active language.
package locale

import (
	"embed"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/kobzarvs/qchart/internal/logger"
)

//go:embed locales/*.toml
var resources embed.FS

type resource struct {
	Strings map[string]string `toml:"strings"`
}

// Provider looks keys up in the matched language, then its base language,
// then English, and finally returns the key itself.
type Provider struct {
	tag   language.Tag
	chain []map[string]string
}

// Supported lists the embedded languages, English first.
func Supported() []language.Tag {
	tags := []language.Tag{language.English}
	entries, _ := resources.ReadDir("locales")
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if t, err := language.Parse(name); err == nil && t != language.English {
			tags = append(tags, t)
		}
	}
	return tags
}

// New builds a provider for lang ("ru", "pt-BR"). An empty lang falls back to
// the LANG environment variable.
func New(lang string) *Provider {
	if lang == "" {
		lang = envLanguage()
	}
	requested, err := language.Parse(lang)
	if err != nil {
		requested = language.English
	}
	supported := Supported()
	_, idx, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[idx]

	p := &Provider{tag: tag}
	seen := map[string]bool{}
	add := func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		if m := load(name); m != nil {
			p.chain = append(p.chain, m)
		}
	}
	add(requested.String())
	base, _ := requested.Base()
	add(base.String())
	add(tag.String())
	add("en")
	return p
}

func envLanguage() string {
	v := os.Getenv("LANG")
	v, _, _ = strings.Cut(v, ".")
	return strings.ReplaceAll(v, "_", "-")
}

func load(name string) map[string]string {
	data, err := resources.ReadFile("locales/" + name + ".toml")
	if err != nil {
		return nil
	}
	var r resource
	if err := toml.Unmarshal(data, &r); err != nil {
		logger.Warn("bad locale resource", "lang", name, "error", err)
		return nil
	}
	return r.Strings
}

// Language is the matched display language.
func (p *Provider) Language() language.Tag { return p.tag }

// Get resolves a key, or a space separated list of keys joined with spaces.
func (p *Provider) Get(keys string) string {
	fields := strings.Fields(keys)
	out := make([]string, 0, len(fields))
	for _, k := range fields {
		out = append(out, p.lookup(k))
	}
	return strings.Join(out, " ")
}

func (p *Provider) lookup(key string) string {
	for _, m := range p.chain {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
