package hotkey

import (
	"fmt"
	"strings"
)

// DefaultMnemonic is the binding used when no valid one is configured.
const DefaultMnemonic = "Alt+Q"

// Modifier is one of the four hotkey modifiers. Values are bit flags so
// any combination fits in a ModifierSet.
type Modifier uint8

const (
	ModCtrl Modifier = 1 << iota
	ModAlt
	ModShift
	ModMeta
)

// modifierOrder is the canonical serialization order.
var modifierOrder = [...]Modifier{ModCtrl, ModAlt, ModShift, ModMeta}

func (m Modifier) String() string {
	switch m {
	case ModCtrl:
		return "Ctrl"
	case ModAlt:
		return "Alt"
	case ModShift:
		return "Shift"
	case ModMeta:
		return "Meta"
	default:
		return fmt.Sprintf("Modifier(%d)", uint8(m))
	}
}

// modifierSynonyms maps every accepted lowercase spelling to its modifier.
var modifierSynonyms = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"win":     ModMeta,
	"super":   ModMeta,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
}

// ModifierSet is a duplicate-free set of modifiers.
type ModifierSet uint8

// Has reports whether m is in the set.
func (s ModifierSet) Has(m Modifier) bool { return s&ModifierSet(m) != 0 }

// With returns the set plus m.
func (s ModifierSet) With(m Modifier) ModifierSet { return s | ModifierSet(m) }

// Without returns the set minus m.
func (s ModifierSet) Without(m Modifier) ModifierSet { return s &^ ModifierSet(m) }

// Empty reports whether no modifier is held.
func (s ModifierSet) Empty() bool { return s == 0 }

// Modifiers lists the members in canonical order.
func (s ModifierSet) Modifiers() []Modifier {
	var out []Modifier
	for _, m := range modifierOrder {
		if s.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

// Prefix renders the set as it appears in front of a main key, e.g. "Ctrl+Shift+".
func (s ModifierSet) Prefix() string {
	var b strings.Builder
	for _, m := range s.Modifiers() {
		b.WriteString(m.String())
		b.WriteByte('+')
	}
	return b.String()
}

// Hotkey is a validated modifier set plus exactly one main key. The zero
// value is not a valid hotkey; construct one with New or Parse.
type Hotkey struct {
	mods ModifierSet
	key  Key
}

// New validates mods and key and returns the resulting Hotkey.
func New(mods ModifierSet, key Key) (Hotkey, error) {
	if mods.Empty() {
		return Hotkey{}, &ParseError{Kind: NoModifier}
	}
	if !key.Valid() {
		return Hotkey{}, &ParseError{Kind: NoMainKey}
	}
	return Hotkey{mods: mods, key: key}, nil
}

// Modifiers returns the hotkey's modifier set.
func (h Hotkey) Modifiers() ModifierSet { return h.mods }

// Key returns the main key.
func (h Hotkey) Key() Key { return h.key }

// IsZero reports whether h was never constructed.
func (h Hotkey) IsZero() bool { return h.key == KeyNone }

// String returns the canonical mnemonic, e.g. "Ctrl+Shift+T".
func (h Hotkey) String() string {
	if h.IsZero() {
		return ""
	}
	return h.mods.Prefix() + h.key.String()
}

// Parse validates a mnemonic such as "ctrl + shift + t". Tokens are split on
// '+', trimmed and case-folded. Modifier synonyms may repeat; exactly one
// token must name a main key.
func Parse(mnemonic string) (Hotkey, error) {
	if strings.TrimSpace(mnemonic) == "" {
		return Hotkey{}, &ParseError{Kind: EmptyInput, Input: mnemonic}
	}

	var (
		mods ModifierSet
		key  = KeyNone
	)
	for _, raw := range strings.Split(mnemonic, "+") {
		token := strings.ToLower(strings.TrimSpace(raw))
		if token == "" {
			continue
		}
		if m, ok := modifierSynonyms[token]; ok {
			mods = mods.With(m)
			continue
		}
		k, ok := LookupKey(token)
		if !ok {
			return Hotkey{}, &ParseError{Kind: UnknownKey, Token: strings.TrimSpace(raw), Input: mnemonic}
		}
		if key != KeyNone {
			return Hotkey{}, &ParseError{Kind: MultipleMainKeys, Token: strings.TrimSpace(raw), Input: mnemonic}
		}
		key = k
	}

	if mods.Empty() {
		return Hotkey{}, &ParseError{Kind: NoModifier, Input: mnemonic}
	}
	if key == KeyNone {
		return Hotkey{}, &ParseError{Kind: NoMainKey, Input: mnemonic}
	}
	return Hotkey{mods: mods, key: key}, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(mnemonic string) Hotkey {
	hk, err := Parse(mnemonic)
	if err != nil {
		panic(err)
	}
	return hk
}

// Canonical parses mnemonic and returns its canonical form.
func Canonical(mnemonic string) (string, error) {
	hk, err := Parse(mnemonic)
	if err != nil {
		return "", err
	}
	return hk.String(), nil
}
