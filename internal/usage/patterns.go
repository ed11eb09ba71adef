package usage

import "regexp"

// Recognizer extracts raw translation keys written in one source convention.
type Recognizer struct {
	Name string
	find func(content string) []string
}

// Find returns every raw key the recognizer matches in content, in order of
// appearance. Keys are not normalized.
func (r Recognizer) Find(content string) []string {
	return r.find(content)
}

// Quoted string literal with a matching delimiter. Exactly one of the three
// groups is set on a match.
const (
	quotedAny    = `(?:'([^']+)'|"([^"]+)"|` + "`([^`]+)`" + `)`
	quotedNoDbl  = `(?:'([^']+)'|` + "`([^`]+)`" + `)`
	quotedNoSngl = `(?:"([^"]+)"|` + "`([^`]+)`" + `)`
	// Opening tag up to the keypath attribute. Quoted attribute values are
	// skipped whole so a ">" inside @click="() => x" does not end the tag.
	i18nTag = `<(?:i18n-t|i18n-T|I18nT|i18n|Translation)\b(?:[^>"']|"[^"]*"|'[^']*')*?`
)

var (
	// t('key'), $t("key", ...), rt(`key`), $tc('key', 2). \b rejects
	// identifiers that merely end in t/rt/tc such as getParent( or init(.
	callPattern = regexp.MustCompile(`\$?\b(?:t|rt|tc)\(\s*` + quotedAny + `\s*[,)]`)

	// useI18n().t('key')
	compositionPattern = regexp.MustCompile(`\buseI18n\(\)\.(?:t|rt|tc)\(\s*` + quotedAny + `\s*[,)]`)

	// { $t: 'key' }
	objectShorthandPattern = regexp.MustCompile(`\$t\s*:\s*` + quotedAny)

	// v-t="'key'" or v-t='"key"'
	directiveStaticPattern = regexp.MustCompile(
		`\bv-t\s*=\s*(?:"\s*` + quotedNoDbl + `\s*"|'\s*` + quotedNoSngl + `\s*')`)

	// v-t="{ path: 'key', args: {...} }"
	directivePathPattern = regexp.MustCompile(
		`\bv-t\s*=\s*(?:"\s*\{[^"]*?\bpath\s*:\s*` + quotedNoDbl + `|'\s*\{[^']*?\bpath\s*:\s*` + quotedNoSngl + `)`)

	// <i18n-t keypath="key"> and the legacy <i18n path="key">
	keypathStaticPattern = regexp.MustCompile(
		i18nTag + `\s(?:keypath|path)\s*=\s*(?:"([^"'` + "`" + `]+)"|'([^"'` + "`" + `]+)')`)

	// <i18n-t :keypath="'key'">
	keypathBoundPattern = regexp.MustCompile(
		i18nTag + `\s(?::|v-bind:)(?:keypath|path)\s*=\s*(?:"\s*` + quotedNoDbl + `\s*"|'\s*` + quotedNoSngl + `\s*')`)

	// const KEYS = [ ... ] and const KEYS: string[] = [ ... ]
	constArrayPattern  = regexp.MustCompile(`\bconst\s+\w+(?:\s*:[^=\n]+)?\s*=\s*\[([\s\S]*?)\]`)
	arrayStringPattern = regexp.MustCompile(quotedAny)
)

// DefaultRecognizers is the battery applied to every source file. Results of
// all recognizers are merged.
var DefaultRecognizers = []Recognizer{
	regexRecognizer("call", callPattern),
	regexRecognizer("composition", compositionPattern),
	regexRecognizer("object-shorthand", objectShorthandPattern),
	regexRecognizer("directive-static", directiveStaticPattern),
	regexRecognizer("directive-path", directivePathPattern),
	regexRecognizer("keypath-static", keypathStaticPattern),
	regexRecognizer("keypath-bound", keypathBoundPattern),
	{Name: "const-array", find: findConstArrayStrings},
}

func regexRecognizer(name string, re *regexp.Regexp) Recognizer {
	return Recognizer{
		Name: name,
		find: func(content string) []string {
			var keys []string
			for _, m := range re.FindAllStringSubmatch(content, -1) {
				if key := firstGroup(m); key != "" {
					keys = append(keys, key)
				}
			}
			return keys
		},
	}
}

// findConstArrayStrings treats every string literal inside a const array
// literal as a key. This over-approximates so that key lists built in code
// are not reported as unused.
func findConstArrayStrings(content string) []string {
	var keys []string
	for _, arr := range constArrayPattern.FindAllStringSubmatch(content, -1) {
		for _, m := range arrayStringPattern.FindAllStringSubmatch(arr[1], -1) {
			if key := firstGroup(m); key != "" {
				keys = append(keys, key)
			}
		}
	}
	return keys
}

func firstGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return ""
}
