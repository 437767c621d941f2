package scan

import (
	"regexp"
)

// Declaration is a matched symbol declaration.
type Declaration struct {
	Name string
	Kind SymbolKind
}

// declarationMatcher recognizes one declaration shape on a single line.
// Matchers are tried in a fixed priority order per line: type before
// method before property.
type declarationMatcher interface {
	Match(line string) (Declaration, bool)
}

var (
	// Type: optional modifiers, then interface|class|struct|record|enum + name.
	typePattern = regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|sealed|abstract|partial)\s+)*(interface|class|struct|record|enum)\s+([A-Za-z_]\w*)`)

	// Method: modifiers optional, a return-type token, name, then ( or <.
	// Constructors have no return-type token and intentionally do not match.
	methodPattern = regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|virtual|override|sealed|async|extern|unsafe|new|partial)\s+)*([A-Za-z_][\w.<>\[\],?]*)\s+([A-Za-z_]\w*)\s*[(<]`)

	// Property: optional modifiers, a type token, name, then {.
	propertyPattern = regexp.MustCompile(`^\s*(?:(?:public|private|protected|internal|static|virtual|override|new)\s+)*([A-Za-z_][\w.<>\[\],?]*)\s+([A-Za-z_]\w*)\s*\{`)
)

var typeKinds = map[string]SymbolKind{
	"interface": KindInterface,
	"class":     KindClass,
	"struct":    KindStruct,
	"record":    KindRecord,
	"enum":      KindEnum,
}

// reservedTypeTokens are words the method/property patterns can capture
// as a "return type" via backtracking but that never are one. Rejecting
// them keeps constructors and plain statements from matching.
var reservedTypeTokens = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "virtual": true, "override": true, "sealed": true,
	"async": true, "extern": true, "unsafe": true, "new": true,
	"partial": true, "abstract": true, "return": true, "await": true,
	"yield": true, "throw": true, "using": true, "namespace": true,
}

type typeDeclarationMatcher struct{}

func (typeDeclarationMatcher) Match(line string) (Declaration, bool) {
	m := typePattern.FindStringSubmatch(line)
	if m == nil {
		return Declaration{}, false
	}
	return Declaration{Name: m[2], Kind: typeKinds[m[1]]}, true
}

type methodDeclarationMatcher struct{}

func (methodDeclarationMatcher) Match(line string) (Declaration, bool) {
	m := methodPattern.FindStringSubmatch(line)
	if m == nil || reservedTypeTokens[m[1]] {
		return Declaration{}, false
	}
	return Declaration{Name: m[2], Kind: KindMethod}, true
}

type propertyDeclarationMatcher struct{}

func (propertyDeclarationMatcher) Match(line string) (Declaration, bool) {
	m := propertyPattern.FindStringSubmatch(line)
	if m == nil || reservedTypeTokens[m[1]] {
		return Declaration{}, false
	}
	return Declaration{Name: m[2], Kind: KindProperty}, true
}

var declMatchers = []declarationMatcher{
	typeDeclarationMatcher{},
	methodDeclarationMatcher{},
	propertyDeclarationMatcher{},
}

// ExtractDeclaration scans lines[start:start+window] for the nearest
// declaration. Tie-break is positional top-to-bottom; within one line the
// matcher order decides. Returns the matched line index (into lines) and
// false when nothing in the window matches.
func ExtractDeclaration(lines []string, start, window int) (Declaration, int, bool) {
	end := start + window
	if end > len(lines) {
		end = len(lines)
	}
	for i := start; i < end; i++ {
		if i < 0 {
			continue
		}
		for _, m := range declMatchers {
			if decl, ok := m.Match(lines[i]); ok {
				return decl, i, true
			}
		}
	}
	return Declaration{}, 0, false
}
