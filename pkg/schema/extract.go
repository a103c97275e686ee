package schema

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	packageRe      = regexp.MustCompile(`package\s+([\w.]+);`)
	importRe       = regexp.MustCompile(`import\s+"([^"]+)";`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`(?m)//.*$`)

	serviceStartRe = regexp.MustCompile(`service\s+(\w+)\s*\{`)
	rpcStartRe     = regexp.MustCompile(`rpc\s+(\w+)\s*\((\w+)\)\s*returns\s*\((\w+)\)\s*\{`)
	httpOptionRe   = regexp.MustCompile(`option\s+\(google\.api\.http\)\s*=\s*\{`)
	httpBodyRe     = regexp.MustCompile(`body:\s*"([^"]*)"`)

	// Message bodies tolerate exactly one level of nested braces. Deeper
	// nesting truncates the match; the block-level loss is accepted.
	messageRe = regexp.MustCompile(`(?s)message\s+(\w+)\s*\{([^}]+(?:\{[^}]*\}[^}]*)*)\}`)
	fieldRe   = regexp.MustCompile(`(?:(repeated|optional|required)\s+)?(\w+(?:\.\w+)*)\s+(\w+)\s*=\s*(\d+)(?:\s*\[([^\]]*)\])?(?:\s*;//?\s*(.*))?`)

	enumRe      = regexp.MustCompile(`(?s)enum\s+(\w+)\s*\{([^}]+)\}`)
	enumValueRe = regexp.MustCompile(`(\w+)\s*=\s*(\d+)(?:\s*;//?\s*(.*))?`)
)

// httpVerbPatterns is checked in order; the first verb with a quoted path wins.
var httpVerbPatterns = []struct {
	verb string
	re   *regexp.Regexp
}{
	{"get", regexp.MustCompile(`get:\s*"([^"]+)"`)},
	{"post", regexp.MustCompile(`post:\s*"([^"]+)"`)},
	{"put", regexp.MustCompile(`put:\s*"([^"]+)"`)},
	{"delete", regexp.MustCompile(`delete:\s*"([^"]+)"`)},
	{"patch", regexp.MustCompile(`patch:\s*"([^"]+)"`)},
}

// FileDeclarations holds everything extracted from one schema file.
type FileDeclarations struct {
	Path     string
	Package  string
	Imports  []string
	Services []*Service
	Messages []*Message
	Enums    []*Enum
}

// ExtractFile recovers declarations from one file's text. A file with no
// declarations is not an error; the result is simply empty. Blocks with
// unmatched braces are skipped individually without aborting the file.
func ExtractFile(path, content string) *FileDeclarations {
	decls := &FileDeclarations{Path: path}

	if m := packageRe.FindStringSubmatch(content); m != nil {
		decls.Package = m[1]
	}
	for _, m := range importRe.FindAllStringSubmatch(content, -1) {
		decls.Imports = append(decls.Imports, m[1])
	}

	// Comments are stripped with no exemption for string literals; quoted
	// braces or "//" inside option values can corrupt extraction. Kept as is
	// so currently-working inputs keep their behavior.
	stripped := blockCommentRe.ReplaceAllString(content, "")
	stripped = lineCommentRe.ReplaceAllString(stripped, "")

	decls.Services = extractServices(path, stripped)
	decls.Messages = extractMessages(path, stripped)
	decls.Enums = extractEnums(path, stripped)
	return decls
}

func extractServices(path, content string) []*Service {
	var services []*Service
	for _, loc := range serviceStartRe.FindAllStringSubmatchIndex(content, -1) {
		open := loc[1] - 1 // position of the opening brace
		end := MatchBrace(content, open)
		if end == BraceNotFound {
			continue // malformed service block
		}

		svc := &Service{
			Name:       content[loc[2]:loc[3]],
			SourceFile: path,
		}
		body := content[open+1 : end]

		for _, rloc := range rpcStartRe.FindAllStringSubmatchIndex(body, -1) {
			rpcOpen := rloc[1] - 1
			rpcEnd := MatchBrace(body, rpcOpen)
			if rpcEnd == BraceNotFound {
				continue // malformed rpc block
			}

			method := &Method{
				Name:       body[rloc[2]:rloc[3]],
				InputType:  body[rloc[4]:rloc[5]],
				OutputType: body[rloc[6]:rloc[7]],
			}
			parseHTTPBinding(method, body[rpcOpen+1:rpcEnd])
			svc.Methods = append(svc.Methods, method)
		}

		services = append(services, svc)
	}
	return services
}

// parseHTTPBinding fills in the HTTP verb, path and body field-mask from the
// first google.api.http option block in a method body, if present.
func parseHTTPBinding(method *Method, body string) {
	loc := httpOptionRe.FindStringIndex(body)
	if loc == nil {
		return
	}
	open := loc[1] - 1
	end := MatchBrace(body, open)
	if end == BraceNotFound {
		return
	}
	options := body[open+1 : end]

	for _, v := range httpVerbPatterns {
		if m := v.re.FindStringSubmatch(options); m != nil {
			method.HTTPMethod = strings.ToUpper(v.verb)
			method.HTTPPath = m[1]
			break
		}
	}
	if m := httpBodyRe.FindStringSubmatch(options); m != nil {
		method.HTTPBody = m[1]
	}
}

func extractMessages(path, content string) []*Message {
	var messages []*Message
	for _, m := range messageRe.FindAllStringSubmatch(content, -1) {
		msg := &Message{
			Name:       m[1],
			SourceFile: path,
		}
		for _, fm := range fieldRe.FindAllStringSubmatch(m[2], -1) {
			number, err := strconv.Atoi(fm[4])
			if err != nil {
				continue
			}
			msg.Fields = append(msg.Fields, &Field{
				Name:       fm[3],
				Type:       fm[2],
				Number:     number,
				Label:      Label(fm[1]),
				Comment:    strings.TrimSpace(fm[6]),
				Deprecated: strings.Contains(strings.ToLower(fm[5]), "deprecated = true"),
			})
		}
		messages = append(messages, msg)
	}
	return messages
}

func extractEnums(path, content string) []*Enum {
	var enums []*Enum
	for _, m := range enumRe.FindAllStringSubmatch(content, -1) {
		enum := &Enum{
			Name:       m[1],
			Values:     make(map[string]int),
			SourceFile: path,
		}
		for _, vm := range enumValueRe.FindAllStringSubmatch(m[2], -1) {
			number, err := strconv.Atoi(vm[2])
			if err != nil {
				continue
			}
			// Trailing comments are matched but not attached to values.
			enum.Values[vm[1]] = number
		}
		enums = append(enums, enum)
	}
	return enums
}
