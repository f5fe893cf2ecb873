package opgen

import (
	"strings"

	"github.com/talav/oasgen/config"
	"github.com/talav/oasgen/internal/ir"
	"github.com/talav/oasgen/internal/naming"
	"github.com/talav/oasgen/model"
)

// codingStrategy classifies how a media type's body is moved to and from
// the wire (SPEC_FULL.md §12).
type codingStrategy int

const (
	strategyJSON codingStrategy = iota
	strategyPlainText
	strategyRawBinary
	strategyMultipart
	strategyURLEncoded
)

// classifyContentType maps a media type string to its coding strategy per
// SPEC_FULL.md §12. Structured `+json` suffixes (e.g.
// application/vnd.api+json) are treated as JSON.
func classifyContentType(contentType string) codingStrategy {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}

	switch {
	case ct == "application/json" || strings.HasSuffix(ct, "+json"):
		return strategyJSON
	case ct == "multipart/form-data":
		return strategyMultipart
	case ct == "application/x-www-form-urlencoded":
		return strategyURLEncoded
	case strings.HasPrefix(ct, "text/"):
		return strategyPlainText
	default:
		return strategyRawBinary
	}
}

// contentTypeCaseName derives the friendly enum case name a content
// type's Body/AcceptableContentType case uses: "json" for
// application/json and any "+json" structured syntax (matching spec §8's
// "Output.ok.body.json"), "text" for the text/* family, "multipart" for
// multipart/form-data, "urlEncodedForm" for
// application/x-www-form-urlencoded, and the sanitized content type string
// for everything else.
func contentTypeCaseName(ct string, cfg config.Config) string {
	switch classifyContentType(ct) {
	case strategyJSON:
		return "json"
	case strategyPlainText:
		return "text"
	case strategyMultipart:
		return "multipart"
	case strategyURLEncoded:
		return "urlEncodedForm"
	default:
		return naming.Sanitize(ct, cfg.NamingStrategy, naming.Member, cfg.NameOverrides)
	}
}

// buildAcceptableContentType emits an AcceptableContentType enum naming
// every distinct content type documented across the operation's response
// bodies. The generated serialization closures do not reference it; the
// Accept header and response encoding are left to the runtime calls they
// make. Returns nil when the
// operation's responses name at most one content type, since a fixed
// single value needs no enum.
func (t *Translator) buildAcceptableContentType(ns naming.TypeName, op *model.Operation) ir.Declaration {
	access := string(t.cfg.Access)

	seen := map[string]bool{}
	var contentTypes []string
	for _, status := range sortedStringKeys(op.Responses) {
		resp := op.Responses[status]
		if resp == nil {
			continue
		}

		for _, ct := range sortedStringKeys(resp.Content) {
			if !seen[ct] {
				seen[ct] = true
				contentTypes = append(contentTypes, ct)
			}
		}
	}

	if len(contentTypes) < 2 {
		return nil
	}

	cases := make([]ir.EnumCase, 0, len(contentTypes))
	for _, ct := range contentTypes {
		caseName := contentTypeCaseName(ct, t.cfg)
		cases = append(cases, ir.EnumCase{Name: caseName, RawValueLiteral: quote(ct)})
	}

	e := ir.Enum{
		Name:         "AcceptableContentType",
		Access:       access,
		Conformances: []string{"String", "CaseIterable"},
		Cases:        cases,
	}

	return ir.Commentable{Comment: "The content types this operation's responses may use.", Inner: e}
}

func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	b.WriteString(s)
	b.WriteByte('"')

	return b.String()
}
