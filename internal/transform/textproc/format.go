package textproc

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"github.com/dshills/transmute/internal/transform"
)

// JSONBeautify reindents JSON with two spaces, preserving key order.
func JSONBeautify(input string, _ transform.Options) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(input), "", "  "); err != nil {
		return "", transform.InputError("not valid JSON: %v", err)
	}
	return buf.String(), nil
}

// JSONMinify strips insignificant whitespace from JSON.
func JSONMinify(input string, _ transform.Options) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(input)); err != nil {
		return "", transform.InputError("not valid JSON: %v", err)
	}
	return buf.String(), nil
}

// XMLBeautify reindents XML with two spaces. Whitespace-only text nodes are
// dropped; other text is trimmed and kept inline.
func XMLBeautify(input string, _ transform.Options) (string, error) {
	return reformatXML(input, "  ")
}

// XMLMinify removes insignificant whitespace between XML elements.
func XMLMinify(input string, _ transform.Options) (string, error) {
	return reformatXML(input, "")
}

// reformatXML round-trips the document through the token stream, rewriting
// text nodes and letting the encoder handle indentation.
func reformatXML(input, indent string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	decoder := xml.NewDecoder(strings.NewReader(input))
	decoder.Strict = true

	var sb strings.Builder
	encoder := xml.NewEncoder(&sb)
	if indent != "" {
		encoder.Indent("", indent)
	}

	seenToken := false
	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", transform.InputError("not valid XML: %v", err)
		}
		seenToken = true

		if cd, ok := tok.(xml.CharData); ok {
			trimmed := bytes.TrimSpace(cd)
			if len(trimmed) == 0 {
				continue
			}
			tok = xml.CharData(trimmed)
		}

		if err := encoder.EncodeToken(tok); err != nil {
			return "", transform.InputError("re-encoding XML: %v", err)
		}
	}
	if !seenToken {
		return "", transform.InputError("not valid XML: no content")
	}
	if err := encoder.Flush(); err != nil {
		return "", transform.InputError("re-encoding XML: %v", err)
	}
	return sb.String(), nil
}
