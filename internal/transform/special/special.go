// Package special provides the remaining builtin transformers: Morse code,
// Braille, JWT inspection, HTML entities, CSV conversion, and Markdown
// helpers.
package special

import (
	"fmt"
	"html"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

// Register adds every special-format transformer to the catalog.
func Register(c *catalog.Catalog) error {
	descriptors := []*transform.Descriptor{
		{Name: "morse_encode", Category: transform.Special, Transform: MorseEncode},
		{Name: "morse_decode", Category: transform.Special, Transform: MorseDecode},
		{Name: "braille_encode", Category: transform.Special, Transform: BrailleEncode},
		{Name: "braille_decode", Category: transform.Special, Transform: BrailleDecode},
		{Name: "jwt_decode", Category: transform.Special, Transform: JWTDecode, Validate: transform.NonEmpty},
		{Name: "jwt_encode", Category: transform.Special, Transform: JWTEncode, Validate: transform.NonEmpty},
		{Name: "html_entity_encode", Category: transform.Special, Transform: HTMLEntityEncode},
		{Name: "html_entity_decode", Category: transform.Special, Transform: HTMLEntityDecode},
		{Name: "csv_format", Category: transform.Special, Transform: CSVFormat},
		{Name: "csv_unformat", Category: transform.Special, Transform: CSVUnformat},
		{Name: "markdown_table_encode", Category: transform.Special, Transform: MarkdownTable},
		{Name: "markdown_bold_encode", Category: transform.Special, Transform: MarkdownBold},
		{Name: "markdown_italic_encode", Category: transform.Special, Transform: MarkdownItalic},
		{Name: "markdown_code_encode", Category: transform.Special, Transform: MarkdownCodeBlock},
		{Name: "markdown_inline_code_encode", Category: transform.Special, Transform: MarkdownInlineCode},
	}

	for _, d := range descriptors {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("registering %s: %w", d.Name, err)
		}
	}
	return nil
}

// HTMLEntityEncode escapes the HTML special characters.
func HTMLEntityEncode(input string, _ transform.Options) (string, error) {
	return html.EscapeString(input), nil
}

// HTMLEntityDecode resolves HTML entities, named and numeric.
func HTMLEntityDecode(input string, _ transform.Options) (string, error) {
	return html.UnescapeString(input), nil
}
