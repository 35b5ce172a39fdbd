// Package textproc provides the builtin text processing transformers: case
// conversion, line operations, whitespace cleanup, JSON/XML formatting, and
// text statistics.
package textproc

import (
	"fmt"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

// Register adds every text processing transformer to the catalog.
func Register(c *catalog.Catalog) error {
	descriptors := []*transform.Descriptor{
		{Name: "to_upper_case", Category: transform.TextProcessing, Transform: ToUpper},
		{Name: "to_lower_case", Category: transform.TextProcessing, Transform: ToLower},
		{Name: "to_title_case", Category: transform.TextProcessing, Transform: ToTitle},
		{Name: "to_camel_case", Category: transform.TextProcessing, Transform: ToCamel},
		{Name: "to_pascal_case", Category: transform.TextProcessing, Transform: ToPascal},
		{Name: "to_snake_case", Category: transform.TextProcessing, Transform: ToSnake},
		{Name: "to_kebab_case", Category: transform.TextProcessing, Transform: ToKebab},
		{Name: "invert_case", Category: transform.TextProcessing, Transform: SwapCase},
		{Name: "swap_case", Category: transform.TextProcessing, Transform: SwapCase},
		{Name: "reverse_text", Category: transform.TextProcessing, Transform: ReverseText},
		{Name: "remove_whitespace", Category: transform.TextProcessing, Transform: RemoveWhitespace},
		{Name: "remove_extra_spaces", Category: transform.TextProcessing, Transform: RemoveExtraSpaces},
		{Name: "remove_numbers", Category: transform.TextProcessing, Transform: RemoveNumbers},
		{Name: "remove_punctuation", Category: transform.TextProcessing, Transform: RemovePunctuation},
		{Name: "remove_bom", Category: transform.TextProcessing, Transform: RemoveBOM},
		{Name: "trim_lines", Category: transform.TextProcessing, Transform: TrimLines},
		{Name: "remove_duplicates", Category: transform.TextProcessing, Transform: RemoveDuplicateLines},
		{Name: "sort_lines", Category: transform.TextProcessing, Transform: SortLines},
		{Name: "reverse_lines", Category: transform.TextProcessing, Transform: ReverseLines},
		{Name: "shuffle_lines", Category: transform.TextProcessing, Transform: ShuffleLines},
		{Name: "number_lines", Category: transform.TextProcessing, Transform: NumberLines},
		{Name: "count_characters", Category: transform.TextProcessing, Transform: CountCharacters},
		{Name: "count_words", Category: transform.TextProcessing, Transform: CountWords},
		{Name: "count_lines", Category: transform.TextProcessing, Transform: CountLines},
		{Name: "json_beautify", Category: transform.TextProcessing, Transform: JSONBeautify},
		{Name: "json_minify", Category: transform.TextProcessing, Transform: JSONMinify},
		{Name: "xml_beautify", Category: transform.TextProcessing, Transform: XMLBeautify},
		{Name: "xml_minify", Category: transform.TextProcessing, Transform: XMLMinify},
	}

	for _, d := range descriptors {
		if err := c.Register(d); err != nil {
			return fmt.Errorf("registering %s: %w", d.Name, err)
		}
	}
	return nil
}
