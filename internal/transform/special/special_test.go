package special

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/transmute/internal/transform"
	"github.com/dshills/transmute/internal/transform/catalog"
)

func TestMorse(t *testing.T) {
	got, err := MorseEncode("SOS", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "... --- ..." {
		t.Errorf("MorseEncode(SOS) = %q, want ... --- ...", got)
	}

	hello, err := MorseEncode("Hello World", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := ".... . .-.. .-.. --- / .-- --- .-. .-.. -.."
	if hello != want {
		t.Errorf("MorseEncode(Hello World) = %q, want %q", hello, want)
	}

	back, err := MorseDecode(want, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "HELLO WORLD" {
		t.Errorf("MorseDecode() = %q, want HELLO WORLD", back)
	}
}

func TestBraille(t *testing.T) {
	got, err := BrailleEncode("abc", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "\u2801\u2803\u2809" {
		t.Errorf("BrailleEncode(abc) = %q", got)
	}

	// Uppercase folds to the same cells.
	upper, err := BrailleEncode("ABC", nil)
	if err != nil {
		t.Fatal(err)
	}
	if upper != got {
		t.Errorf("BrailleEncode(ABC) = %q, want %q", upper, got)
	}

	// Digits get a number indicator.
	digits, err := BrailleEncode("a12", nil)
	if err != nil {
		t.Fatal(err)
	}
	if digits != "\u2801\u283c\u2801\u2803" {
		t.Errorf("BrailleEncode(a12) = %q", digits)
	}

	back, err := BrailleDecode(digits, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "a12" {
		t.Errorf("BrailleDecode() = %q, want a12", back)
	}
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := JWTEncode(`{"sub": "1234", "name": "Jo"}`, nil)
	if err != nil {
		t.Fatalf("JWTEncode() error = %v", err)
	}
	if !strings.HasSuffix(token, ".") {
		t.Errorf("unsigned JWT should end with a dot: %q", token)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("JWT has %d parts, want 3", len(parts))
	}

	decoded, err := JWTDecode("Bearer "+token, nil)
	if err != nil {
		t.Fatalf("JWTDecode() error = %v", err)
	}
	for _, fragment := range []string{"Header:", `"alg": "none"`, "Payload:", `"sub": "1234"`, "Signature:"} {
		if !strings.Contains(decoded, fragment) {
			t.Errorf("JWTDecode() output missing %q:\n%s", fragment, decoded)
		}
	}
}

func TestJWTErrors(t *testing.T) {
	if _, err := JWTDecode("only.two", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("JWTDecode(only.two) error = %v, want ErrMalformedInput", err)
	}
	if _, err := JWTEncode("not json", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("JWTEncode(not json) error = %v, want ErrMalformedInput", err)
	}
}

func TestHTMLEntities(t *testing.T) {
	got, err := HTMLEntityEncode("<a> & 'b'", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "&lt;a&gt; &amp; &#39;b&#39;" {
		t.Errorf("HTMLEntityEncode() = %q", got)
	}

	back, err := HTMLEntityDecode(got, nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "<a> & 'b'" {
		t.Errorf("HTMLEntityDecode() = %q, want <a> & 'b'", back)
	}
}

func TestCSV(t *testing.T) {
	got, err := CSVFormat("a\tb,c\nd  e\tf", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "a,\"b,c\"\nd  e,f\n" {
		t.Errorf("CSVFormat() = %q", got)
	}

	back, err := CSVUnformat("a,\"b,c\"\nd,e\n", nil)
	if err != nil {
		t.Fatal(err)
	}
	if back != "a\tb,c\nd\te\n" {
		t.Errorf("CSVUnformat() = %q", back)
	}

	if _, err := CSVUnformat("\"unterminated", nil); !errors.Is(err, transform.ErrMalformedInput) {
		t.Errorf("CSVUnformat(invalid) error = %v, want ErrMalformedInput", err)
	}
}

func TestMarkdownTable(t *testing.T) {
	got, err := MarkdownTable("Name\tAge\nAda\t36", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := "| Name | Age |\n|---|---|\n| Ada | 36 |"
	if got != want {
		t.Errorf("MarkdownTable() = %q, want %q", got, want)
	}
}

func TestMarkdownWrappers(t *testing.T) {
	bold, err := MarkdownBold("x\n\ny", nil)
	if err != nil {
		t.Fatal(err)
	}
	if bold != "**x**\n\n**y**" {
		t.Errorf("MarkdownBold() = %q", bold)
	}

	code, err := MarkdownCodeBlock("line", nil)
	if err != nil {
		t.Fatal(err)
	}
	if code != "```\nline\n```" {
		t.Errorf("MarkdownCodeBlock() = %q", code)
	}
}

func TestRegister(t *testing.T) {
	c := catalog.New()
	if err := Register(c); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if got := len(c.ByCategory(transform.Special)); got != 15 {
		t.Errorf("special count = %d, want 15", got)
	}
}
