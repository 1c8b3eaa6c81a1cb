package snapshot

import (
	_ "embed"
	"sync"
	"unicode"

	"github.com/go-fonts/liberation/liberationsansbold"
	"github.com/go-fonts/liberation/liberationsansregular"
	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/sfnt"
)

const (
	sansFamily = "liberationsans"
	wideFamily = "unifont"
)

// Unifont covers the whole Basic Multilingual Plane, so names in CJK,
// Hangul, Thai or Arabic script keep their glyphs.
//
//go:embed fonts/unifont-13.0.05.ttf
var wideTTF []byte

var sansFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(liberationsansregular.TTF)
})

// sansCovers reports whether Liberation Sans has a glyph for every rune of s
func sansCovers(s string) bool {
	f, err := sansFont()
	if err != nil {
		return false
	}

	var buf sfnt.Buffer
	for _, r := range s {
		if r < 0x80 || unicode.IsSpace(r) {
			continue
		}
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil || gi == 0 {
			return false
		}
	}
	return true
}

// needsWide reports whether any text of d falls outside Liberation Sans
func needsWide(d Document) bool {
	texts := []string{d.Title, d.Footer}
	for _, p := range d.Pages {
		texts = append(texts, p.Title)
		for _, s := range p.Sections {
			texts = append(texts, s.Heading)
			texts = append(texts, s.Lines...)
			for _, r := range s.Rows {
				texts = append(texts, r.Label, r.Value)
			}
		}
	}
	for _, t := range texts {
		if !sansCovers(t) {
			return true
		}
	}
	return false
}

// typeface switches between the Latin face and the Unifont fallback per
// string. Unifont has no bold cut; bold text in it renders regular.
type typeface struct {
	pdf  *fpdf.Fpdf
	wide bool
}

func newTypeface(pdf *fpdf.Fpdf, d Document) *typeface {
	pdf.AddUTF8FontFromBytes(sansFamily, "", liberationsansregular.TTF)
	pdf.AddUTF8FontFromBytes(sansFamily, "B", liberationsansbold.TTF)

	tf := &typeface{pdf: pdf}
	if needsWide(d) {
		pdf.AddUTF8FontFromBytes(wideFamily, "", wideTTF)
		tf.wide = true
	}
	return tf
}

// use selects the font for text s and returns s for chaining into a cell
func (tf *typeface) use(style string, size float64, s string) string {
	if tf.wide && !sansCovers(s) {
		tf.pdf.SetFont(wideFamily, "", size)
		return s
	}
	tf.pdf.SetFont(sansFamily, style, size)
	return s
}
