// Package fonts provides the parsed font faces used for raster text.
//
// The Go font family ships embedded with golang.org/x/image, so rendering
// needs no font files on disk. Parsing happens once, on first use.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Family is the CSS font-family stack for vector output, matching the
// metrics of the embedded faces closely enough for layout purposes.
const Family = "Helvetica,Arial,sans-serif"

var (
	once     sync.Once
	parseErr error

	regular *truetype.Font
	bold    *truetype.Font
	italic  *truetype.Font
)

func parse() {
	for _, f := range []struct {
		ttf []byte
		dst **truetype.Font
	}{
		{goregular.TTF, &regular},
		{gobold.TTF, &bold},
		{goitalic.TTF, &italic},
	} {
		var err error
		if *f.dst, err = truetype.Parse(f.ttf); err != nil {
			parseErr = fmt.Errorf("parse embedded font: %w", err)
			return
		}
	}
}

// Regular returns the regular text font.
func Regular() (*truetype.Font, error) {
	once.Do(parse)
	return regular, parseErr
}

// Bold returns the bold text font.
func Bold() (*truetype.Font, error) {
	once.Do(parse)
	return bold, parseErr
}

// Italic returns the italic text font.
func Italic() (*truetype.Font, error) {
	once.Do(parse)
	return italic, parseErr
}
