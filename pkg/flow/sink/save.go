package sink

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/image/tiff"

	"github.com/fschwar4/cohortflow/pkg/canvas"
)

const jpegQuality = 95

// formatAliases maps alternate tokens to their canonical format.
var formatAliases = map[string]string{
	"jpeg": "jpg",
	"tiff": "tif",
	"rgba": "raw",
}

// Formats lists the export tokens Save accepts, aliases included.
func Formats() []string {
	return []string{"png", "svg", "pdf", "ps", "eps", "jpg", "jpeg", "tif", "tiff", "webp", "pgf", "raw", "rgba"}
}

// Supported reports whether format is a known export token.
func Supported(format string) bool {
	t := normalize(format)
	if _, ok := formatAliases[t]; ok {
		return true
	}
	switch t {
	case "png", "svg", "pdf", "ps", "eps", "jpg", "tif", "webp", "pgf", "raw":
		return true
	}
	return false
}

func normalize(format string) string {
	return strings.ToLower(strings.TrimSpace(format))
}

// Save writes the figure to dir as <name>.<format> for every requested
// format and returns the paths written. Artifacts are independent: each
// format renders from the same display list, and the first failure stops
// the run. The directory is created if needed; a nil logger discards.
func Save(f *canvas.Figure, dir, name string, formats []string, logger *log.Logger) ([]string, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for _, format := range formats {
		token := normalize(format)
		path := filepath.Join(dir, name+"."+token)
		if err := writeFormat(f, path, token); err != nil {
			return paths, fmt.Errorf("export %s: %w", token, err)
		}
		logger.Debug("wrote artifact", "path", path)
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFormat(f *canvas.Figure, path, token string) error {
	canon := token
	if a, ok := formatAliases[token]; ok {
		canon = a
	}

	switch canon {
	case "svg":
		return writeFile(path, func(w io.Writer) error { return WriteSVG(f, w) })
	case "pgf":
		return writeFile(path, func(w io.Writer) error { return WritePGF(f, w) })
	case "pdf", "ps", "eps":
		var svg bytes.Buffer
		if err := WriteSVG(f, &svg); err != nil {
			return err
		}
		out, err := rsvgConvert(svg.Bytes(), canon)
		if err != nil {
			return err
		}
		return os.WriteFile(path, out, 0o644)
	case "png":
		img, err := Rasterize(f)
		if err != nil {
			return err
		}
		return writeFile(path, func(w io.Writer) error { return png.Encode(w, img) })
	case "jpg":
		img, err := Rasterize(f)
		if err != nil {
			return err
		}
		// JPEG has no alpha channel; flatten onto white.
		flat := image.NewRGBA(img.Bounds())
		draw.Draw(flat, flat.Bounds(), image.White, image.Point{}, draw.Src)
		draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)
		return writeFile(path, func(w io.Writer) error {
			return jpeg.Encode(w, flat, &jpeg.Options{Quality: jpegQuality})
		})
	case "tif":
		img, err := Rasterize(f)
		if err != nil {
			return err
		}
		return writeFile(path, func(w io.Writer) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		})
	case "raw":
		img, err := Rasterize(f)
		if err != nil {
			return err
		}
		return os.WriteFile(path, img.Pix, 0o644)
	case "webp":
		img, err := Rasterize(f)
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		out, err := toWebP(buf.Bytes())
		if err != nil {
			return err
		}
		return os.WriteFile(path, out, 0o644)
	}
	return fmt.Errorf("unsupported format %q (supported: %s)", token, strings.Join(Formats(), ", "))
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
