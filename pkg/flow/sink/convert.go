package sink

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// rsvgConvert shells out to rsvg-convert for SVG-to-vector conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func rsvgConvert(svg []byte, format string) ([]byte, error) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		return nil, fmt.Errorf("%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	cmd := exec.Command("rsvg-convert", "-f", format)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("rsvg-convert: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}

// toWebP shells out to cwebp with a temporary PNG input.
// Requires the webp tools: brew install webp (macOS), apt install webp (Linux).
func toWebP(png []byte) ([]byte, error) {
	if _, err := exec.LookPath("cwebp"); err != nil {
		return nil, fmt.Errorf("webp export requires cwebp. Install with:\n  macOS:  brew install webp\n  Linux:  apt install webp")
	}

	tmp, err := os.CreateTemp("", "cohortflow-*.png")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(png); err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	cmd := exec.Command("cwebp", "-quiet", tmp.Name(), "-o", "-")

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("cwebp: %v: %s", err, errBuf.String())
	}
	return out.Bytes(), nil
}
