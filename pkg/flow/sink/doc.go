// Package sink exports rendered figures to files and byte streams.
//
// Two native backends replay a figure's display list: an SVG writer built
// on svgo and a rasterizer built on gg with the embedded Go fonts. The
// remaining formats derive from those two: PNG, JPEG, TIFF, and raw RGBA
// encode the raster; PDF, PostScript, and EPS convert the SVG through
// rsvg-convert; WebP pipes the raster through cwebp. A PGF writer emits
// TikZ source for LaTeX documents, and [RenderDOT] turns DOT previews into
// SVG in process.
//
// [Save] is the multi-format front door used by the CLI: one call, one
// file per requested format token.
package sink
