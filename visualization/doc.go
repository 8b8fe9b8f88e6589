// Package visualization renders binary images, concentration fields
// and axis profiles to PNG files.
//
// Field renders go through gonum/plot: a rank-2 field (or one
// cross-section of a rank-3 field) becomes a plotter.HeatMap over a
// heat palette, drawn with row 0 at the top so the output matches the
// row/column layout of the underlying data. Binary images render
// black/white through the standard image encoder, void voxels white.
// Profiles (per-slice porosity or mean concentration) render as line
// charts.
//
// Every renderer validates its input, writes one file at the given
// path and reports failures as wrapped errors.
package visualization
