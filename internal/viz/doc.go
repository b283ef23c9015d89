// Package viz renders the particle field in a terminal.
//
// [Canvas] is a Braille-dot surface: each terminal cell holds a 2x4 grid of
// dots, and every dot stands for Scale x Scale surface units. It implements
// render.Surface so the link renderer draws into it directly.
//
// Cells take the colour of the most opaque stroke that touched them, blended
// over the backdrop colour with go-colorful and printed with lipgloss. The
// terminal has no blur, so glow is ignored.
package viz
