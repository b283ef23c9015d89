// Package render draws the particle field onto a 2D surface.
//
// [LinkRenderer] paints every particle as a filled circle and joins every pair
// closer than the link distance with a glowing line whose opacity falls off
// linearly with distance. Backends implement [Surface]; [DisplayList] records
// draw calls so a frame can be replayed on another goroutine or inspected in tests.
package render
