// Package viz renders the show in a terminal.
//
//   - [Braille]: a canvas.Surface backed by a braille dot matrix, so the
//     same scene renderers used for images paint into the terminal
//   - styles and [Theme] definitions shared by the presentation shell
//   - [Plot]: asciigraph line charts of control-loop runs
package viz
