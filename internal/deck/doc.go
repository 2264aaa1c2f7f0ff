// Package deck defines the slide records handed to slider widgets.
//
// A deck file lists widgets, each with its own slides and presentation
// options. Hosts pass these records to the widgets explicitly; nothing is
// inferred from rendered output. Files ending in .yaml or .yml are read as
// YAML, everything else as TOML:
//
//	title = "Front page"
//
//	[[widgets]]
//	id = "hero"
//	speed = "5s"            # "off" disables autoplay, bare numbers are ms
//	transition = "stacked"  # slide, fade or stacked
//	overlay_color = "#000000"
//	overlay_opacity = 0.5
//
//	  [[widgets.slides]]
//	  title = "Welcome"
//	  body = "Some **markdown**."
package deck
