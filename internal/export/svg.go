package export

import (
	"fmt"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/accretion/internal/dynamo"
	"github.com/san-kum/accretion/internal/physics"
)

const anchorColor = "#ffd166"

type track struct {
	id       int
	category physics.Category
	points   []dynamo.BodyState
}

// TrajectoriesToSVG draws one polyline per body id in world coordinates,
// with a dot at the last recorded position. width and height are the world
// dimensions and become the SVG viewBox.
func TrajectoriesToSVG(frames []dynamo.Frame, width, height float64) string {
	tracks := collect(frames)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	palette := Palette(len(tracks))
	for i, tr := range tracks {
		color := palette[i]
		if tr.category == physics.Anchor {
			color = anchorColor
		}

		if len(tr.points) > 1 {
			sb.WriteString(fmt.Sprintf(`<path id="body-%d" fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.8" d="`, tr.id, color))
			for j, p := range tr.points {
				if j == 0 {
					sb.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
				} else {
					sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
				}
			}
			sb.WriteString("\"/>\n")
		}

		last := tr.points[len(tr.points)-1]
		r := 2.0
		if tr.category == physics.Anchor {
			r = 8
		}
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, last.X, last.Y, r, color))
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func collect(frames []dynamo.Frame) []*track {
	byID := make(map[int]*track)
	for _, f := range frames {
		for _, b := range f.Bodies {
			tr, ok := byID[b.ID]
			if !ok {
				tr = &track{id: b.ID, category: b.Category}
				byID[b.ID] = tr
			}
			tr.points = append(tr.points, b)
		}
	}

	tracks := make([]*track, 0, len(byID))
	for _, tr := range byID {
		tracks = append(tracks, tr)
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].id < tracks[j].id })
	return tracks
}

// Palette returns n hex colors evenly spaced in HCL hue.
func Palette(n int) []string {
	out := make([]string, n)
	for i := range out {
		hue := 360 * float64(i) / float64(max(n, 1))
		out[i] = colorful.Hcl(hue, 0.55, 0.7).Clamped().Hex()
	}
	return out
}
