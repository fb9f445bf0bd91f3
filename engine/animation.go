package engine

// ============================================================================
// ANIMATION CONTROLS — play/pause buttons and a frame slider
// ============================================================================

const (
	playDuration = 500
	playLabel    = "&#9654;"
	pauseLabel   = "&#9724;"
)

// frameArgs are the plotly.js animate() options for one transition.
// Only plain scatter traces animate without a full redraw.
func frameArgs(duration int, mark string) Object {
	return Object{
		"frame":       Object{"duration": duration, "redraw": mark != MarkScatter},
		"mode":        "immediate",
		"fromcurrent": true,
		"transition":  Object{"duration": duration, "easing": "linear"},
	}
}

// animationControls returns the updatemenus and sliders for frames, or nil
// when there is nothing to animate.
func animationControls(a *Args, mark string, frames []Frame) Object {
	if a.AnimationFrame == "" || len(frames) <= 1 {
		return nil
	}
	menu := Object{
		"buttons": []Object{
			{"args": []any{nil, frameArgs(playDuration, mark)}, "label": playLabel, "method": "animate"},
			{"args": []any{[]any{nil}, frameArgs(0, mark)}, "label": pauseLabel, "method": "animate"},
		},
		"direction":  "left",
		"pad":        Object{"r": 10, "t": 70},
		"showactive": false,
		"type":       "buttons",
		"x":          0.1,
		"xanchor":    "right",
		"y":          0,
		"yanchor":    "top",
	}

	steps := make([]Object, len(frames))
	for i, f := range frames {
		steps[i] = Object{
			"args":   []any{[]any{f.Name}, frameArgs(0, mark)},
			"label":  f.Name,
			"method": "animate",
		}
	}
	slider := Object{
		"active":       0,
		"yanchor":      "top",
		"xanchor":      "left",
		"currentvalue": Object{"prefix": a.Label(a.AnimationFrame) + "="},
		"pad":          Object{"b": 10, "t": 60},
		"len":          0.9,
		"x":            0.1,
		"y":            0,
		"steps":        steps,
	}
	return Object{
		"updatemenus": []Object{menu},
		"sliders":     []Object{slider},
	}
}
