package capture

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/scrollfx"
)

// measureJS collects the page geometry the engine reads. Layout boxes come
// from the offsetParent chain so running transforms do not leak in. The three
// %s verbs take JSON-encoded element names, card selector and nav selector.
const measureJS = `(() => {
	const layout = (el) => {
		let x = 0, y = 0;
		for (let n = el; n; n = n.offsetParent) {
			x += n.offsetLeft;
			y += n.offsetTop;
		}
		return {x, y, width: el.offsetWidth, height: el.offsetHeight};
	};
	const elements = {};
	for (const name of %s) {
		const el = document.querySelector(name);
		if (el) elements[name] = layout(el);
	}
	const cards = Array.from(document.querySelectorAll(%s), layout);
	const navLinks = Array.from(document.querySelectorAll(%s), (a) => {
		const target = (a.getAttribute("href") || "").replace(/^#/, "");
		const section = target ? document.getElementById(target) : null;
		return {target, section: section ? layout(section) : null};
	});
	return {
		width: window.innerWidth,
		height: window.innerHeight,
		scrollHeight: document.documentElement.scrollHeight,
		reducedMotion: matchMedia("(prefers-reduced-motion: reduce)").matches,
		canHover: matchMedia("(hover: hover)").matches,
		elements,
		cards,
		navLinks,
	};
})()`

type measuredRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r measuredRect) rect() scrollfx.Rect {
	return scrollfx.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

type measuredLink struct {
	Target  string        `json:"target"`
	Section *measuredRect `json:"section"`
}

// measurement is the object returned by measureJS.
type measurement struct {
	Width         float64                 `json:"width"`
	Height        float64                 `json:"height"`
	ScrollHeight  float64                 `json:"scrollHeight"`
	ReducedMotion bool                    `json:"reducedMotion"`
	CanHover      bool                    `json:"canHover"`
	Elements      map[string]measuredRect `json:"elements"`
	Cards         []measuredRect          `json:"cards"`
	NavLinks      []measuredLink          `json:"navLinks"`
}

// measureScript renders measureJS for the engine's selectors.
func measureScript() (string, error) {
	names, err := json.Marshal(scrollfx.ElementNames)
	if err != nil {
		return "", fmt.Errorf("encode element names: %w", err)
	}
	cards, err := json.Marshal(scrollfx.CardSelector)
	if err != nil {
		return "", fmt.Errorf("encode card selector: %w", err)
	}
	nav, err := json.Marshal(scrollfx.NavLinkSelector)
	if err != nil {
		return "", fmt.Errorf("encode nav selector: %w", err)
	}
	return fmt.Sprintf(measureJS, names, cards, nav), nil
}

// parseMeasurement decodes the raw result of measureJS into a snapshot.
// Unknown element names are dropped.
func parseMeasurement(url string, raw []byte) (*scrollfx.Snapshot, error) {
	var m measurement
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode measurement: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("decode measurement: viewport %vx%v must be positive", m.Width, m.Height)
	}

	s := &scrollfx.Snapshot{
		URL:           url,
		Width:         m.Width,
		Height:        m.Height,
		ScrollHeight:  m.ScrollHeight,
		ReducedMotion: m.ReducedMotion,
		CanHover:      m.CanHover,
	}
	known := make(map[string]scrollfx.ElementName, len(scrollfx.ElementNames))
	for _, name := range scrollfx.ElementNames {
		known[string(name)] = name
	}
	for sel, r := range m.Elements {
		name, ok := known[sel]
		if !ok {
			continue
		}
		if s.Elements == nil {
			s.Elements = make(map[scrollfx.ElementName]scrollfx.Rect)
		}
		s.Elements[name] = r.rect()
	}
	for _, r := range m.Cards {
		s.Cards = append(s.Cards, r.rect())
	}
	for _, l := range m.NavLinks {
		link := scrollfx.SnapshotLink{Target: l.Target}
		if l.Section != nil {
			r := l.Section.rect()
			link.Section = &r
		}
		s.NavLinks = append(s.NavLinks, link)
	}
	return s, nil
}
