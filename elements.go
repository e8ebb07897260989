package scrollfx

// elementHandles holds references to the optional page elements. Every field
// may be nil; each sub-feature degrades on its own when its element is
// missing.
type elementHandles struct {
	jupiter   Element
	saturn    Element
	quote     Element
	library   Element
	essayCard Element
	footer    Element
	spaceBg   Element
	progress  Element
	backToTop Element
	cards     []Element
	navLinks  []NavLink
}

// elementCache resolves handles once per page load. Pages are assumed to be
// full reloads, so there is no re-resolution path.
type elementCache struct {
	resolved bool
	handles  elementHandles
}

// ensure resolves the handles on first use. The Jupiter base opacity is set
// here, once, since nothing else writes it.
func (c *elementCache) ensure(page Page, cfg *Config) *elementHandles {
	if c.resolved {
		return &c.handles
	}
	h := elementHandles{
		jupiter:   page.Lookup(ElemJupiter),
		saturn:    page.Lookup(ElemSaturn),
		quote:     page.Lookup(ElemQuoteSection),
		library:   page.Lookup(ElemLibrarySection),
		essayCard: page.Lookup(ElemEssayCard),
		footer:    page.Lookup(ElemFooter),
		spaceBg:   page.Lookup(ElemSpaceBg),
		progress:  page.Lookup(ElemProgressBar),
		backToTop: page.Lookup(ElemBackToTop),
		cards:     page.Cards(),
		navLinks:  page.NavLinks(),
	}
	if h.jupiter != nil {
		h.jupiter.SetOpacity(cfg.Bodies.JupiterOpacity)
	}
	c.handles = h
	c.resolved = true
	return &c.handles
}

// hasBodies reports whether the page carries both bodies and the zone
// boundary between them.
func (h *elementHandles) hasBodies() bool {
	return h.jupiter != nil && h.saturn != nil && h.quote != nil
}
