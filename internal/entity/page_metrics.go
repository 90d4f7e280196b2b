package entity

const (
	ViewportWidth  = 1920
	ViewportHeight = 1080
)

// ProbeReport holds the raw geometry readings taken from a stabilized page.
type ProbeReport struct {
	PageHeight    int  `json:"pageHeight"`
	BodyHeight    int  `json:"bodyHeight"`
	HTMLHeight    int  `json:"htmlHeight"`
	ClientHeight  int  `json:"clientHeight"`
	InitialScroll int  `json:"initialScroll"`
	TestScroll    int  `json:"testScroll"`
	CanScroll     bool `json:"canScroll"`
}

// PageMetrics is the scroll geometry derived once per render.
type PageMetrics struct {
	MeasuredHeightPx int
	FullHeightPx     int
	ViewportWidth    int
	ViewportHeight   int
	MaxScrollPx      int
}

// NewPageMetrics derives the scroll range for a document of the given measured height.
// Documents shorter than the viewport yield MaxScrollPx == 0.
func NewPageMetrics(measuredHeightPx int) PageMetrics {
	full := measuredHeightPx
	if full < ViewportHeight {
		full = ViewportHeight
	}
	return PageMetrics{
		MeasuredHeightPx: measuredHeightPx,
		FullHeightPx:     full,
		ViewportWidth:    ViewportWidth,
		ViewportHeight:   ViewportHeight,
		MaxScrollPx:      full - ViewportHeight,
	}
}
