package layout

// PanelLayout holds calculated dimensions for the history sidebar and the
// stacked editor and response panes.
type PanelLayout struct {
	Width  int
	Height int

	SidebarWidth int
	MainWidth    int

	ContentHeight  int // height minus title bar and status bar
	EditorHeight   int
	ResponseHeight int

	SidebarVisible bool
	SinglePanel    bool
}

const (
	titleBarHeight  = 1
	statusBarHeight = 1
	minSidebarWidth = 24
	maxSidebarWidth = 48
	minEditorHeight = 14
)

// Calculate computes the panel layout from terminal dimensions.
func Calculate(width, height int, sidebarVisible bool) PanelLayout {
	l := PanelLayout{
		Width:          width,
		Height:         height,
		SidebarVisible: sidebarVisible,
		ContentHeight:  height - titleBarHeight - statusBarHeight,
	}

	if l.ContentHeight < 1 {
		l.ContentHeight = 1
	}

	// Responsive breakpoints
	switch {
	case width < 60:
		l.SinglePanel = true
		l.SidebarVisible = false
		l.MainWidth = width
	case width < 100:
		l.SidebarVisible = false
		l.MainWidth = width
	default:
		if sidebarVisible {
			l.SidebarWidth = clamp(width/4, minSidebarWidth, maxSidebarWidth)
		}
		l.MainWidth = width - l.SidebarWidth
	}

	if l.SinglePanel {
		l.EditorHeight = l.ContentHeight
		l.ResponseHeight = l.ContentHeight
		return l
	}

	l.EditorHeight = clamp(l.ContentHeight*2/5, minEditorHeight, l.ContentHeight)
	l.ResponseHeight = l.ContentHeight - l.EditorHeight
	return l
}

func clamp(v, min, max int) int {
	if max < min {
		return max
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
