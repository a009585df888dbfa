package draw

import "github.com/gogpu/gg"

// Palette is the neon-on-navy color scheme shared by every scene.
type Palette struct {
	Background     gg.RGBA
	BackgroundEdge gg.RGBA
	Neon           gg.RGBA
	NeonDim        gg.RGBA
	White          gg.RGBA
	Warning        gg.RGBA
	Success        gg.RGBA
	Cyan           gg.RGBA
	Purple         gg.RGBA
	Orange         gg.RGBA
	Panel          gg.RGBA
	Slate          gg.RGBA
	Muted          gg.RGBA
	Steel          gg.RGBA
}

var Colors = Palette{
	Background:     gg.Hex("#0a1628"),
	BackgroundEdge: gg.Hex("#050a14"),
	Neon:           gg.Hex("#00f0ff"),
	NeonDim:        gg.RGBA{R: 0, G: 240.0 / 255, B: 1, A: 0.3},
	White:          gg.Hex("#ffffff"),
	Warning:        gg.Hex("#ff4444"),
	Success:        gg.Hex("#00ff88"),
	Cyan:           gg.Hex("#00d4ff"),
	Purple:         gg.Hex("#a855f7"),
	Orange:         gg.Hex("#ff9900"),
	Panel:          gg.RGBA{R: 10.0 / 255, G: 22.0 / 255, B: 40.0 / 255, A: 0.9},
	Slate:          gg.Hex("#1e293b"),
	Muted:          gg.Hex("#334155"),
	Steel:          gg.Hex("#94a3b8"),
}
