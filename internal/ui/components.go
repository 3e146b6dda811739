package ui

import (
	"fmt"

	"github.com/olivier-w/wobbly/internal/desktop"
	"github.com/olivier-w/wobbly/internal/util"
)

func effectLabel(w *desktop.Window) string {
	if w == nil {
		return ""
	}
	if w.Popup {
		return "popup"
	}
	if eff := w.Effect(); eff != nil {
		return eff.State().String()
	}
	return "still"
}

func renderStatus(d *desktop.Desktop, msg string) string {
	cfg := d.Config()
	left := fmt.Sprintf("tiles %s  k %s  friction %s  mass %s",
		util.FormatTiles(cfg.XTiles, cfg.YTiles),
		util.FormatFloat(cfg.K),
		util.FormatFloat(cfg.Friction),
		util.FormatFloat(cfg.Mass))
	if w := d.Focused(); w != nil {
		left = fmt.Sprintf("[%s]  %s", effectLabel(w), left)
	}
	if msg != "" {
		left += "  " + msg
	}
	return left
}
