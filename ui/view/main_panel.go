package view

import (
	"fmt"

	"github.com/soocke/motion-guard-go/config"
	"github.com/soocke/motion-guard-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	appTitle    = "Motion Detection App"
	appSubtitle = "Detect movement in a selected area"
	creditText  = "Made by Clément GHANEME"
)

// MainHandlers are the callbacks of the main tab.
type MainHandlers struct {
	OnSelect      func()
	OnStart       func()
	OnStop        func()
	OnSensitivity func(v int)
	OnCooldown    func(seconds int)
	OnCredit      func()
}

// MainPanel is the "Main" tab: region selection, sliders, start/stop and
// the motion indicator.
type MainPanel struct {
	frame       *TFrameWidget
	selectBtn   *TButtonWidget
	startBtn    *TButtonWidget
	stopBtn     *TButtonWidget
	sensitivity *TScaleWidget
	cooldown    *TScaleWidget
	sensLbl     *TLabelWidget
	coolLbl     *TLabelWidget
	stateLbl    *TLabelWidget
	indicator   *LabelWidget

	Preview RegionPreview
	Session SessionStats
}

// NewMainPanel builds the tab inside a fresh frame.
func NewMainPanel(det config.Detection, h MainHandlers) *MainPanel {
	p := &MainPanel{frame: TFrame(Padding("6p"))}
	f := p.frame
	row := 0

	Grid(f.TLabel(Txt(appTitle), Style(theme.StyleTitleLabel)), Row(row), Column(0), Columnspan(3), Pady("1m"))
	row++
	Grid(f.TLabel(Txt(appSubtitle), Style(theme.StyleMutedLabel)), Row(row), Column(0), Columnspan(3), Pady("0.5m"))
	row++

	p.selectBtn = f.TButton(Txt("Select Screen Area"), Style(theme.StylePrimaryButton), Command(h.OnSelect))
	Grid(p.selectBtn, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("1m"))
	row++

	p.sensLbl = f.TLabel()
	Grid(p.sensLbl, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"))
	row++
	p.sensitivity = f.TScale(From(0), To(100), Orient("horizontal"), Variable(det.Sensitivity), Command(func() {
		v := scaleInt(p.sensitivity)
		p.setSensitivityLabel(v)
		if h.OnSensitivity != nil {
			h.OnSensitivity(v)
		}
	}))
	Grid(p.sensitivity, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"))
	row++

	p.coolLbl = f.TLabel()
	Grid(p.coolLbl, Row(row), Column(0), Columnspan(3), Sticky("w"), Padx("0.4m"), Pady("0.6m 0"))
	row++
	p.cooldown = f.TScale(From(1), To(60), Orient("horizontal"), Variable(det.CooldownSeconds), Command(func() {
		v := scaleInt(p.cooldown)
		p.setCooldownLabel(v)
		if h.OnCooldown != nil {
			h.OnCooldown(v)
		}
	}))
	Grid(p.cooldown, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"))
	row++
	p.setSensitivityLabel(det.Sensitivity)
	p.setCooldownLabel(det.CooldownSeconds)

	p.startBtn = f.TButton(Txt("Start Detection"), Style(theme.StylePrimaryButton), Command(h.OnStart))
	Grid(p.startBtn, Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("1m"))
	p.stopBtn = f.TButton(Txt("Stop Detection"), Style(theme.StyleDangerButton), Command(h.OnStop), State("disabled"))
	Grid(p.stopBtn, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("1m"))
	p.indicator = f.Label(Width(2), Background(theme.IndicatorColor(false)), Relief("ridge"), Borderwidth(1))
	Grid(p.indicator, Row(row), Column(2), Padx("0.4m"), Pady("1m"))
	row++

	p.stateLbl = f.TLabel(Txt("Status: Idle"), Style(theme.StyleStateLabel))
	Grid(p.stateLbl, Row(row), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	row++

	p.Preview = NewRegionPreview(f, row)
	row++
	p.Session = NewSessionStats(f, row, 0)
	row++

	credit := f.TLabel(Txt(creditText), Foreground(theme.ColorLink), Cursor("hand2"))
	Grid(credit, Row(row), Column(0), Columnspan(3), Pady("2m"))
	if h.OnCredit != nil {
		Bind(credit, "<Button-1>", Command(h.OnCredit))
	}

	GridColumnConfigure(f.Window, 0, Weight(1))
	GridColumnConfigure(f.Window, 1, Weight(1))
	return p
}

func (p *MainPanel) setSensitivityLabel(v int) {
	p.sensLbl.Configure(Txt(fmt.Sprintf("Sensitivity (%%): %d", v)))
}

func (p *MainPanel) setCooldownLabel(v int) {
	p.coolLbl.Configure(Txt(fmt.Sprintf("Cooldown Time for Red Dot (seconds): %d", v)))
}

// SetRunning swaps button enablement for the detection state.
func (p *MainPanel) SetRunning(running bool) {
	if p == nil {
		return
	}
	on, off := "normal", "disabled"
	if running {
		on, off = off, on
	}
	p.startBtn.Configure(State(on))
	p.selectBtn.Configure(State(on))
	p.stopBtn.Configure(State(off))
}

// SetIndicator paints the motion marker.
func (p *MainPanel) SetIndicator(active bool) {
	if p == nil || p.indicator == nil {
		return
	}
	p.indicator.Configure(Background(theme.IndicatorColor(active)))
}

// SetStateLabel updates the status label text.
func (p *MainPanel) SetStateLabel(text string) {
	if p != nil && p.stateLbl != nil {
		p.stateLbl.Configure(Txt(text))
	}
}
