package view

import (
	"math"
	"path/filepath"

	"github.com/soocke/motion-guard-go/config"
	"github.com/soocke/motion-guard-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsHandlers are the callbacks of the settings tab.
type SettingsHandlers struct {
	OnChooseSound func()
	OnTestSound   func()
	OnVolume      func(v float64)
	OnApply       func()
}

// SettingsPanel is the "Settings" tab holding the alert configuration form.
// Edits stay in the widgets until Apply.
type SettingsPanel struct {
	frame     *TFrameWidget
	soundOn   *TCheckbuttonWidget
	soundLbl  *TLabelWidget
	soundFile string
	volume    *TScaleWidget
	smtpOn    *TCheckbuttonWidget
	entries   map[string]*TEntryWidget // keyed by INI key
}

var smtpRows = []struct{ key, label string }{
	{"server", "SMTP Server"},
	{"port", "Port"},
	{"email", "Email"},
	{"password", "Password"},
	{"recipient", "Recipient Email"},
	{"subject", "Email Subject"},
	{"body", "Email Body"},
}

// audioFileTypes lists the decoders available for the alert sound.
var audioFileTypes = []FileType{
	{TypeName: "Audio Files", Extensions: []string{".wav", ".mp3", ".flac", ".ogg"}},
	{TypeName: "All Files", Extensions: []string{"*"}},
}

// NewSettingsPanel builds the tab inside a fresh frame.
func NewSettingsPanel(h SettingsHandlers) *SettingsPanel {
	p := &SettingsPanel{frame: TFrame(Padding("6p")), entries: make(map[string]*TEntryWidget)}
	f := p.frame

	sound := f.TLabelframe(Txt("Sound Alert"), Padding("6p"))
	Grid(sound, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("1m"))
	p.soundOn = sound.TCheckbutton(Txt("Enable"), Variable(0))
	Grid(p.soundOn, Row(0), Column(0), Sticky("w"))
	Grid(sound.TButton(Txt("Choose Sound File"), Command(h.OnChooseSound)), Row(1), Column(0), Sticky("w"), Pady("0.3m"))
	Grid(sound.TButton(Txt("Test Sound"), Command(h.OnTestSound)), Row(1), Column(1), Sticky("w"), Padx("0.4m"), Pady("0.3m"))
	p.soundLbl = sound.TLabel(Txt("No file selected"), Style(theme.StyleMutedLabel))
	Grid(p.soundLbl, Row(2), Column(0), Columnspan(2), Sticky("w"))
	Grid(sound.TLabel(Txt("Volume")), Row(3), Column(0), Sticky("w"), Pady("0.3m 0"))
	p.volume = sound.TScale(From(0), To(1), Orient("horizontal"), Variable(1.0), Command(func() {
		if h.OnVolume != nil {
			h.OnVolume(p.Volume())
		}
	}))
	Grid(p.volume, Row(4), Column(0), Columnspan(2), Sticky("we"))
	GridColumnConfigure(sound.Window, 1, Weight(1))

	smtp := f.TLabelframe(Txt("SMTP"), Padding("6p"))
	Grid(smtp, Row(1), Column(0), Sticky("we"), Padx("0.4m"), Pady("1m"))
	p.smtpOn = smtp.TCheckbutton(Txt("Enable"), Variable(0))
	Grid(p.smtpOn, Row(0), Column(0), Sticky("w"))
	row := 1
	for _, r := range smtpRows {
		Grid(smtp.TLabel(Txt(r.label), Anchor("w")), Row(row), Column(0), Sticky("w"), Pady("0.15m"))
		opts := []Opt{Textvariable(""), Width(36)}
		if r.key == "password" {
			opts = append(opts, Show("*"))
		}
		e := smtp.TEntry(opts...)
		Grid(e, Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		p.entries[r.key] = e
		row++
	}
	GridColumnConfigure(smtp.Window, 1, Weight(1))

	apply := f.TButton(Txt("Apply Config"), Style(theme.StylePrimaryButton), Command(h.OnApply))
	Grid(apply, Row(2), Column(0), Sticky("we"), Padx("0.4m"), Pady("1m"))
	GridColumnConfigure(f.Window, 0, Weight(1))
	return p
}

// FormValues returns the edited alert settings.
func (p *SettingsPanel) FormValues() (config.SoundAlert, config.SMTP) {
	sound := config.SoundAlert{
		Enabled:   checked(p.soundOn),
		SoundFile: p.soundFile,
		Volume:    p.Volume(),
	}
	smtp := config.SMTP{
		Enabled:   checked(p.smtpOn),
		Server:    entryText(p.entries["server"]),
		Port:      entryText(p.entries["port"]),
		Email:     entryText(p.entries["email"]),
		Password:  p.entries["password"].Textvariable(),
		Recipient: entryText(p.entries["recipient"]),
		Subject:   entryText(p.entries["subject"]),
		Body:      entryText(p.entries["body"]),
	}
	return sound, smtp
}

// SetFormValues loads stored settings into the widgets.
func (p *SettingsPanel) SetFormValues(sound config.SoundAlert, smtp config.SMTP) {
	p.soundOn.Configure(Variable(tclBool(sound.Enabled)))
	p.SetSoundFile(sound.SoundFile)
	p.volume.Configure(Variable(sound.Volume))
	p.smtpOn.Configure(Variable(tclBool(smtp.Enabled)))
	values := map[string]string{
		"server":    smtp.Server,
		"port":      smtp.Port,
		"email":     smtp.Email,
		"password":  smtp.Password,
		"recipient": smtp.Recipient,
		"subject":   smtp.Subject,
		"body":      smtp.Body,
	}
	for key, e := range p.entries {
		e.Configure(Textvariable(values[key]))
	}
}

// SoundFile returns the file chosen in the form (not necessarily applied).
func (p *SettingsPanel) SoundFile() string { return p.soundFile }

// SetSoundFile records path and shows its base name.
func (p *SettingsPanel) SetSoundFile(path string) {
	p.soundFile = path
	text := "No file selected"
	if path != "" {
		text = filepath.Base(path)
	}
	p.soundLbl.Configure(Txt(text))
}

// Volume returns the slider position rounded to one decimal.
func (p *SettingsPanel) Volume() float64 {
	return math.Round(scaleFloat(p.volume)*10) / 10
}

// ChooseSoundFile opens the native file dialog filtered to audio files.
func (p *SettingsPanel) ChooseSoundFile() (string, bool) {
	files := GetOpenFile(Title("Choose Sound File"), Filetypes(audioFileTypes))
	if len(files) == 0 || files[0] == "" {
		return "", false
	}
	return files[0], true
}
