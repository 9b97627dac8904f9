package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the console's key bindings.
type keyMap struct {
	Views     []key.Binding
	NextView  key.Binding
	PrevView  key.Binding
	Sample    key.Binding
	Generate  key.Binding
	Deliver   key.Binding
	Analyze   key.Binding
	Scan      key.Binding
	Edit      key.Binding
	Recipient key.Binding
	Copy      key.Binding
	Up        key.Binding
	Down      key.Binding
	Apply     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Views: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "review")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "analytics")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "trends")),
		},
		NextView:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		Sample:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sample mode")),
		Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		Deliver:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "deliver")),
		Analyze:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "analyze")),
		Scan:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "scan trends")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Recipient: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recipient")),
		Copy:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Apply:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use trend")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextView, k.Generate, k.Deliver, k.Analyze, k.Scan, k.Sample, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.Views,
		{k.NextView, k.PrevView, k.Up, k.Down},
		{k.Generate, k.Deliver, k.Analyze, k.Scan},
		{k.Sample, k.Edit, k.Recipient, k.Copy, k.Apply},
		{k.Help, k.Quit},
	}
}
