package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap avoids the keys the textarea already binds (ctrl+n, ctrl+p, ctrl+w, ...)
type keyMap struct {
	Quit       key.Binding
	NextBox    key.Binding
	PrevBox    key.Binding
	AddBox     key.Binding
	RemoveBox  key.Binding
	Policy     key.Binding
	Browse     key.Binding
	Edit       key.Binding
	NextResult key.Binding
	PrevResult key.Binding
	PickPair   key.Binding
	AllPairs   key.Binding
	Cancel     key.Binding
	Confirm    key.Binding
	BrowseQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		NextBox:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next box")),
		PrevBox:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev box")),
		AddBox:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "add box")),
		RemoveBox:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove box")),
		Policy:     key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "pairing")),
		Browse:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "browse results")),
		Edit:       key.NewBinding(key.WithKeys("i", "esc", "enter"), key.WithHelp("i", "edit")),
		NextResult: key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n", "next result")),
		PrevResult: key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p", "prev result")),
		PickPair:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "custom pair")),
		AllPairs:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all pairs")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		BrowseQuit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) editHelp() []key.Binding {
	return []key.Binding{k.NextBox, k.AddBox, k.RemoveBox, k.Policy, k.Browse, k.Quit}
}

func (k keyMap) browseHelp() []key.Binding {
	return []key.Binding{k.NextResult, k.PrevResult, k.PickPair, k.AllPairs, k.Policy, k.Edit, k.BrowseQuit}
}

func (k keyMap) pickHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "box number")),
		k.Confirm,
		k.Cancel,
	}
}
