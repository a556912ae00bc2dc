package entity

// DefaultFolderName is the reserved name of the folder holding sources that
// belong to no explicit folder. It never appears as a folder in OPML output.
const DefaultFolderName = "default"

// Manager holds a user's folders keyed by name. Folder iteration follows
// insertion order with the default folder always first.
//
// A Manager is not safe for concurrent mutation; callers serialize access.
type Manager struct {
	defaultName string
	folders     map[string]*Folder
	order       []string
}

// NewManager returns a manager containing only the default folder.
func NewManager() *Manager {
	return NewManagerWithDefault(DefaultFolderName)
}

// NewManagerWithDefault returns a manager whose reserved default folder is
// named defaultName. An empty name falls back to DefaultFolderName.
func NewManagerWithDefault(defaultName string) *Manager {
	if defaultName == "" {
		defaultName = DefaultFolderName
	}
	m := &Manager{defaultName: defaultName}
	m.Reset()
	return m
}

// Reset discards every folder and recreates an empty default folder.
func (m *Manager) Reset() {
	m.folders = map[string]*Folder{m.defaultName: NewFolder(m.defaultName)}
	m.order = []string{m.defaultName}
}

// Replace swaps in the folders of other. other must not be used afterwards.
func (m *Manager) Replace(other *Manager) {
	m.defaultName = other.defaultName
	m.folders = other.folders
	m.order = other.order
}

// DefaultFolderName returns the reserved name of this manager's default folder.
func (m *Manager) DefaultFolderName() string { return m.defaultName }

// DefaultFolder returns the folder for ungrouped sources. It always exists.
func (m *Manager) DefaultFolder() *Folder { return m.folders[m.defaultName] }

// IsDefault reports whether f is this manager's default folder.
func (m *Manager) IsDefault(f *Folder) bool { return f != nil && f.Name == m.defaultName }

// AddFolder stores f under its name, replacing a same-named folder in place.
func (m *Manager) AddFolder(f *Folder) error {
	if f.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if f.Name == m.defaultName {
		return ErrReservedFolder
	}
	if _, ok := m.folders[f.Name]; !ok {
		m.order = append(m.order, f.Name)
	}
	m.folders[f.Name] = f
	return nil
}

// AddFolderByName creates an empty folder called name and stores it.
func (m *Manager) AddFolderByName(name string) (*Folder, error) {
	f := NewFolder(name)
	if err := m.AddFolder(f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetFolder looks up a folder by name. The boolean is false when absent.
func (m *Manager) GetFolder(name string) (*Folder, bool) {
	f, ok := m.folders[name]
	return f, ok
}

// DeleteFolder removes the named folder and all of its sources.
func (m *Manager) DeleteFolder(name string) error {
	if name == m.defaultName {
		return ErrReservedFolder
	}
	if _, ok := m.folders[name]; !ok {
		return &NotFoundError{Entity: "folder", Key: name}
	}
	delete(m.folders, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteFolderRef removes the folder stored under f's name. It fails the same
// way DeleteFolder does when no such folder exists.
func (m *Manager) DeleteFolderRef(f *Folder) error {
	return m.DeleteFolder(f.Name)
}

// Folders returns every folder, default first, then in insertion order.
func (m *Manager) Folders() []*Folder {
	out := make([]*Folder, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.folders[name])
	}
	return out
}

// SourceCount returns the number of sources across all folders.
func (m *Manager) SourceCount() int {
	n := 0
	for _, f := range m.folders {
		n += f.Len()
	}
	return n
}
