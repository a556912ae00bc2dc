package entity

// Folder is a named, ordered group of sources. A folder exclusively owns its
// sources; duplicates by URL or name are permitted.
type Folder struct {
	Name    string
	Sources []*Source
}

// NewFolder returns an empty folder.
func NewFolder(name string) *Folder {
	return &Folder{Name: name}
}

// AddSource appends s and stamps its FolderName.
func (f *Folder) AddSource(s *Source) {
	s.FolderName = f.Name
	f.Sources = append(f.Sources, s)
}

// AddSourceURL builds an unnamed source for url and appends it.
func (f *Folder) AddSourceURL(url string) *Source {
	s := NewSource(url, "")
	f.AddSource(s)
	return s
}

// FindSource returns the first source with the given name.
func (f *Folder) FindSource(name string) (*Source, bool) {
	if i := f.indexOf(name); i >= 0 {
		return f.Sources[i], true
	}
	return nil, false
}

// RemoveByName removes the first source with the given name.
func (f *Folder) RemoveByName(name string) error {
	i := f.indexOf(name)
	if i < 0 {
		return &NotFoundError{Entity: "source", Key: name}
	}
	f.removeAt(i)
	return nil
}

// RemoveByIndex removes the source at position i.
func (f *Folder) RemoveByIndex(i int) error {
	if i < 0 || i >= len(f.Sources) {
		return &IndexOutOfRangeError{Index: i, Len: len(f.Sources)}
	}
	f.removeAt(i)
	return nil
}

// RemoveSource removes the first source whose name matches s.Name.
// Pointer identity is not required.
func (f *Folder) RemoveSource(s *Source) error {
	return f.RemoveByName(s.Name)
}

// Len returns the number of sources in the folder.
func (f *Folder) Len() int { return len(f.Sources) }

func (f *Folder) indexOf(name string) int {
	for i, s := range f.Sources {
		if s.Name == name {
			return i
		}
	}
	return -1
}

func (f *Folder) removeAt(i int) {
	f.Sources = append(f.Sources[:i], f.Sources[i+1:]...)
}
