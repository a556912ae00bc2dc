package subscription

import (
	"fmt"

	"feedshelf/internal/domain/entity"
)

// AddSourceInput represents the input parameters for adding a source.
// An empty Folder targets the default folder; a folder that does not exist
// yet is created.
type AddSourceInput struct {
	Folder string
	URL    string
	Name   string
}

// AddSource validates in and appends a new source to the target folder.
// The source's outline text must be free in the folder it is written to, or
// the file could not be saved.
func AddSource(m *entity.Manager, in AddSourceInput) (*entity.Source, error) {
	if err := entity.ValidateURL(in.URL); err != nil {
		return nil, fmt.Errorf("validate feed URL: %w", err)
	}

	src := entity.NewSource(in.URL, in.Name)
	if f, ok := targetFolder(m, in.Folder); ok && nameTaken(m, f, src.DisplayName(), nil) {
		return nil, &entity.ValidationError{Field: "name", Message: fmt.Sprintf("%q already exists in %q", src.DisplayName(), f.Name)}
	}

	folder, err := folderOrCreate(m, in.Folder)
	if err != nil {
		return nil, err
	}
	folder.AddSource(src)
	return src, nil
}

// RemoveSource removes the first source called name from the named folder.
// An empty folder name targets the default folder.
func RemoveSource(m *entity.Manager, folderName, name string) error {
	folder, err := existingFolder(m, folderName)
	if err != nil {
		return err
	}
	if err := folder.RemoveByName(name); err != nil {
		return fmt.Errorf("remove source from %q: %w", folder.Name, err)
	}
	return nil
}

// RemoveSourceAt removes the source at index from the named folder.
func RemoveSourceAt(m *entity.Manager, folderName string, index int) error {
	folder, err := existingFolder(m, folderName)
	if err != nil {
		return err
	}
	if err := folder.RemoveByIndex(index); err != nil {
		return fmt.Errorf("remove source from %q: %w", folder.Name, err)
	}
	return nil
}

// CreateFolder adds an empty folder. Unlike Manager.AddFolder it refuses to
// replace an existing folder, so user commands never drop sources silently.
func CreateFolder(m *entity.Manager, name string) (*entity.Folder, error) {
	if err := entity.ValidateFolderName(name, m.DefaultFolderName()); err != nil {
		return nil, err
	}
	if _, ok := m.GetFolder(name); ok {
		return nil, &entity.ValidationError{Field: "folder", Message: fmt.Sprintf("%q already exists", name)}
	}
	if nameTaken(m, m.DefaultFolder(), name, nil) {
		return nil, &entity.ValidationError{Field: "folder", Message: fmt.Sprintf("%q is already a top-level feed", name)}
	}
	return m.AddFolderByName(name)
}

func folderOrCreate(m *entity.Manager, name string) (*entity.Folder, error) {
	if f, ok := targetFolder(m, name); ok {
		return f, nil
	}
	return CreateFolder(m, name)
}

// targetFolder returns the folder name refers to, if it exists. An empty name
// is the default folder.
func targetFolder(m *entity.Manager, name string) (*entity.Folder, bool) {
	if name == "" || name == m.DefaultFolderName() {
		return m.DefaultFolder(), true
	}
	return m.GetFolder(name)
}

// nameTaken reports whether text is already an outline text in the scope f
// is written to. Sources of the default folder share the top level with
// every other folder. skip is left out of the comparison.
func nameTaken(m *entity.Manager, f *entity.Folder, text string, skip *entity.Source) bool {
	for _, src := range f.Sources {
		if src != skip && src.DisplayName() == text {
			return true
		}
	}
	if !m.IsDefault(f) {
		return false
	}
	other, ok := m.GetFolder(text)
	return ok && !m.IsDefault(other)
}

func existingFolder(m *entity.Manager, name string) (*entity.Folder, error) {
	if name == "" {
		return m.DefaultFolder(), nil
	}
	f, ok := m.GetFolder(name)
	if !ok {
		return nil, &entity.NotFoundError{Entity: "folder", Key: name}
	}
	return f, nil
}
