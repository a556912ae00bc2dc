package subscription

import (
	"fmt"
	"log/slog"

	"feedshelf/internal/domain/entity"
	"feedshelf/internal/opml"
)

// Dump converts the manager's folders into an OPML document. Sources of the
// default folder become top-level feeds; every other folder becomes a
// folder outline wrapping its feeds. The manager is never mutated.
//
// Dump fails with opml.ErrDuplicateOutline when two folders, or two sources
// in the same scope, share a name.
func Dump(m *entity.Manager, title string) (*opml.Document, error) {
	doc := opml.NewDocument(title)

	for _, folder := range m.Folders() {
		if m.IsDefault(folder) {
			for _, src := range folder.Sources {
				if err := doc.AddOutline(feedOutline(src)); err != nil {
					return nil, fmt.Errorf("dump default folder: %w", err)
				}
			}
			continue
		}

		wrapper := opml.NewFolderOutline(folder.Name)
		for _, src := range folder.Sources {
			if err := wrapper.AddChild(feedOutline(src)); err != nil {
				return nil, fmt.Errorf("dump folder %q: %w", folder.Name, err)
			}
		}
		if err := doc.AddOutline(wrapper); err != nil {
			return nil, fmt.Errorf("dump folder %q: %w", folder.Name, err)
		}
	}

	return doc, nil
}

// feedOutline names unnamed sources after their URL so the written outline
// always carries a name and can be read back.
func feedOutline(src *entity.Source) *opml.Outline {
	return opml.NewFeedOutline(src.DisplayName(), src.URL)
}

// Load replaces the manager's state with the folders described by doc.
//
// Top-level feed outlines go to the default folder. Any other top-level
// outline is a folder whose immediate children are its sources. A folder
// nested inside a folder is skipped with a warning, along with its feeds. A later folder replaces an earlier one with
// the same name; a folder named like the default folder feeds into it.
//
// The result is built on a fresh manager and swapped in only when every
// outline converted, so m is left untouched on error.
func Load(m *entity.Manager, doc *opml.Document) error {
	next := entity.NewManagerWithDefault(m.DefaultFolderName())

	for _, node := range doc.Outlines {
		if node.IsFeed() {
			src, err := sourceFromOutline(node)
			if err != nil {
				return fmt.Errorf("load feed: %w", err)
			}
			next.DefaultFolder().AddSource(src)
			continue
		}

		name, err := node.DisplayName()
		if err != nil {
			return fmt.Errorf("load folder: %w", err)
		}

		folder := entity.NewFolder(name)
		if name == next.DefaultFolderName() {
			folder = next.DefaultFolder()
		}
		for _, child := range node.Children {
			if child.Kind == opml.KindFolder {
				slog.Warn("skipping nested folder",
					slog.String("folder", name),
					slog.String("nested", child.Text),
					slog.Int("outlines", len(child.Children)))
				continue
			}
			src, err := sourceFromOutline(child)
			if err != nil {
				return fmt.Errorf("load folder %q: %w", name, err)
			}
			folder.AddSource(src)
		}
		if !next.IsDefault(folder) {
			if err := next.AddFolder(folder); err != nil {
				return fmt.Errorf("load folder %q: %w", name, err)
			}
		}
	}

	m.Replace(next)
	return nil
}

func sourceFromOutline(node *opml.Outline) (*entity.Source, error) {
	name, err := node.DisplayName()
	if err != nil {
		return nil, err
	}
	url, err := node.Locator()
	if err != nil {
		return nil, err
	}
	return entity.NewSource(url, name), nil
}
