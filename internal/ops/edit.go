package ops

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/mWalrus/conman/internal/mirror"
	"github.com/mWalrus/conman/internal/store"
)

// Edit opens a tracked file in $EDITOR and, unless skipUpdate is set,
// re-collects it into the mirror if the edit changed it. With no path given
// the file is picked interactively.
func (c *Context) Edit(path string, skipUpdate bool) error {
	s, err := c.readStore()
	if err != nil {
		return err
	}
	if len(s.Files) == 0 {
		return ErrNothingTracked
	}

	file, err := c.pickFile(s, path)
	if err != nil {
		return err
	}

	if err := openInEditor(file.SystemPath); err != nil {
		return err
	}

	if skipUpdate {
		c.Log.Debug("mirror update skipped after edit", "path", file.SystemPath)
		return nil
	}

	changed, err := mirror.SourceChangedSinceMirror(file.SystemPath, file.MirrorPath)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := c.collectOne(*file); err != nil {
		return err
	}
	c.printf("collected %s\n", file.SystemPath)
	return nil
}

// pickFile resolves path to a tracked entry, or prompts with a fuzzy
// selection over all tracked system paths when path is empty.
func (c *Context) pickFile(s *store.Store, path string) (*store.TrackedFile, error) {
	if path != "" {
		systemPath, err := canonicalize(path)
		if err != nil {
			return nil, err
		}
		file := s.FindBySystemPath(systemPath)
		if file == nil {
			return nil, fmt.Errorf("%s is not tracked", systemPath)
		}
		return file, nil
	}

	items := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		items = append(items, c.Codec.Encode(f.SystemPath))
	}
	idx, err := c.Oracle.FuzzySelect("Which file do you want to edit?", items)
	if err != nil {
		return nil, err
	}
	return &s.Files[idx], nil
}

func openInEditor(path string) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", editor, err)
	}
	return nil
}
