package ops

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/mWalrus/conman/internal/ui"
)

// List prints the tracked files. Format "yaml" emits a machine-readable
// document; anything else renders a styled human listing.
func (c *Context) List(format string) error {
	s, err := c.readStore()
	if err != nil {
		return err
	}

	if format == "yaml" {
		type entry struct {
			SystemPath string `yaml:"system_path"`
			MirrorPath string `yaml:"mirror_path"`
			Encrypted  bool   `yaml:"encrypted"`
		}
		entries := make([]entry, 0, len(s.Files))
		for _, f := range s.Files {
			entries = append(entries, entry{
				SystemPath: c.Codec.Encode(f.SystemPath),
				MirrorPath: c.Codec.Encode(f.MirrorPath),
				Encrypted:  f.Encrypted,
			})
		}
		out, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to encode listing: %w", err)
		}
		c.printf("%s", out)
		return nil
	}

	if len(s.Files) == 0 {
		c.printf("no files tracked\n")
		return nil
	}

	c.printf("%s\n", ui.Underline.Render(fmt.Sprintf("%d tracked file(s)", len(s.Files))))
	for _, f := range s.Files {
		marker := " "
		if f.Encrypted {
			marker = ui.Warn.Render("*")
		}
		c.printf("%s %s\n", marker, ui.Accent.Render(c.Codec.Encode(f.SystemPath)))
	}
	return nil
}
