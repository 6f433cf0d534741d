package pandoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// A configuration for running the pandoc executable.
type Conf struct {
	Pandoc string   // Path to pandoc executable
	Dir    string   // Working directory
	Format string   // Format to load or store
	Ext    []string // List of format extensions, each must start with '+' or '-'
	Opts   []string // Additional options
}

// Makes a new Conf for format f.
func Format(f string) Conf {
	return Conf{Format: f}
}

// ParseFormat builds a Conf from a pandoc format spec with extension
// toggles, e.g. "markdown+smart-raw_html".
func ParseFormat(spec string) Conf {
	i := strings.IndexAny(spec, "+-")
	if i < 0 {
		return Format(spec)
	}
	c := Format(spec[:i])
	for i < len(spec) {
		end := len(spec)
		if j := strings.IndexAny(spec[i+1:], "+-"); j >= 0 {
			end = i + 1 + j
		}
		if spec[i] == '+' {
			c = c.WithExt(spec[i+1 : end])
		} else {
			c = c.WithoutExt(spec[i+1 : end])
		}
		i = end
	}
	return c
}

// Returns a Conf with a specified path to pandoc executable.
func (c Conf) WithPandoc(path string) Conf {
	c.Pandoc = path
	return c
}

func (c Conf) WithDir(dir string) Conf {
	c.Dir = dir
	return c
}

func (c Conf) WithExt(ext string) Conf {
	for i := range c.Ext {
		if c.Ext[i] == "-"+ext {
			c.Ext[i] = "+" + ext
			return c
		} else if c.Ext[i] == "+"+ext {
			return c
		}
	}
	c.Ext = append(c.Ext, "+"+ext)
	return c
}

func (c Conf) WithoutExt(ext string) Conf {
	for i := range c.Ext {
		if c.Ext[i] == "-"+ext {
			return c
		} else if c.Ext[i] == "+"+ext {
			c.Ext[i] = "-" + ext
			return c
		}
	}
	c.Ext = append(c.Ext, "-"+ext)
	return c
}

// Add an option to the configuration. Accepts:
//   - single-letter option, e.g. "s"
//   - single-letter option with value, e.g. "o", "out.tex"
//   - long option, e.g. "standalone"
//   - long option with value, e.g. "template", "cv"
func (c Conf) WithOpt(opt string, val ...string) Conf {
	if opt == "" {
		return c
	}
	if len(opt) == 1 {
		c.Opts = append(c.Opts, "-"+opt)
		if len(val) > 0 {
			c.Opts = append(c.Opts, val[0])
		}
	} else if len(val) == 0 {
		c.Opts = append(c.Opts, "--"+opt)
	} else {
		c.Opts = append(c.Opts, "--"+opt+"="+strings.Join(val, ","))
	}
	return c
}

func (c *Conf) pandocExecutable() (string, error) {
	if c.Pandoc != "" {
		return c.Pandoc, nil
	}
	if this, err := os.Executable(); err == nil {
		pandoc, err := exec.LookPath(filepath.Join(filepath.Dir(this), "pandoc"))
		if err == nil || errors.Is(err, exec.ErrDot) {
			return pandoc, nil
		}
	}
	if pandoc, err := exec.LookPath("pandoc"); err == nil {
		return pandoc, nil
	} else {
		return "", fmt.Errorf("pandoc executable is not found: %w", err)
	}
}

func (c *Conf) loadCmd() (*exec.Cmd, error) {
	pandoc, err := c.pandocExecutable()
	if err != nil {
		return nil, err
	}
	return &exec.Cmd{
		Path: pandoc,
		Dir:  c.Dir,
		Args: append([]string{
			"pandoc",
			"-tjson",
			strings.Join(append([]string{"-f", c.Format}, c.Ext...), ""),
		}, c.Opts...),
	}, nil
}

func (c *Conf) storeCmd() (*exec.Cmd, error) {
	pandoc, err := c.pandocExecutable()
	if err != nil {
		return nil, err
	}
	return &exec.Cmd{
		Path: pandoc,
		Dir:  c.Dir,
		Args: append([]string{
			"pandoc",
			"-fjson",
			strings.Join(append([]string{"-t", c.Format}, c.Ext...), ""),
		}, c.Opts...),
	}, nil
}

// Load parses input in conf.Format into a document by piping it through
// pandoc.
func Load(r io.Reader, conf Conf) (*Doc, error) {
	cmd, err := conf.loadCmd()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	cmd.Stdin = r
	cmd.Stdout = &out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pandoc: load %s: %w", conf.Format, err)
	}
	return ReadFrom(&out)
}

// Store renders the document to conf.Format by piping it through pandoc.
func (d *Doc) Store(w io.Writer, conf Conf) error {
	cmd, err := conf.storeCmd()
	if err != nil {
		return err
	}
	var in bytes.Buffer
	if err := d.Write(&in); err != nil {
		return err
	}
	cmd.Stdin = &in
	cmd.Stdout = w
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pandoc: store %s: %w", conf.Format, err)
	}
	return nil
}

// ConvertBlocks wraps blocks in a synthetic document and renders them to
// conf.Format text.
func ConvertBlocks(blocks []Block, conf Conf) (string, error) {
	doc := &Doc{Version: apiVersion, Blocks: blocks}
	var out bytes.Buffer
	if err := doc.Store(&out, conf); err != nil {
		return "", err
	}
	return out.String(), nil
}
