package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/sociogram/internal/config"
	"github.com/ha1tch/sociogram/internal/logging"
	"github.com/ha1tch/sociogram/pkg/render"
	"github.com/ha1tch/sociogram/pkg/sociogram"
)

// ErrTooManyNames is returned when more names are given than the form holds.
var ErrTooManyNames = errors.New("too many entity names")

// checkNameCount rejects name lists longer than the form's slot limit.
func checkNameCount(names []string) error {
	if len(names) > sociogram.MaxCount {
		return fmt.Errorf("%w: %d given, at most %d", ErrTooManyNames, len(names), sociogram.MaxCount)
	}
	return nil
}

type linkArg struct {
	from, to string
	style    sociogram.LinkStyle
}

type styleArg struct {
	name  string
	style sociogram.EntityStyle
}

// parseLink parses FROM:TO with an optional =COLOR[:THICKNESS] suffix.
func parseLink(s string) (linkArg, error) {
	pair, styleStr, hasStyle := strings.Cut(s, "=")
	from, to, ok := strings.Cut(pair, ":")
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if !ok || from == "" || to == "" {
		return linkArg{}, fmt.Errorf("link %q: want FROM:TO", s)
	}
	l := linkArg{from: from, to: to, style: sociogram.DefaultLinkStyle()}
	if !hasStyle {
		return l, nil
	}
	color, n, err := parseColorSize(styleStr, l.style.Color, l.style.Thickness)
	if err != nil {
		return linkArg{}, fmt.Errorf("link %q: %w", s, err)
	}
	l.style.Color = color
	l.style.Thickness = min(max(n, sociogram.MinThickness), sociogram.MaxThickness)
	return l, nil
}

// parseStyle parses NAME=COLOR[:SIZE]. Either part after = may be empty.
func parseStyle(s string) (styleArg, error) {
	i := strings.LastIndex(s, "=")
	if i < 0 {
		return styleArg{}, fmt.Errorf("style %q: want NAME=COLOR[:SIZE]", s)
	}
	name := strings.TrimSpace(s[:i])
	if name == "" {
		return styleArg{}, fmt.Errorf("style %q: missing entity name", s)
	}
	def := sociogram.DefaultEntityStyle()
	color, n, err := parseColorSize(s[i+1:], def.Color, def.Size)
	if err != nil {
		return styleArg{}, fmt.Errorf("style %q: %w", s, err)
	}
	return styleArg{
		name: name,
		style: sociogram.EntityStyle{
			Color: color,
			Size:  min(max(n, sociogram.MinEntitySize), sociogram.MaxEntitySize),
		},
	}, nil
}

// parseColorSize parses COLOR[:N], falling back to the given defaults for
// empty parts.
func parseColorSize(s, defColor string, defN int) (string, int, error) {
	colorStr, nStr, _ := strings.Cut(s, ":")
	color := defColor
	if strings.TrimSpace(colorStr) != "" {
		c, err := sociogram.ParseColor(colorStr)
		if err != nil {
			return "", 0, err
		}
		color = c
	}
	n := defN
	if strings.TrimSpace(nStr) != "" {
		v, err := strconv.Atoi(strings.TrimSpace(nStr))
		if err != nil {
			return "", 0, fmt.Errorf("size %q: not a number", nStr)
		}
		n = v
	}
	return color, n, nil
}

type renderOptions struct {
	names    []string
	links    []string
	styles   []string
	fontSize int
	radius   int
	output   string
	padding  int
}

func newRenderCmd(a *app) *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a sociogram to JPEG",
		Long: `Render lays the named entities out on a circle, adds the given links and
writes the diagram as a JPEG on a white background.

Names default to the [form] section of the config file.`,
		Example: `  socio render --name Ana --name Ben --name Cid --link Ana:Ben --link Ben:Ana
  socio render --name Ana --name Ben --style Ana=#112233:60 --link Ana:Ben=#ff0000:5 -o out.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("font-size") {
				opts.fontSize = cfg.Form.FontSize
			}
			if !cmd.Flags().Changed("radius") {
				opts.radius = cfg.Form.Radius
			}
			if !cmd.Flags().Changed("output") {
				opts.output = filepath.Join(cfg.Export.Dir, render.FileName)
			}

			session, err := buildSession(cmd, cfg, opts)
			if err != nil {
				return err
			}
			if err := writeJPEG(opts.output, session.Scene(), opts.padding); err != nil {
				return err
			}
			scene := session.Scene()
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %s (%d entities, %d links)\n",
				statusIcon(true), Accent.Sprint(opts.output), len(scene.Entities), len(scene.Links))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&opts.names, "name", "n", nil, "entity name (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.links, "link", "l", nil, "link FROM:TO[=COLOR[:THICKNESS]] (repeatable)")
	cmd.Flags().StringArrayVarP(&opts.styles, "style", "s", nil, "entity style NAME=COLOR[:SIZE] (repeatable)")
	cmd.Flags().IntVar(&opts.fontSize, "font-size", sociogram.DefaultFontSize, "label font size in pixels (8-40)")
	cmd.Flags().IntVar(&opts.radius, "radius", sociogram.DefaultRadius, "layout circle radius in pixels (50-500)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", render.FileName, "output file")
	cmd.Flags().IntVar(&opts.padding, "padding", render.DefaultJPEGOptions().Padding, "white margin in pixels")
	return cmd
}

// buildSession rebuilds a session from the flags and applies links.
func buildSession(cmd *cobra.Command, cfg *config.Config, opts renderOptions) (*sociogram.Session, error) {
	logger := logging.FromContext(cmd.Context())

	if err := checkNameCount(opts.names); err != nil {
		return nil, err
	}
	form := cfg.NewForm()
	if len(opts.names) > 0 {
		form.Names = append([]string(nil), opts.names...)
	}
	form.SetFontSize(opts.fontSize)
	form.SetRadius(opts.radius)

	session := sociogram.NewSession(form, logger)
	for _, s := range opts.styles {
		p, err := parseStyle(s)
		if err != nil {
			return nil, err
		}
		session.Styles.Set(p.name, p.style)
	}
	if err := session.Rebuild(); err != nil {
		return nil, err
	}

	scene := session.Scene()
	for _, s := range opts.links {
		p, err := parseLink(s)
		if err != nil {
			return nil, err
		}
		if _, added, err := scene.AddLink(p.from, p.to, p.style); err != nil {
			return nil, fmt.Errorf("link %q: %w", s, err)
		} else if !added {
			logger.Debug("duplicate link ignored", "from", p.from, "to", p.to)
		}
	}
	return session, nil
}

func writeJPEG(path string, scene *sociogram.Scene, padding int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	opts := render.DefaultJPEGOptions()
	opts.Padding = padding
	if err := render.EncodeJPEG(f, scene, opts); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}
