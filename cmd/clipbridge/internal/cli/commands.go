package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/x/ansi"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"clipbridge/internal/clipboard"
	"clipbridge/internal/config"
	"clipbridge/internal/dib"
	"clipbridge/internal/logger"
)

// addSetCommand adds the set command
func (app *App) addSetCommand(rootCmd *cobra.Command) {
	var asText bool

	setCmd := &cobra.Command{
		Use:   "set [items...]",
		Short: "Put files, an image or text on the clipboard",
		Long: `Put items on the clipboard and print what was read back.

With --text the items are joined into one text. A single image file is
set as a bitmap. Anything else is set as a file list, with forward
slashes turned into backslashes. No items leaves the clipboard untouched.`,
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := app.Clipboard()
			if err != nil {
				return err
			}

			items := args
			if app.Config.StripANSI {
				items = make([]string, len(args))
				for i, a := range args {
					items[i] = ansi.Strip(a)
				}
			}
			if len(items) == 1 && !asText {
				if mime, err := dib.Sniff(items[0]); err == nil && mime != "" {
					logger.Debug("Sniffed item", "path", items[0], "mime", mime)
				}
			}

			payload, err := b.Set(items, asText, app.Config.Joiner)
			if err != nil {
				return err
			}
			return app.Printer.Payload(payload)
		},
	}

	setCmd.Flags().BoolVar(&asText, "text", false, "Set the items as one text instead of files")
	setCmd.Flags().String(config.KeyJoiner, `\n`, "Separator placed between items with --text (escapes allowed)")
	setCmd.Flags().Bool(config.KeyStripANSI, false, "Remove ANSI escape sequences from items")

	rootCmd.AddCommand(setCmd)
}

// addGetCommands adds the get command and its format subcommands
func (app *App) addGetCommands(rootCmd *cobra.Command) {
	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Read the clipboard in one format",
	}

	var render bool
	textCmd := &cobra.Command{
		Use:   "text",
		Short: "Print the clipboard text",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := app.Clipboard()
			if err != nil {
				return err
			}
			text, err := b.Text()
			if err != nil {
				return err
			}

			switch {
			case app.Printer.Structured():
				return app.Printer.Record(map[string]string{"text": text})
			case render:
				app.Printer.Markdown(text)
			default:
				app.Printer.Println(text)
			}
			return nil
		},
	}
	textCmd.Flags().BoolVar(&render, "render", false, "Render the text as markdown")

	filesCmd := &cobra.Command{
		Use:   "files",
		Short: "Print the clipboard file list, one path per line",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := app.Clipboard()
			if err != nil {
				return err
			}
			paths, err := b.FilePaths()
			if err != nil {
				return err
			}

			if app.Printer.Structured() {
				return app.Printer.Record(map[string][]string{"paths": paths})
			}
			for _, p := range paths {
				app.Printer.Path(p)
			}
			return nil
		},
	}

	var out string
	imageCmd := &cobra.Command{
		Use:   "image",
		Short: "Describe the clipboard bitmap or save it to a file",
		Long: `Describe the clipboard bitmap. With --out the bitmap is decoded and
saved; the file extension picks the format (.png, .jpg, .gif, .bmp, .tif).`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := app.Clipboard()
			if err != nil {
				return err
			}
			data, err := b.ImageBytes()
			if err != nil {
				return err
			}
			var width, height int
			if out != "" {
				img, err := dib.Decode(data)
				if err != nil {
					return err
				}
				if err := imaging.Save(img, out); err != nil {
					return fmt.Errorf("save image: %w", err)
				}
				width, height = img.Bounds().Dx(), img.Bounds().Dy()
			} else if width, height, err = dib.Dimensions(data); err != nil {
				logger.Debug("Unreadable bitmap header", "error", err)
			}

			if app.Printer.Structured() {
				return app.Printer.Record(imageInfo{Size: len(data), Width: width, Height: height, Saved: out})
			}
			if err := app.Printer.Field("size", humanize.Bytes(uint64(len(data)))); err != nil {
				return err
			}
			if width > 0 {
				if err := app.Printer.Field("dimensions", fmt.Sprintf("%dx%d", width, height)); err != nil {
					return err
				}
			}
			if out != "" {
				app.Printer.Success("saved " + out)
			}
			return app.Printer.Err()
		},
	}
	imageCmd.Flags().StringVar(&out, "out", "", "Save the decoded image to this file")

	getCmd.AddCommand(textCmd, filesCmd, imageCmd)
	rootCmd.AddCommand(getCmd)
}

type imageInfo struct {
	Size   int    `json:"size" yaml:"size"`
	Width  int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height int    `json:"height,omitempty" yaml:"height,omitempty"`
	Saved  string `json:"saved,omitempty" yaml:"saved,omitempty"`
}

type imageCheck struct {
	Path    string `json:"path" yaml:"path"`
	IsImage bool   `json:"is_image" yaml:"is_image"`
	MIME    string `json:"mime,omitempty" yaml:"mime,omitempty"`
}

// addInspectCommands adds is-image, formats and clear
func (app *App) addInspectCommands(rootCmd *cobra.Command) {
	isImageCmd := &cobra.Command{
		Use:   "is-image <path>",
		Short: "Report whether a file decodes as an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			ok, err := clipboard.IsImage(path)
			if err != nil {
				return err
			}
			mime, err := dib.Sniff(path)
			if err != nil {
				return err
			}

			if app.Printer.Structured() {
				return app.Printer.Record(imageCheck{Path: path, IsImage: ok, MIME: mime})
			}
			if err := app.Printer.Field("image", strconv.FormatBool(ok)); err != nil {
				return err
			}
			if mime != "" {
				return app.Printer.Field("type", mime)
			}
			return nil
		},
	}

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List the clipboard formats currently available",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := app.Clipboard()
			if err != nil {
				return err
			}
			formats, err := b.Formats()
			if err != nil {
				return err
			}

			names := make([]string, len(formats))
			for i, f := range formats {
				names[i] = f.String()
			}
			if app.Printer.Structured() {
				return app.Printer.Record(map[string][]string{"formats": names})
			}
			if len(names) == 0 {
				app.Printer.Info("clipboard holds none of CF_HDROP, CF_DIB, CF_UNICODETEXT")
				return nil
			}
			for _, n := range names {
				app.Printer.Println(n)
			}
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			b, err := app.Clipboard()
			if err != nil {
				return err
			}
			if err := b.Clear(); err != nil {
				return err
			}
			if app.Printer.Structured() {
				return app.Printer.Record(map[string]bool{"cleared": true})
			}
			app.Printer.Success("clipboard cleared")
			return nil
		},
	}

	rootCmd.AddCommand(isImageCmd, formatsCmd, clearCmd)
}
