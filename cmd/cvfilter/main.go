// Package main is the entry point for the cvfilter pandoc filter.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cvfilter "github.com/jlogandavison/mypandocfilters"
	"github.com/jlogandavison/mypandocfilters/markdown"
	"github.com/jlogandavison/mypandocfilters/pandoc"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	flagTo   string
	flagFrom string

	flagInput string
	flagOpts  []string
)

var rootCmd = &cobra.Command{
	Use:   "cvfilter [output-format]",
	Short: "Pandoc filter that typesets CV entries for moderncv or beamer",
	Long: `cvfilter rewrites CV structures in a pandoc document: divs tagged with the
"entry" class become \cventry invocations (latex) or two-column layouts
(beamer), bare paragraphs become \cvitem lines, and bare bullet lists become
\cvlistdoubleitem pairs.

Run it as a pandoc filter; pandoc passes the output format as the first
argument and the document as JSON on stdin:

  pandoc cv.md -t latex --filter cvfilter -o cv.tex

Or feed it markdown directly without a pandoc installation:

  cvfilter --from markdown --input cv.md --to beamer

Any other pandoc input format routes through the pandoc executable:

  cvfilter --from docx --pandoc-opt track-changes=all --input cv.docx`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cvfilter.yaml or ~/.config/cvfilter/config.yaml)")
	rootCmd.Flags().StringVarP(&flagTo, "to", "t", "", "target backend (latex or beamer); overrides the positional format argument")
	rootCmd.Flags().StringVarP(&flagFrom, "from", "f", "json", "input format: json (pandoc filter mode), markdown (native), or any pandoc input format with extension toggles (e.g. docx, markdown+smart)")
	rootCmd.Flags().StringVarP(&flagInput, "input", "i", "", "input file (default: stdin)")
	rootCmd.Flags().StringArrayVar(&flagOpts, "pandoc-opt", nil, "extra pandoc option for non-native input formats, name[=value] (repeatable)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cvfilter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cvfilter"))
		}
	}

	viper.SetEnvPrefix("CVFILTER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func run(cmd *cobra.Command, args []string) error {
	format := viper.GetString("backend")
	if len(args) > 0 {
		format = args[0]
	}
	if flagTo != "" {
		format = flagTo
	}
	if format == "" {
		format = "latex"
	}
	backend, err := cvfilter.ParseBackend(format)
	if err != nil {
		return err
	}

	in := io.Reader(os.Stdin)
	if flagInput != "" {
		f, err := os.Open(flagInput)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	var doc *pandoc.Doc
	switch flagFrom {
	case "json":
		doc, err = pandoc.ReadFrom(in)
	case "markdown":
		var src []byte
		src, err = io.ReadAll(in)
		if err == nil {
			doc, err = markdown.Parse(src)
		}
	default:
		doc, err = pandoc.Load(in, loadConf())
	}
	if err != nil {
		return err
	}

	conf := pandoc.Conf{Pandoc: viper.GetString("pandoc")}
	transform, err := cvfilter.New(backend,
		cvfilter.WithSerializer(cvfilter.NewLaTeXSerializer(conf)))
	if err != nil {
		return err
	}
	out, err := transform.Apply(doc)
	if err != nil {
		return err
	}
	return out.Write(os.Stdout)
}

// loadConf builds the pandoc invocation for a non-native input format from
// the --from spec, the configured executable path, and any --pandoc-opt
// pass-throughs.
func loadConf() pandoc.Conf {
	conf := pandoc.ParseFormat(flagFrom).WithPandoc(viper.GetString("pandoc"))
	for _, o := range flagOpts {
		if name, val, ok := strings.Cut(o, "="); ok {
			conf = conf.WithOpt(name, val)
		} else {
			conf = conf.WithOpt(o)
		}
	}
	return conf
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the cvfilter version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cvfilter", version)
	},
}

func main() {
	rootCmd.AddCommand(versionCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
