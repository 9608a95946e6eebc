package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/forPelevin/timecut/internal/render"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := NewRootCmd()
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "timecut",
		Short:         "Find chapter sections and highlight clips in video text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "TOML config file (default $TIMECUT_CONFIG)")
	pf.String("log-level", "", "Log level: debug, info, warn, error")
	pf.String("log-format", "", "Log format: json or text (default: text on a terminal)")
	pf.String("format", string(render.FormatJSON), "Output format: "+formatNames())
	pf.String("out-dir", "", "Write the result into this directory instead of stdout")
	pf.String("duration", "", "Video duration: seconds, M:SS, H:MM:SS or ISO-8601")
	pf.String("media", "", "Local media file to probe for duration and chapters")
	pf.String("description", "", "Description text file (- for stdin)")

	// Hidden tuning flag (internal)
	pf.String("ffprobe", "", "ffprobe binary")
	_ = pf.MarkHidden("ffprobe")

	root.AddCommand(newSectionsCmd(), newClipsCmd(), newConfigCmd())
	return root
}

func newSectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Resolve the chapter list from official chapters, comments or the description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, commandSections)
		},
	}
	cmd.Flags().String("comments", "", "Comments file: JSON array of strings or bodies separated by --- lines")
	cmd.Flags().String("chapters", "", "Provider chapter payload (JSON)")
	return cmd
}

func newClipsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clips",
		Short: "Suggest highlight clips from description chapters and captions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, commandClips)
		},
	}
	cmd.Flags().String("captions", "", "Captions file: JSON array or START|TEXT lines")
	cmd.Flags().String("mode", "chapters", "Detection mode: chapters, captions, combined")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print an annotated sample config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printSampleConfig(cmd)
		},
	}
}

func formatNames() string {
	names := make([]string, 0, len(render.Formats))
	for _, f := range render.Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
