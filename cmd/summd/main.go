package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gubarz/summd/internal/config"
	"github.com/gubarz/summd/internal/log"
	"github.com/gubarz/summd/internal/output"
	"github.com/gubarz/summd/internal/parser"
	"github.com/gubarz/summd/internal/session"
	"github.com/gubarz/summd/internal/stream"
	"github.com/gubarz/summd/internal/ui"
)

var version = "0.1.0"

var cfgFile string

const defaultPrompt = `Summarize the following YouTube video transcript.
Start with a "# " title, use "## " sections, "- " bullet points and **bold** key terms.

Transcript:
{transcript}`

var rootCmd = &cobra.Command{
	Use:   "summd [video-url]",
	Short: "Streaming YouTube video summaries in the terminal",
	Long: `Summarize a YouTube video through a summarization server and watch
the summary render as it streams in.

Press Enter to summarize, Ctrl+L to switch between local and remote
inference, Ctrl+R to reset and Ctrl+Y to copy the summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInteractive,
}

var renderCmd = &cobra.Command{
	Use:   "render [file|-]",
	Short: "Render a saved summary buffer",
	Long: `Reads a summary buffer from a file or stdin and prints it as
rendered blocks. Reasoning segments are removed first.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var fetchCmd = &cobra.Command{
	Use:   "fetch [video-url]",
	Short: "Stream a summary without the interactive view",
	Long: `Streams a summary from the server (or, with --direct, from an
OpenAI-compatible endpoint given a transcript file) and writes the
finished result using the output mode.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFetch,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd, fetchCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.config/summd/summd.yaml)")
	rootCmd.PersistentFlags().String("server", "", "Summarization server URL")
	rootCmd.PersistentFlags().Bool("local", false, "Ask the server for local inference")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output mode: print, copy")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Debug logging to stderr")

	renderCmd.Flags().String("engine", "blocks", "Renderer: blocks, glamour")
	renderCmd.Flags().Bool("plain", false, "Render without colors or wrapping")
	renderCmd.Flags().Bool("dump", false, "Print the parsed block structure")
	renderCmd.Flags().Int("width", 0, "Wrap width (default from config)")

	fetchCmd.Flags().Bool("raw", false, "Output the cleaned text instead of rendered blocks")
	fetchCmd.Flags().Bool("live", false, "Re-render to stderr as chunks arrive")
	fetchCmd.Flags().Bool("direct", false, "Call the OpenAI-compatible endpoint directly")
	fetchCmd.Flags().String("transcript", "", "Transcript file for --direct")
	fetchCmd.Flags().String("prompt-file", "", "Prompt template for --direct; {transcript} is replaced")
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		log.Warn("loading config: %v", err)
	}
	log.SetLevel(log.ParseLevel(config.GetLogLevel()))
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		log.SetLevel(log.LevelDebug)
	}
	if o, _ := rootCmd.PersistentFlags().GetString("output"); o != "" {
		config.SetOutput(o)
	}
	if s, _ := rootCmd.PersistentFlags().GetString("server"); s != "" {
		config.SetServerURL(s)
	}
	if rootCmd.PersistentFlags().Changed("local") {
		local, _ := rootCmd.PersistentFlags().GetBool("local")
		config.SetUseLocal(local)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	var url string
	if len(args) > 0 {
		url = args[0]
	}

	return ui.Run(ui.Options{
		Client:   stream.NewClient(config.GetServerURL(), 0),
		Sink:     output.NewSink().WithoutPrintFallback(),
		VideoURL: url,
		UseLocal: config.GetUseLocal(),
		Timeout:  config.GetTimeout(),
	})
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := readInput(args)
	if err != nil {
		return err
	}

	width, _ := cmd.Flags().GetInt("width")
	if width <= 0 {
		width = config.GetWidth()
	}

	if dump, _ := cmd.Flags().GetBool("dump"); dump {
		fmt.Print(parser.Dump(parser.Parse(raw)))
		return nil
	}

	engine, _ := cmd.Flags().GetString("engine")
	switch engine {
	case "glamour":
		out, err := ui.RenderGlamour(raw, width)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "blocks", "":
		plain, _ := cmd.Flags().GetBool("plain")
		fmt.Println(newRenderer(plain, width).Render(parser.Parse(raw)))
	default:
		return fmt.Errorf("unsupported engine: %s (supported: blocks, glamour)", engine)
	}
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, config.GetTimeout())
	defer cancel()

	raw, _ := cmd.Flags().GetBool("raw")
	live, _ := cmd.Flags().GetBool("live")
	direct, _ := cmd.Flags().GetBool("direct")

	buf := session.New()
	gen := buf.Generation()
	renderer := ui.NewRenderer(ui.ConfiguredStyles(), config.GetWidth())

	onChunk := func(chunk string) {
		buf.Append(gen, chunk)
		if live {
			// clear screen, then redraw the whole summary
			fmt.Fprint(os.Stderr, "\033[H\033[2J")
			fmt.Fprintln(os.Stderr, renderer.Render(buf.Snapshot().Blocks()))
		}
	}

	client := stream.NewClient(config.GetServerURL(), 0)
	var err error
	if direct {
		err = fetchDirect(ctx, cmd, client, onChunk)
	} else {
		if len(args) == 0 {
			return errors.New("a video URL is required")
		}
		log.Info("summarizing %s via %s (local=%t)", args[0], client.ServerURL(), config.GetUseLocal())
		err = client.Summarize(ctx, stream.Request{VideoURL: args[0], UseLocal: config.GetUseLocal()}, onChunk)
	}
	if err != nil {
		log.Error("summarization failed: %v", err)
		return fmt.Errorf("error summarizing video: %w", err)
	}

	snap := buf.Snapshot()
	log.Info("summary complete: %d bytes", len(snap.Text))
	result := parser.Clean(snap.Text)
	if !raw {
		result = renderer.Render(snap.Blocks())
	}
	return output.NewSink().Output(result)
}

func fetchDirect(ctx context.Context, cmd *cobra.Command, client *stream.Client, onChunk stream.ChunkFunc) error {
	transcriptFile, _ := cmd.Flags().GetString("transcript")
	if transcriptFile == "" {
		return errors.New("--direct requires --transcript")
	}
	transcript, err := os.ReadFile(transcriptFile)
	if err != nil {
		return fmt.Errorf("reading transcript: %w", err)
	}

	template := defaultPrompt
	if promptFile, _ := cmd.Flags().GetString("prompt-file"); promptFile != "" {
		b, err := os.ReadFile(promptFile)
		if err != nil {
			return fmt.Errorf("reading prompt: %w", err)
		}
		template = string(b)
	}

	ep := stream.Endpoint{
		URL:    config.GetLlamaURL(),
		Model:  config.GetLlamaModel(),
		APIKey: config.GetLlamaAPIKey(),
	}
	prompt := strings.ReplaceAll(template, "{transcript}", string(transcript))
	log.Debug("direct: transcript=%d bytes prompt=%d bytes", len(transcript), len(prompt))
	return client.Complete(ctx, ep, []stream.Message{{Role: "user", Content: prompt}}, onChunk)
}

func newRenderer(plain bool, width int) *ui.Renderer {
	if plain {
		return ui.NewPlainRenderer()
	}
	return ui.NewRenderer(ui.ConfiguredStyles(), width)
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(b), nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
