package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/voxhall/contentengine/internal/config"
	"github.com/voxhall/contentengine/internal/database"
	"github.com/voxhall/contentengine/internal/export"
	"github.com/voxhall/contentengine/internal/fetch"
	"github.com/voxhall/contentengine/internal/llm"
	"github.com/voxhall/contentengine/internal/repurpose"
	"github.com/voxhall/contentengine/internal/server"
	"github.com/voxhall/contentengine/internal/usage"
	"github.com/voxhall/contentengine/internal/voice"
)

var version = "dev"

var (
	verbose    bool
	configPath string
	cfg        *config.Config
)

func main() {
	// A local .env is convenient during development; absence is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "contentengine",
	Short:   "Repurpose long-form content into platform-ready formats",
	Long:    "Content Engine extracts the key points of an article or script once, then adapts them into threads, posts, captions, newsletters, email sequences, and summaries.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(voiceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(keyCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("contentengine", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/contentengine/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := filepath.Join(config.ConfigDir(), "config.yaml")
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		if err := os.WriteFile(target, config.DefaultConfigYAML, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Println("Edit it to configure the model and defaults, then set an API key with 'contentengine key set'.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats()
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}

		tracker := usage.NewTracker(db, cfg.Usage.MonthlyLimit)
		info, err := tracker.Info()
		if err != nil {
			return fmt.Errorf("getting usage: %w", err)
		}

		fmt.Printf("Database: %s\n\n", db.Path())
		fmt.Println("Content:")
		fmt.Printf("  Inputs: %d\n", stats.ContentInputs)
		fmt.Printf("  Outputs: %d\n", stats.Outputs)
		fmt.Println("\nVoices:")
		fmt.Printf("  Profiles: %d\n", stats.VoiceProfiles)
		fmt.Println("\nUsage:")
		fmt.Printf("  This month: %d / %d\n", info.Used, info.Limit)
		fmt.Printf("  Resets: %s\n", info.ResetsAt)

		key, err := resolveAPIKey(db)
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Println("\nNo API key configured. Set one with 'contentengine key set'.")
		}
		return nil
	},
}

// --- run command ---

var (
	runFormats  []string
	runTone     string
	runLength   string
	runVoice    string
	runURL      string
	runFeed     string
	runTitle    string
	runTweets   int
	runHashtags int
	runEmojis   bool
	runNoEmojis bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Repurpose content into the selected formats",
	Long: `Repurpose content into one or more formats in a single run.

Content comes from a file argument, stdin, --url (readable page text),
or --feed (the newest entry of an RSS/Atom feed).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		formats, err := parseFormats(runFormats)
		if err != nil {
			return err
		}

		req := repurpose.Request{Formats: formats, VoiceID: runVoice}

		req.Tone, err = resolveTone(db, runTone)
		if err != nil {
			return err
		}
		req.Length, err = resolveLength(db, runLength)
		if err != nil {
			return err
		}

		switch {
		case runURL != "" && runFeed != "":
			return fmt.Errorf("--url and --feed are mutually exclusive")
		case runURL != "" || runFeed != "":
			if len(args) > 0 {
				return fmt.Errorf("cannot combine a file argument with --url or --feed")
			}
			fetcher := fetch.New(0)
			var content *fetch.Content
			if runURL != "" {
				fmt.Printf("Fetching %s...\n", runURL)
				content, err = fetcher.FetchURL(runURL)
			} else {
				fmt.Printf("Fetching newest entry of %s...\n", runFeed)
				content, err = fetcher.FetchFeedLatest(runFeed)
			}
			if err != nil {
				return err
			}
			req.Content = content.Text
			if runURL != "" {
				req.SourceURL = &runURL
			} else {
				req.SourceURL = &runFeed
			}
			if content.Title != "" {
				req.Title = &content.Title
			}
		default:
			text, err := readContent(args)
			if err != nil {
				return err
			}
			req.Content = text
		}
		if runTitle != "" {
			req.Title = &runTitle
		}

		if cmd.Flags().Changed("tweets") {
			req.Config.TweetCount = &runTweets
		}
		if cmd.Flags().Changed("hashtags") {
			req.Config.HashtagCount = &runHashtags
		}
		if runEmojis && runNoEmojis {
			return fmt.Errorf("--emojis and --no-emojis are mutually exclusive")
		}
		if runEmojis || runNoEmojis {
			req.Config.IncludeEmojis = &runEmojis
		}

		client, err := newLLMClient(db)
		if err != nil {
			return err
		}
		tracker := usage.NewTracker(db, cfg.Usage.MonthlyLimit)
		pipe := repurpose.New(db, client, tracker, cfg.LLM.ExtractMaxTokens, cfg.LLM.AdaptMaxTokens)

		start := time.Now()
		resp, err := pipe.Run(context.Background(), req)
		if err != nil {
			var quota *usage.QuotaError
			if errors.As(err, &quota) {
				return fmt.Errorf("%w\nThe limit resets at the start of next month", quota)
			}
			return err
		}

		fmt.Printf("\nRepurposed into %d formats in %s (input %s):\n", len(resp.Outputs), time.Since(start).Round(time.Second), resp.ContentInputID)
		for _, out := range resp.Outputs {
			fmt.Printf("\n=== %s ===\n%s\n", repurpose.OutputFormat(out.Format).DisplayName(), out.OutputText)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringSliceVarP(&runFormats, "formats", "f", nil, "Output formats (thread, feed-post, caption, newsletter, email-sequence, summary)")
	runCmd.Flags().StringVarP(&runTone, "tone", "t", "", "Tone preset (casual, professional, storytelling, educational)")
	runCmd.Flags().StringVarP(&runLength, "length", "l", "", "Length preset (short, medium, long)")
	runCmd.Flags().StringVar(&runVoice, "voice", "", "Brand voice profile ID (defaults to the stored default voice)")
	runCmd.Flags().StringVar(&runURL, "url", "", "Fetch content from a webpage")
	runCmd.Flags().StringVar(&runFeed, "feed", "", "Fetch content from the newest entry of an RSS/Atom feed")
	runCmd.Flags().StringVar(&runTitle, "title", "", "Title for the content")
	runCmd.Flags().IntVar(&runTweets, "tweets", 0, "Number of posts in a thread")
	runCmd.Flags().IntVar(&runHashtags, "hashtags", 0, "Number of hashtags to include")
	runCmd.Flags().BoolVar(&runEmojis, "emojis", false, "Force emojis on")
	runCmd.Flags().BoolVar(&runNoEmojis, "no-emojis", false, "Force emojis off")
	runCmd.MarkFlagRequired("formats")
}

func parseFormats(names []string) ([]repurpose.OutputFormat, error) {
	if len(names) == 0 {
		return nil, repurpose.ErrNoFormats
	}
	formats := make([]repurpose.OutputFormat, 0, len(names))
	seen := make(map[repurpose.OutputFormat]bool, len(names))
	for _, name := range names {
		format, err := repurpose.ParseFormat(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if seen[format] {
			continue
		}
		seen[format] = true
		formats = append(formats, format)
	}
	return formats, nil
}

func resolveTone(db *database.DB, flag string) (repurpose.TonePreset, error) {
	if flag != "" {
		return repurpose.ParseTone(flag)
	}
	stored, err := db.GetSetting("default_tone")
	if err != nil {
		return "", err
	}
	if stored != "" {
		return repurpose.ParseTone(stored)
	}
	return repurpose.ParseTone(cfg.Defaults.Tone)
}

func resolveLength(db *database.DB, flag string) (repurpose.LengthPreset, error) {
	if flag != "" {
		return repurpose.ParseLength(flag)
	}
	stored, err := db.GetSetting("default_length")
	if err != nil {
		return "", err
	}
	if stored != "" {
		return repurpose.ParseLength(stored)
	}
	return repurpose.ParseLength(cfg.Defaults.Length)
}

func readContent(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", args[0], err)
		}
		return string(data), nil
	}

	stat, _ := os.Stdin.Stat()
	if stat != nil && (stat.Mode()&os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no content: pass a file, pipe to stdin, or use --url/--feed")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}

// --- voice command ---

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Manage brand voice profiles",
}

var (
	voiceName        string
	voiceDescription string
)

var voiceAnalyzeCmd = &cobra.Command{
	Use:   "analyze [sample files...]",
	Short: "Analyze writing samples into a brand voice profile",
	Long: `Analyze 1-10 writing samples and store the learned voice as a profile.

Each file is one sample of at least 50 characters. With no files,
stdin is read as a single sample.`,
	Args: cobra.MaximumNArgs(10),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		var samples []string
		if len(args) > 0 {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				samples = append(samples, string(data))
			}
		} else {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
			samples = append(samples, string(data))
		}

		if err := voice.ValidateSamples(samples); err != nil {
			return err
		}

		client, err := newLLMClient(db)
		if err != nil {
			return err
		}

		fmt.Printf("Analyzing %d sample(s)...\n", len(samples))
		style, err := voice.Analyze(context.Background(), client, samples)
		if err != nil {
			return err
		}

		profile := &database.BrandVoiceProfile{Name: voiceName, Style: *style}
		if voiceDescription != "" {
			profile.Description = &voiceDescription
		}
		if err := db.InsertVoiceProfile(profile, samples); err != nil {
			return err
		}

		fmt.Printf("\nCreated voice profile %s (%s)\n", profile.ID, profile.Name)
		fmt.Printf("  Tone: %s\n", style.Tone)
		fmt.Printf("  Vocabulary: %s\n", style.VocabularyLevel)
		fmt.Printf("  Sentences: %s\n", style.SentenceStyle)
		fmt.Printf("  Traits: %s\n", strings.Join(style.PersonalityTraits, ", "))
		if profile.IsDefault {
			fmt.Println("This is now your default voice.")
		}
		return nil
	},
}

var voiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List voice profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		profiles, err := db.GetVoiceProfiles()
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No voice profiles. Create one with: contentengine voice analyze")
			return nil
		}

		for _, p := range profiles {
			marker := " "
			if p.IsDefault {
				marker = "*"
			}
			fmt.Printf("%s %s  %s\n", marker, p.ID, p.Name)
			if p.Description != nil && *p.Description != "" {
				fmt.Printf("    %s\n", *p.Description)
			}
			fmt.Printf("    tone: %s\n", p.Style.Tone)
		}
		return nil
	},
}

var voiceDefaultCmd = &cobra.Command{
	Use:   "default [id]",
	Short: "Set the default voice profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SetDefaultVoice(args[0]); err != nil {
			return err
		}
		fmt.Printf("Default voice set to %s\n", args[0])
		return nil
	},
}

var voiceRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a voice profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteVoiceProfile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed voice profile %s\n", args[0])
		return nil
	},
}

func init() {
	voiceAnalyzeCmd.Flags().StringVarP(&voiceName, "name", "n", "", "Profile name")
	voiceAnalyzeCmd.Flags().StringVarP(&voiceDescription, "description", "d", "", "Profile description")
	voiceAnalyzeCmd.MarkFlagRequired("name")

	voiceCmd.AddCommand(voiceAnalyzeCmd)
	voiceCmd.AddCommand(voiceListCmd)
	voiceCmd.AddCommand(voiceDefaultCmd)
	voiceCmd.AddCommand(voiceRemoveCmd)
}

// --- history command ---

var historyPage int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past repurposing runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		page, err := db.GetHistoryPage(historyPage, 20)
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			fmt.Println("No runs yet.")
			return nil
		}

		fmt.Printf("Page %d (%d total)\n\n", page.Page, page.Total)
		for _, item := range page.Items {
			title := "Untitled Content"
			if item.Title != nil && *item.Title != "" {
				title = *item.Title
			}
			fmt.Printf("%s  %s\n", item.ID, title)
			fmt.Printf("    %d words, %d outputs, %s\n", item.WordCount, item.FormatCount, item.CreatedAt)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a run and its outputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		detail, err := db.GetHistoryDetail(args[0])
		if err != nil {
			return err
		}

		title := "Untitled Content"
		if detail.Input.Title != nil && *detail.Input.Title != "" {
			title = *detail.Input.Title
		}
		fmt.Printf("%s (%d words, %s)\n", title, detail.Input.WordCount, detail.Input.CreatedAt)
		if detail.Input.SourceURL != nil {
			fmt.Printf("Source: %s\n", *detail.Input.SourceURL)
		}
		for _, out := range detail.Outputs {
			fmt.Printf("\n=== %s ===\n%s\n", repurpose.OutputFormat(out.Format).DisplayName(), out.OutputText)
		}
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a run and all its outputs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.DeleteContentInput(args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyPage, "page", "p", 1, "Page number")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
}

// --- export command ---

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export a run as a standalone HTML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		detail, err := db.GetHistoryDetail(args[0])
		if err != nil {
			return err
		}

		path := exportOut
		if path == "" {
			path = args[0] + ".html"
		}
		if err := export.WriteHTML(detail, path); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path (defaults to <id>.html)")
}

// --- usage command ---

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Show monthly usage against the quota",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		tracker := usage.NewTracker(db, cfg.Usage.MonthlyLimit)
		info, err := tracker.Info()
		if err != nil {
			return err
		}

		fmt.Printf("Used %d of %d repurposings this month.\n", info.Used, info.Limit)
		fmt.Printf("Resets: %s\n", info.ResetsAt)
		return nil
	},
}

// --- key command ---

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store the API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.SetSetting("api_key", strings.TrimSpace(args[0])); err != nil {
			return err
		}
		fmt.Println("API key stored.")
		return nil
	},
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API key, masked",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		key, err := resolveAPIKey(db)
		if err != nil {
			return err
		}
		if key == "" {
			fmt.Println("No API key configured.")
			return nil
		}
		fmt.Println(maskKey(key))
		return nil
	},
}

func maskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return fmt.Sprintf("%s...%s", key[:4], key[len(key)-4:])
}

func init() {
	keyCmd.AddCommand(keySetCmd)
	keyCmd.AddCommand(keyShowCmd)
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if !cmd.Flags().Changed("port") && cfg.Server.Port != 0 {
			servePort = cfg.Server.Port
		}

		tracker := usage.NewTracker(db, cfg.Usage.MonthlyLimit)
		fmt.Printf("Starting server at http://localhost:%d\n", servePort)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, tracker, servePort)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on")
}

// --- helpers ---

func openDB() (*database.DB, error) {
	dataDir := cfg.GetDataDir()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dbPath := filepath.Join(dataDir, "contentengine.db")
	return database.Open(dbPath)
}

// resolveAPIKey prefers the key stored in settings over the environment.
func resolveAPIKey(db *database.DB) (string, error) {
	key, err := db.GetSetting("api_key")
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}
	return os.Getenv(cfg.LLM.APIKeyEnv), nil
}

func newLLMClient(db *database.DB) (*llm.AnthropicClient, error) {
	key, err := resolveAPIKey(db)
	if err != nil {
		return nil, err
	}
	return llm.NewAnthropicClient(cfg.LLM.Model, cfg.LLM.BaseURL, key), nil
}
