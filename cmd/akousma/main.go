// Package main provides the CLI entrypoint for akousma.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/akousma/internal/clipstore"
	"github.com/verte-zerg/akousma/internal/config"
	"github.com/verte-zerg/akousma/internal/locale"
	"github.com/verte-zerg/akousma/internal/model"
	"github.com/verte-zerg/akousma/internal/numeral"
	"github.com/verte-zerg/akousma/internal/playback"
	"github.com/verte-zerg/akousma/internal/stats"
	"github.com/verte-zerg/akousma/internal/tui"
)

const (
	defaultLang  = "en"
	defaultVoice = "female"
)

var (
	gameLang   string
	gameVoice  string
	gameMin    int
	gameMax    int
	gameAssets string

	vocabKeysOnly bool

	checkVoice  string
	checkAssets string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "akousma",
		Short:         "Greek number listening trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.Flags().StringVar(&gameLang, "lang", defaultLang, "interface language code")
	rootCmd.Flags().StringVar(&gameVoice, "voice", defaultVoice, "clip voice (male or female)")
	rootCmd.Flags().IntVar(&gameMin, "min", numeral.MinNumber, "smallest number to play")
	rootCmd.Flags().IntVar(&gameMax, "max", numeral.MaxNumber, "largest number to play")
	rootCmd.Flags().StringVar(&gameAssets, "assets", "", "clip store directory (default: XDG data dir)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVocabCmd())
	rootCmd.AddCommand(newCheckCmd())

	return rootCmd
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &gameLang, fileCfg.Game.Lang)
	applyStringConfig(cmd, "voice", &gameVoice, fileCfg.Game.Voice)
	applyIntConfig(cmd, "min", &gameMin, fileCfg.Game.Min)
	applyIntConfig(cmd, "max", &gameMax, fileCfg.Game.Max)
	applyStringConfig(cmd, "assets", &gameAssets, fileCfg.Game.AssetDir)

	if gameAssets == "" {
		gameAssets = config.DefaultAssetDir()
	}
	cfg := model.Config{
		Lang:     gameLang,
		Voice:    model.Voice(gameVoice),
		Min:      gameMin,
		Max:      gameMax,
		AssetDir: gameAssets,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	loc, err := locale.New(cfg.Lang)
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal")
	}

	store := clipstore.New(afero.NewOsFs(), cfg.AssetDir)
	if err := verifyStore(store, cfg.Voice, cfg.AssetDir); err != nil {
		return err
	}

	if err := playback.Init(); err != nil {
		return err
	}
	defer func() {
		if terr := playback.Terminate(); terr != nil {
			logErrf("failed to terminate portaudio: %v\n", terr)
		}
	}()

	player := playback.NewPlayer(playback.OpenDefaultDevice)
	m := tui.NewModel(cfg, loc, store, player)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	player.Close()

	finalModel, ok := final.(*tui.Model)
	if !ok {
		return nil
	}
	if err := finalModel.Err(); err != nil {
		return err
	}
	return printSummary(finalModel.Summary(), loc)
}

// printSummary repeats the session report on the plain terminal so it
// survives in scrollback after the alt screen is gone.
func printSummary(sum model.Summary, loc locale.Localizer) error {
	if sum.Rounds == 0 {
		fmt.Println(loc.T("goodbye"))
		return nil
	}
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	if err := stats.RenderSummary(os.Stdout, sum, loc, width); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	fmt.Println(loc.T("goodbye"))
	return nil
}

// verifyStore checks the clip tree before the game starts so a missing
// or empty store fails fast with a pointer to the check command.
func verifyStore(store *clipstore.Store, voice model.Voice, dir string) error {
	missing := store.Verify(numeral.Tokens(), voice)
	if len(missing) == 0 {
		return nil
	}
	lines := []string{
		fmt.Sprintf("clip store is incomplete: %d of %d clips unusable for the %s voice", len(missing), len(numeral.Tokens()), voice),
		fmt.Sprintf("expected clips under: %s", filepath.Join(dir, string(voice))),
		"Inspect with: akousma check",
		"List the required vocabulary with: akousma vocab",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newVocabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List the clip vocabulary",
		Long:  "List every asset key and the Greek word it must contain.\nUse --keys to get a bare key list for a TTS rendering pipeline.",
		Args:  cobra.NoArgs,
		RunE:  runVocabCmd,
	}
	cmd.Flags().BoolVar(&vocabKeysOnly, "keys", false, "print asset keys only")
	return cmd
}

func runVocabCmd(cmd *cobra.Command, _ []string) error {
	toks := numeral.Tokens()
	rows := make([][]string, 0, len(toks))
	for _, tok := range toks {
		if vocabKeysOnly {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), tok.ID); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			continue
		}
		rows = append(rows, []string{tok.ID + ".wav", tok.Text})
	}
	if vocabKeysOnly {
		return nil
	}
	for _, line := range stats.FormatTable([]string{"file", "word"}, rows) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the clip store",
		Args:  cobra.NoArgs,
		RunE:  runCheckCmd,
	}
	cmd.Flags().StringVar(&checkVoice, "voice", "", "verify one voice only (default: all)")
	cmd.Flags().StringVar(&checkAssets, "assets", "", "clip store directory (default: XDG data dir)")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "assets", &checkAssets, fileCfg.Game.AssetDir)
	if checkAssets == "" {
		checkAssets = config.DefaultAssetDir()
	}

	voices := []model.Voice{model.VoiceMale, model.VoiceFemale}
	if checkVoice != "" {
		v := model.Voice(checkVoice)
		if v != model.VoiceMale && v != model.VoiceFemale {
			return fmt.Errorf("unknown voice %q (available: %s, %s)", checkVoice, model.VoiceMale, model.VoiceFemale)
		}
		voices = []model.Voice{v}
	}

	toks := numeral.Tokens()
	broken := false
	for _, voice := range voices {
		// A fresh store per voice keeps a corrupt clip in one voice from
		// poisoning the sample-rate check of the other.
		store := clipstore.New(afero.NewOsFs(), checkAssets)
		missing := store.Verify(toks, voice)
		if len(missing) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: all %d clips ok\n", voice, len(toks))
			continue
		}
		broken = true
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d of %d clips unusable:\n", voice, len(missing), len(toks))
		for _, id := range missing {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", filepath.Join(checkAssets, string(voice), id+".wav"))
		}
	}
	if broken {
		return fmt.Errorf("clip store is incomplete")
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# akousma configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# lang = %q           # Interface language (en or ru)
# voice = %q       # Clip voice (male or female)
# min = %d               # Smallest number to play
# max = %d            # Largest number to play
# assets = ""           # Clip store directory
`,
		defaultLang,
		defaultVoice,
		numeral.MinNumber,
		numeral.MaxNumber,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Voice != model.VoiceMale && cfg.Voice != model.VoiceFemale {
		return fmt.Errorf("--voice must be %q or %q", model.VoiceMale, model.VoiceFemale)
	}
	if cfg.Min < numeral.MinNumber {
		return fmt.Errorf("--min must be >= %d", numeral.MinNumber)
	}
	if cfg.Max > numeral.MaxNumber {
		return fmt.Errorf("--max must be <= %d", numeral.MaxNumber)
	}
	if cfg.Min > cfg.Max {
		return fmt.Errorf("--min must not exceed --max")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
