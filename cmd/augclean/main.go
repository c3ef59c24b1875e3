package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Nunuaa/AugmentCleaner/internal/augmentenv"
	"github.com/Nunuaa/AugmentCleaner/internal/cache"
	"github.com/Nunuaa/AugmentCleaner/internal/config"
	"github.com/Nunuaa/AugmentCleaner/internal/editor"
	"github.com/Nunuaa/AugmentCleaner/internal/extensions"
	"github.com/Nunuaa/AugmentCleaner/internal/procs"
	"github.com/Nunuaa/AugmentCleaner/internal/reconcile"
	"github.com/Nunuaa/AugmentCleaner/internal/report"
	"github.com/Nunuaa/AugmentCleaner/internal/safety"
	"github.com/Nunuaa/AugmentCleaner/internal/scan"
	"github.com/Nunuaa/AugmentCleaner/internal/settings"
	"github.com/Nunuaa/AugmentCleaner/internal/statedb"
	"github.com/Nunuaa/AugmentCleaner/internal/telemetry"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorOrange = "\033[38;5;208m"
	colorYellow = "\033[38;5;220m"
	colorGray   = "\033[38;5;245m"
)

var (
	version    = "0.0.1"
	logger     *zap.Logger
	verbose    bool
	configFile string
	editorKey  string
	assumeYes  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "augclean",
		Short: "AugmentCleaner - Deep cleaner for Augment extension traces",
		Long: `Removes every trace of the Augment coding extension from VS Code family
editors: storage directories, state database rows, configuration entries,
telemetry identifiers, and caches.`,
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Config file path")
	rootCmd.PersistentFlags().StringVarP(&editorKey, "editor", "e", "", "Target editor (vscode, cursor, windsurf, ...)")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Skip confirmation prompts")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(cleanCmd())
	rootCmd.AddCommand(pruneCmd())
	rootCmd.AddCommand(resetIDsCmd())
	rootCmd.AddCommand(killCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(extensionsCmd())
	rootCmd.AddCommand(envCmd())
	rootCmd.AddCommand(runAllCmd())
	rootCmd.AddCommand(editorsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printBanner prints the main banner
func printBanner() {
	fmt.Println()
	fmt.Printf("%s", colorOrange)
	fmt.Println("▄████▄ ██  ██ ▄████▄ ▄████▄ ██     ████▄ ▄████▄ ███  ██")
	fmt.Println("██▄▄██ ██  ██ ██ ▄▄▄ ██  ▀▀ ██     ██▄▄  ██▄▄██ ██ ▀▄██")
	fmt.Println("██  ██ ▀████▀ ▀████▀ ▀████▀ ██████ ████▀ ██  ██ ██   ██")
	fmt.Printf("%s", colorReset)
	fmt.Println()
	fmt.Printf("%sAugment Extension Cleaner v%s%s\n", colorGray, version, colorReset)
	fmt.Println()
}

// env bundles everything a subcommand needs after setup
type env struct {
	cfg     *config.Config
	profile editor.Profile
	home    string
	root    string
	gate    *safety.Gate
}

// setup loads config, resolves the target editor, and initializes the
// global logger. Every subcommand calls it first.
func setup() (*env, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if editorKey != "" {
		cfg.Editor = editorKey
	}

	logger, err = buildLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	profile, err := editor.Resolve(cfg.Editor)
	if err != nil {
		return nil, fmt.Errorf("%w (known: %s)", err, strings.Join(editor.Keys(), ", "))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	root, err := editor.RootFor(cfg.Editor, runtime.GOOS, home)
	if err != nil {
		return nil, err
	}

	return &env{
		cfg:     cfg,
		profile: profile,
		home:    home,
		root:    root,
		gate:    safety.NewGate(home, runtime.GOOS, cfg.ForbiddenPatterns),
	}, nil
}

// buildLogger builds the zap logger. Verbose mode logs to the console at
// debug level; otherwise only errors reach stderr. When a log file is
// configured, everything at info and above additionally goes there through
// a rotating writer.
func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	consoleLevel := zapcore.ErrorLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	consoleEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEnc, zapcore.Lock(os.Stderr), consoleLevel),
	}

	if cfg.LogFile != "" {
		fileSink := zapcore.AddSync(&lumberjack.Logger{
			Filename: cfg.LogFile,
			MaxSize:  cfg.LogMaxSizeMB,
			MaxAge:   cfg.LogMaxAgeDays,
			Compress: true,
		})
		fileEnc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEnc, fileSink, zapcore.InfoLevel))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// confirm asks the operator before a destructive action. The --yes flag
// skips the prompt.
func confirm(action string) bool {
	if assumeYes {
		return true
	}
	fmt.Printf("  %s%s? [y/N]:%s ", colorBold, action, colorReset)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan for extension traces without removing anything",
		Long:  `Run every detection pass and list the discovered locations. Read-only.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			result, err := scan.New(e.cfg, e.root, logger).Scan(ctx)
			if err != nil {
				return err
			}

			report.NewGenerator(e.cfg, logger).PrintScan(result)
			return nil
		},
	}
}

// cleanCmd creates the clean command
func cleanCmd() *cobra.Command {
	var (
		maxRounds    int
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove extension traces until none remain",
		Long: `Repeatedly scan, delete, and verify until a scan comes back empty or the
round budget runs out. Database rows are pruned in place; everything else
is deleted from disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if maxRounds > 0 {
				e.cfg.MaxRounds = maxRounds
			}
			if reportFormat != "" {
				e.cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				e.cfg.OutputFile = outputFile
			}

			if !confirm(fmt.Sprintf("Remove all Augment traces from %s", e.profile.DisplayName)) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			ctx, cancel := signalContext()
			defer cancel()

			scanner := scan.New(e.cfg, e.root, logger)
			rec := reconcile.New(e.cfg, scanner, reconcile.StateDBPruner{}, e.gate, logger)
			rep, err := rec.Run(ctx)
			if rep != nil {
				if path, genErr := report.NewGenerator(e.cfg, logger).Generate(rep); genErr != nil {
					logger.Error("Report generation failed", zap.Error(genErr))
				} else if path != "" {
					fmt.Printf("  %sReport:%s    %s%s%s\n\n", colorGray, colorReset, colorOrange, path, colorReset)
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "Override the scan/clean/verify round budget")
	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: json, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	return cmd
}

// pruneCmd creates the prune command
func pruneCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Prune matching rows from the editor's state databases",
		Long: `Delete rows whose keys match a configured pattern group from every state
database under the editor root, global and per-workspace alike. The chat
and analytics groups target conversation history and usage counters that
survive a plain extension uninstall. Use "all" to apply every group.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			var patterns []string
			if group == "all" {
				patterns = e.cfg.AllDatabasePatterns()
			} else {
				patterns = e.cfg.PatternsFor(group)
			}
			if len(patterns) == 0 {
				return fmt.Errorf("unknown pattern group %q (known: %s, all)", group, strings.Join(e.cfg.DatabaseGroups(), ", "))
			}

			dbs := statedb.ListDatabases(e.root)
			if len(dbs) == 0 {
				fmt.Printf("\n  %s%s✓ No state databases found%s\n\n", colorBold, colorGreen, colorReset)
				return nil
			}

			if !confirm(fmt.Sprintf("Prune %q rows from %d databases", group, len(dbs))) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			ctx, cancel := signalContext()
			defer cancel()

			fmt.Println()
			total, failed := 0, 0
			for _, db := range dbs {
				if e.gate.IsForbidden(db) {
					logger.Warn("Refusing to touch protected path", zap.String("database", db))
					continue
				}
				n, err := statedb.PruneRows(ctx, db, patterns)
				if err != nil {
					failed++
					fmt.Printf("  %s✗ %s:%s %v\n", colorRed, db, colorReset, err)
					logger.Error("Prune failed", zap.String("database", db), zap.Error(err))
					continue
				}
				if n > 0 {
					fmt.Printf("  %s%-4d%s %s\n", colorGray, n, colorReset, db)
				}
				total += n
			}

			fmt.Println()
			fmt.Printf("  %s%s✓ Removed %d rows from %d databases%s\n", colorBold, colorGreen, total, len(dbs)-failed, colorReset)
			if failed > 0 {
				fmt.Printf("  %s%s⚠ %d databases could not be pruned%s\n", colorBold, colorYellow, failed, colorReset)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "augment_specific", "Pattern group to apply, or \"all\"")
	return cmd
}

// resetIDsCmd creates the reset-ids command
func resetIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-ids",
		Short: "Rotate the editor's telemetry identifiers",
		Long: `Replace telemetry.machineId and telemetry.devDeviceId in storage.json
with fresh random UUIDs. The previous values are backed up first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !confirm(fmt.Sprintf("Rotate telemetry identifiers for %s", e.profile.DisplayName)) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			rot, err := telemetry.RotateIDs(e.cfg.Editor, editor.StorageJSONPath(e.root), logger)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Printf("  %s%s✓ Identifiers rotated%s\n\n", colorBold, colorGreen, colorReset)
			fmt.Printf("  %sMachine ID:%s %s → %s\n", colorGray, colorReset, shortID(rot.OldMachineID), shortID(rot.NewMachineID))
			fmt.Printf("  %sDevice ID:%s  %s → %s\n", colorGray, colorReset, shortID(rot.OldDeviceID), shortID(rot.NewDeviceID))
			fmt.Printf("  %sBackup:%s     %s\n\n", colorGray, colorReset, rot.BackupPath)
			return nil
		},
	}
}

// killCmd creates the kill command
func killCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill",
		Short: "Terminate running editor processes",
		Long: `Find every running process of the target editor, ask it to exit, wait,
and force kill whatever is still alive.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			rep, err := procs.NewKiller(e.profile, e.cfg.KillWait, logger).TerminateAll(ctx)
			if err != nil {
				return err
			}

			fmt.Println()
			if len(rep.Found) == 0 {
				fmt.Printf("  %s%s✓ No %s processes running%s\n\n", colorBold, colorGreen, e.profile.DisplayName, colorReset)
				return nil
			}
			fmt.Printf("  %sFound:%s     %d\n", colorGray, colorReset, len(rep.Found))
			fmt.Printf("  %sKilled:%s    %d\n", colorGray, colorReset, len(rep.Killed))
			if len(rep.Remaining) > 0 {
				fmt.Printf("  %s%s⚠ %d processes would not die%s\n", colorBold, colorYellow, len(rep.Remaining), colorReset)
			}
			fmt.Println()
			return nil
		},
	}
}

// sweepCmd creates the sweep command
func sweepCmd() *cobra.Command {
	var groupNames []string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Clear editor caches",
		Long: `Delete the editor's cache directories by group. Available groups: ` + strings.Join(cache.Groups(), ", ") + `.
With no --groups flag every group is swept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !confirm(fmt.Sprintf("Clear %s caches", e.profile.DisplayName)) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			ctx, cancel := signalContext()
			defer cancel()

			sweeper := cache.NewSweeper(e.profile, e.root, e.home, runtime.GOOS, e.gate, logger)
			results := sweeper.Sweep(ctx, groupNames)

			fmt.Println()
			totalFiles, totalBytes := 0, int64(0)
			for _, r := range results {
				fmt.Printf("  %s%-12s%s %d items, %s\n", colorGray, r.Group, colorReset, r.FilesFreed, formatBytes(r.BytesFreed))
				totalFiles += r.FilesFreed
				totalBytes += r.BytesFreed
			}
			fmt.Println()
			fmt.Printf("  %s%s✓ Freed %s across %d items%s\n\n", colorBold, colorGreen, formatBytes(totalBytes), totalFiles, colorReset)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&groupNames, "groups", nil, "Cache groups to sweep (comma-separated)")
	return cmd
}

// settingsCmd creates the settings command
func settingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Remove extension entries from settings and keybindings",
		Long: `Strip Augment-related entries from the editor's settings.json and
keybindings.json. Originals are backed up next to the files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if !confirm("Scrub settings and keybindings") {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			scrubber := settings.NewScrubber(e.cfg.Markers, logger)

			sRes, err := scrubber.ScrubSettings(editor.SettingsPath(e.root))
			if err != nil {
				return err
			}
			kRes, err := scrubber.ScrubKeybindings(editor.KeybindingsPath(e.root))
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Printf("  %sSettings:%s     %d entries removed\n", colorGray, colorReset, sRes.Removed)
			fmt.Printf("  %sKeybindings:%s  %d entries removed\n\n", colorGray, colorReset, kRes.Removed)
			return nil
		},
	}
}

// extensionsCmd creates the extensions command
func extensionsCmd() *cobra.Command {
	var reinstall bool

	cmd := &cobra.Command{
		Use:   "extensions",
		Short: "Uninstall or reinstall the extension via the editor CLI",
		Long: `Use the editor's own command line interface to find installed Augment
extension variants and uninstall them. With --reinstall each one is
installed again afterwards, forcing a fresh download.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, cancel := signalContext()
			defer cancel()

			mgr := extensions.NewManager(&e.profile, e.cfg.ExecTimeout, logger)
			matched, err := mgr.ListMatching(ctx, e.cfg.Markers)
			if err != nil {
				return err
			}

			if len(matched) == 0 {
				fmt.Printf("\n  %s%s✓ No matching extensions installed%s\n\n", colorBold, colorGreen, colorReset)
				return nil
			}

			action := "Uninstall"
			if reinstall {
				action = "Reinstall"
			}
			if !confirm(fmt.Sprintf("%s %s", action, strings.Join(matched, ", "))) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			for _, id := range matched {
				var opErr error
				if reinstall {
					opErr = mgr.Reinstall(ctx, id)
				} else {
					opErr = mgr.Uninstall(ctx, id)
				}
				if opErr != nil {
					fmt.Printf("  %s✗ %s:%s %v\n", colorRed, id, colorReset, opErr)
					continue
				}
				fmt.Printf("  %s✓ %s%s\n", colorGreen, id, colorReset)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().BoolVar(&reinstall, "reinstall", false, "Install each extension again after uninstalling")
	return cmd
}

// envCmd creates the env command with info/backup/clean subcommands
func envCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the ~/.augment directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show the directory's contents and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			mgr := augmentenv.NewManager(e.home, e.cfg.PreserveItems, e.gate, logger)
			info, err := mgr.Info()
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Printf("  %sPath:%s   %s\n", colorGray, colorReset, info.Path)
			if !info.Exists {
				fmt.Printf("  %sDoes not exist.%s\n\n", colorGray, colorReset)
				return nil
			}
			fmt.Printf("  %sSize:%s   %s\n", colorGray, colorReset, formatBytes(info.TotalSize))
			for _, item := range info.Items {
				fmt.Printf("    %s\n", item)
			}
			fmt.Println()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "backup",
		Short: "Archive the directory to a zip file",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			mgr := augmentenv.NewManager(e.home, e.cfg.PreserveItems, e.gate, logger)
			archive, err := mgr.Backup()
			if err != nil {
				return err
			}
			fmt.Printf("\n  %s%s✓ Backed up to%s %s\n\n", colorBold, colorGreen, colorReset, archive)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clean",
		Short: "Remove the directory's contents, keeping preserved items",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			mgr := augmentenv.NewManager(e.home, e.cfg.PreserveItems, e.gate, logger)
			if !confirm(fmt.Sprintf("Clean %s (keeping %s)", mgr.Dir(), strings.Join(e.cfg.PreserveItems, ", "))) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			outcomes, err := mgr.Clean()
			if err != nil {
				return err
			}
			removed := 0
			for _, o := range outcomes {
				if !o.Skipped && o.Error == "" {
					removed++
				}
			}
			fmt.Printf("\n  %s%s✓ Removed %d entries%s\n\n", colorBold, colorGreen, removed, colorReset)
			return nil
		},
	})

	return cmd
}

// runAllCmd creates the run-all command
func runAllCmd() *cobra.Command {
	var (
		reportFormat string
		outputFile   string
	)

	cmd := &cobra.Command{
		Use:   "run-all",
		Short: "Full cleanup: kill, ids, clean, caches, settings",
		Long: `Run the complete cleanup sequence: terminate editor processes, rotate
telemetry identifiers, reconcile all traces away, sweep caches, and scrub
settings. Individual step failures are reported and the sequence continues.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			if reportFormat != "" {
				e.cfg.ReportFormat = reportFormat
			}
			if outputFile != "" {
				e.cfg.OutputFile = outputFile
			}

			printBanner()
			if !confirm(fmt.Sprintf("Run the full cleanup against %s", e.profile.DisplayName)) {
				fmt.Printf("  %sAborted.%s\n", colorGray, colorReset)
				return nil
			}

			ctx, cancel := signalContext()
			defer cancel()

			step := func(name string, fn func() error) {
				fmt.Printf("\n%s%s▶ %s%s\n", colorBold, colorOrange, name, colorReset)
				if err := fn(); err != nil {
					fmt.Printf("  %s✗ %v%s\n", colorRed, err, colorReset)
					logger.Error("Step failed", zap.String("step", name), zap.Error(err))
				}
			}

			step("Terminating editor processes", func() error {
				rep, err := procs.NewKiller(e.profile, e.cfg.KillWait, logger).TerminateAll(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("  %d found, %d killed\n", len(rep.Found), len(rep.Killed))
				return nil
			})

			step("Rotating telemetry identifiers", func() error {
				_, err := telemetry.RotateIDs(e.cfg.Editor, editor.StorageJSONPath(e.root), logger)
				return err
			})

			step("Reconciling traces", func() error {
				scanner := scan.New(e.cfg, e.root, logger)
				rec := reconcile.New(e.cfg, scanner, reconcile.StateDBPruner{}, e.gate, logger)
				rep, err := rec.Run(ctx)
				if rep != nil {
					if path, genErr := report.NewGenerator(e.cfg, logger).Generate(rep); genErr == nil && path != "" {
						fmt.Printf("  report: %s\n", path)
					}
				}
				return err
			})

			step("Sweeping caches", func() error {
				sweeper := cache.NewSweeper(e.profile, e.root, e.home, runtime.GOOS, e.gate, logger)
				results := sweeper.Sweep(ctx, nil)
				var bytes int64
				for _, r := range results {
					bytes += r.BytesFreed
				}
				fmt.Printf("  freed %s\n", formatBytes(bytes))
				return nil
			})

			step("Scrubbing settings", func() error {
				scrubber := settings.NewScrubber(e.cfg.Markers, logger)
				if _, err := scrubber.ScrubSettings(editor.SettingsPath(e.root)); err != nil {
					return err
				}
				_, err := scrubber.ScrubKeybindings(editor.KeybindingsPath(e.root))
				return err
			})

			fmt.Printf("\n%s%s✓ Cleanup sequence finished%s\n\n", colorBold, colorGreen, colorReset)
			return nil
		},
	}

	cmd.Flags().StringVarP(&reportFormat, "report", "r", "", "Report format: json, md (default: console output)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path")
	return cmd
}

// editorsCmd creates the editors command
func editorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "editors",
		Short: "List supported editors",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, _ := os.UserHomeDir()
			fmt.Println()
			for _, key := range editor.Keys() {
				profile, _ := editor.Resolve(key)
				root, err := editor.RootFor(key, runtime.GOOS, home)
				state := colorGray + "not found" + colorReset
				if err == nil {
					if _, statErr := os.Stat(root); statErr == nil {
						state = colorGreen + "installed" + colorReset
					}
				}
				fmt.Printf("  %s%-12s%s %-22s %s\n", colorBold, key, colorReset, profile.DisplayName, state)
			}
			fmt.Println()
			return nil
		},
	}
}

// shortID abbreviates a long identifier for console output
func shortID(id string) string {
	if id == "" {
		return "(none)"
	}
	if len(id) > 13 {
		return id[:8] + "…" + id[len(id)-4:]
	}
	return id
}

// formatBytes renders a byte count in human units
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}
