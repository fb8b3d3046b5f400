package app

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	json "github.com/goccy/go-json"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/moodtrack/internal/config"
	"github.com/ayoisaiah/moodtrack/internal/logging"
	"github.com/ayoisaiah/moodtrack/internal/notify"
	"github.com/ayoisaiah/moodtrack/internal/pathutil"
	"github.com/ayoisaiah/moodtrack/internal/session"
	"github.com/ayoisaiah/moodtrack/internal/ui"
	"github.com/ayoisaiah/moodtrack/internal/upload"
	"github.com/ayoisaiah/moodtrack/store"
	"github.com/ayoisaiah/moodtrack/tui"
)

const (
	envNoColor          = "NO_COLOR"
	envMoodtrackNoColor = "MOODTRACK_NO_COLOR"
)

var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig reads the config file and applies command-line overrides. The
// first-run prompt is only shown when interactive is true.
func loadConfig(ctx *cli.Context, interactive bool) (*config.Config, error) {
	configPath := pathutil.ConfigFilePath()

	var opts []config.Option

	if interactive {
		opts = append(opts, config.WithPromptConfig(configPath))
	}

	opts = append(
		opts,
		config.WithViperConfig(configPath),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

func backupDir(cfg *config.Config) string {
	return firstNonEmptyString(cfg.Upload.BackupDir, pathutil.BackupDir())
}

func newController(cfg *config.Config, db store.DB) *session.Controller {
	return session.New(session.Options{
		DB:        db,
		Deliverer: upload.NewDeliverer(cfg.Upload.Endpoint, cfg.Upload.Timeout),
		Notifier: notify.New(notify.Options{
			ConfigDir: pathutil.Dir(),
			Enabled:   cfg.Notifications.Enabled,
			Sound:     cfg.Notifications.Sound,
			Clock24:   cfg.Display.TwentyFourHour,
		}),
		Prefix: cfg.Settings.StatePrefix,
		Cmd:    cfg.Settings.Cmd,
		Survey: cfg.Survey,
	})
}

// defaultAction starts a new session or resumes the persisted one.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, true)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer dbClient.Close()

	ctrl := newController(cfg, dbClient)

	notice, cmd, err := ctrl.Recover()
	if err != nil {
		return err
	}

	m := tui.New(tui.Options{
		Controller:      ctrl,
		Notice:          notice,
		Init:            cmd,
		Style:           ui.NewStyle(cfg.Display.DarkTheme),
		ParticipantID:   cfg.CLI.ParticipantID,
		ParticipantName: cfg.CLI.ParticipantName,
		BackupDir:       backupDir(cfg),
		Survey:          cfg.Survey,
		TwentyFourHour:  cfg.Display.TwentyFourHour,
	})

	_, err = tea.NewProgram(m).Run()

	return err
}

// statusAction prints the persisted session state.
func statusAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer dbClient.Close()

	snap, err := dbClient.LoadSnapshot(cfg.Settings.StatePrefix)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(snap)
		if err != nil {
			return err
		}

		fmt.Fprintln(config.Stdout, string(b))

		return nil
	}

	if snap == nil {
		pterm.Info.Println(noSessionMsg)
		return nil
	}

	return printStatus(config.Stdout, snap, cfg.Display.TwentyFourHour)
}

// exportAction writes the retained or current payload to a backup file.
func exportAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer dbClient.Close()

	ctrl := newController(cfg, dbClient)

	found, err := ctrl.Load()
	if err != nil {
		return err
	}

	if !found || ctrl.Session().StartTime == nil {
		pterm.Info.Println(noSessionMsg)
		return nil
	}

	path, err := ctrl.Backup(firstNonEmptyString(ctx.String("dir"), backupDir(cfg)))
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Backup written to %s", ui.Highlight(path))

	return nil
}

// backupsAction lists the backup files in the backup directory.
func backupsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	files, err := upload.ListBackups(
		firstNonEmptyString(ctx.String("dir"), backupDir(cfg)),
	)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		pterm.Info.Println(noBackupsMsg)
		return nil
	}

	return printBackups(config.Stdout, files)
}

// resetAction discards the persisted session.
func resetAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx, false)
	if err != nil {
		return err
	}

	dbClient, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return err
	}

	defer dbClient.Close()

	if !ctx.Bool("yes") {
		warning := pterm.Warning.Sprint(
			"The current session and all its responses will be discarded. Press ENTER to proceed",
		)

		fmt.Fprint(config.Stdout, warning)

		reader := bufio.NewReader(config.Stdin)

		_, _ = reader.ReadString('\n')
	}

	if err := newController(cfg, dbClient).Reset(); err != nil {
		return err
	}

	pterm.Success.Println("Session reset")

	return nil
}

// editConfigAction handles the edit-config command which opens the moodtrack
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	// Override the default version printer
	oldVersionPrinter := cli.VersionPrinter
	cli.VersionPrinter = func(c *cli.Context) {
		oldVersionPrinter(c)
		fmt.Printf(
			"https://github.com/ayoisaiah/moodtrack/releases/%s\n",
			c.App.Version,
		)
	}

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if MOODTRACK_NO_COLOR is set
	if _, exists := os.LookupEnv(envMoodtrackNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	logCloser = logging.Setup(pathutil.LogFilePath())

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting moodtrack")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}
