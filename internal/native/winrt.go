package native

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"
	"time"

	"github.com/mblarsen/toast-bridge/internal/fileutil"
	"github.com/mblarsen/toast-bridge/internal/toast"
)

// ErrUnsupportedPlatform is returned by Acquire when toasts are requested on
// a host without the Windows notification platform.
var ErrUnsupportedPlatform = errors.New("windows toast notifications are not available on " + runtime.GOOS)

// Runner executes a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// WinRTOptions configures a WinRT service.
type WinRTOptions struct {
	AppID      string
	Group      string
	PowerShell string
	ScriptDir  string
	Timeout    time.Duration
	// Runner overrides how PowerShell is invoked. Defaults to os/exec.
	Runner Runner
	// GOOS overrides the platform check. Defaults to runtime.GOOS.
	GOOS string
}

// WinRT drives Windows.UI.Notifications through PowerShell scripts. Every
// script runs in its own PowerShell process and creates its own
// ToastNotifier, so the notifier handed out by Acquire only carries the
// application id that each script binds to.
type WinRT struct {
	opts WinRTOptions
}

type winrtNotifier struct {
	appID string
}

func (n *winrtNotifier) AppID() string { return n.appID }

type winrtNotification struct {
	tag   string
	group string
}

func (n *winrtNotification) Tag() string { return n.tag }

// NewWinRT creates a WinRT notification service.
func NewWinRT(opts WinRTOptions) *WinRT {
	if opts.Runner == nil {
		opts.Runner = execRunner
	}
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.PowerShell == "" {
		opts.PowerShell = "powershell.exe"
	}
	if opts.ScriptDir == "" {
		opts.ScriptDir = filepath.Join(os.TempDir(), "toast-bridge")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &WinRT{opts: opts}
}

// Acquire checks that the WinRT toast types load and a notifier can be
// created for the configured application id.
func (w *WinRT) Acquire(ctx context.Context) (toast.Notifier, error) {
	if w.opts.GOOS != "windows" {
		return nil, ErrUnsupportedPlatform
	}
	if err := w.run(ctx, "acquire", acquireScript, scriptData{AppID: w.opts.AppID}); err != nil {
		return nil, err
	}
	return &winrtNotifier{appID: w.opts.AppID}, nil
}

// Submit shows a toast carrying the given tag.
func (w *WinRT) Submit(ctx context.Context, n toast.Notifier, p toast.Payload, tag string) (toast.Notification, error) {
	markup, err := p.Markup()
	if err != nil {
		return nil, err
	}
	data := scriptData{
		AppID: n.AppID(),
		Tag:   tag,
		Group: w.opts.Group,
		XML:   markup,
	}
	if err := w.run(ctx, "submit", submitScript, data); err != nil {
		return nil, err
	}
	return &winrtNotification{tag: tag, group: w.opts.Group}, nil
}

// Retract removes a toast from the screen and from the action center.
func (w *WinRT) Retract(ctx context.Context, n toast.Notifier, t toast.Notification) error {
	group := w.opts.Group
	if wn, ok := t.(*winrtNotification); ok {
		group = wn.group
	}
	data := scriptData{
		AppID: n.AppID(),
		Tag:   t.Tag(),
		Group: group,
	}
	return w.run(ctx, "retract", retractScript, data)
}

func (w *WinRT) run(ctx context.Context, op string, tmpl *template.Template, data scriptData) error {
	script, err := renderScript(tmpl, data)
	if err != nil {
		return err
	}

	name := op + ".ps1"
	if data.Tag != "" {
		name = op + "-" + data.Tag + ".ps1"
	}
	if err := os.MkdirAll(w.opts.ScriptDir, 0700); err != nil {
		return fmt.Errorf("failed to create script directory: %w", err)
	}
	path := filepath.Join(w.opts.ScriptDir, name)
	// PowerShell 5 only reads a script as UTF-8 when it carries a BOM.
	if err := fileutil.AtomicWriteFile(path, append([]byte("\ufeff"), script...), 0600); err != nil {
		return fmt.Errorf("failed to write %s script: %w", op, err)
	}
	defer removeScript(path)

	ctx, cancel := context.WithTimeout(ctx, w.opts.Timeout)
	defer cancel()

	out, err := w.opts.Runner(ctx, w.opts.PowerShell,
		"-NoProfile", "-NonInteractive", "-ExecutionPolicy", "Bypass", "-File", path)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s toast: %w", op, err)
		}
		return fmt.Errorf("%s toast: %w: %s", op, err, msg)
	}
	slog.Debug("PowerShell toast script finished", "op", op, "tag", data.Tag)
	return nil
}

func removeScript(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove toast script", "path", path, "err", err)
	}
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	return cmd.CombinedOutput()
}

type scriptData struct {
	AppID string
	Tag   string
	Group string
	XML   string
}

// PowerShell treats the typographic single quotes as quote characters too.
var psEscaper = strings.NewReplacer(
	"'", "''",
	"\u2018", "\u2018\u2018",
	"\u2019", "\u2019\u2019",
	"\u201a", "\u201a\u201a",
	"\u201b", "\u201b\u201b",
)

// psQuote renders s as a single-quoted PowerShell string literal.
func psQuote(s string) string {
	return "'" + psEscaper.Replace(s) + "'"
}

func renderScript(tmpl *template.Template, data scriptData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render toast script: %w", err)
	}
	return buf.Bytes(), nil
}

var funcs = template.FuncMap{"ps": psQuote}

const preamble = `$ErrorActionPreference = 'Stop'
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.UI.Notifications.ToastNotification, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
`

var acquireScript = template.Must(template.New("acquire").Funcs(funcs).Parse(preamble +
	`$notifier = [Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier({{ps .AppID}})
if ($null -eq $notifier) { throw 'CreateToastNotifier returned null' }
`))

var submitScript = template.Must(template.New("submit").Funcs(funcs).Parse(preamble +
	`$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
$xml.LoadXml({{ps .XML}})
$toast = New-Object Windows.UI.Notifications.ToastNotification $xml
$toast.Tag = {{ps .Tag}}
$toast.Group = {{ps .Group}}
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier({{ps .AppID}}).Show($toast)
`))

var retractScript = template.Must(template.New("retract").Funcs(funcs).Parse(preamble +
	`[Windows.UI.Notifications.ToastNotificationManager]::History.Remove({{ps .Tag}}, {{ps .Group}}, {{ps .AppID}})
`))
