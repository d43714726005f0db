// Package startup registers pushmap to run headless at login.
package startup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Entry is the command line started at login.
type Entry struct {
	Executable string
	Args       []string
}

// NewEntry starts the running executable with args.
func NewEntry(args ...string) (Entry, error) {
	execPath, err := os.Executable()
	if err != nil {
		return Entry{}, err
	}
	return Entry{Executable: execPath, Args: args}, nil
}

func (e Entry) argv() []string {
	return append([]string{e.Executable}, e.Args...)
}

// Enable registers e to launch at login
func Enable(e Entry) error {
	switch runtime.GOOS {
	case "darwin":
		return writeFile(launchAgentPath(), launchAgent(e))
	case "linux":
		return writeFile(systemdUnitPath(), systemdUnit(e))
	case "windows":
		return enableWindows(e)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// Disable removes the login registration
func Disable() error {
	switch runtime.GOOS {
	case "darwin":
		return removeFile(launchAgentPath())
	case "linux":
		return removeFile(systemdUnitPath())
	case "windows":
		return disableWindows()
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// IsEnabled reports whether a login registration exists
func IsEnabled() bool {
	switch runtime.GOOS {
	case "darwin":
		return exists(launchAgentPath())
	case "linux":
		return exists(systemdUnitPath())
	case "windows":
		return exec.Command("reg", "query", windowsRunKey, "/v", windowsValueName).Run() == nil
	default:
		return false
	}
}

// Location is where the registration lives on this platform
func Location() string {
	switch runtime.GOOS {
	case "darwin":
		return launchAgentPath()
	case "linux":
		return systemdUnitPath()
	case "windows":
		return windowsRunKey + `\` + windowsValueName
	default:
		return ""
	}
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func removeFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// --- macOS ---

const launchAgentLabel = "com.pixpmusic.pushmap"

func launchAgentPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel+".plist")
}

func launchAgent(e Entry) string {
	var args strings.Builder
	for _, a := range e.argv() {
		fmt.Fprintf(&args, "        <string>%s</string>\n", xmlEscape(a))
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
    <key>Label</key>
    <string>%s</string>
    <key>ProgramArguments</key>
    <array>
%s    </array>
    <key>RunAtLoad</key>
    <true/>
    <key>KeepAlive</key>
    <dict>
        <key>SuccessfulExit</key>
        <false/>
    </dict>
</dict>
</plist>
`, launchAgentLabel, args.String())
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}

// --- Linux ---

const systemdUnitName = "pushmap.service"

func systemdUnitPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "systemd", "user", systemdUnitName)
}

func systemdUnit(e Entry) string {
	quoted := make([]string, 0, len(e.argv()))
	for _, a := range e.argv() {
		quoted = append(quoted, systemdQuote(a))
	}
	return fmt.Sprintf(`[Unit]
Description=pushmap controller mapping
After=sound.target

[Service]
ExecStart=%s
Restart=on-failure

[Install]
WantedBy=default.target
`, strings.Join(quoted, " "))
}

func systemdQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// --- Windows ---

const (
	windowsRunKey    = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`
	windowsValueName = "pushmap"
)

func windowsCommandLine(e Entry) string {
	parts := make([]string, 0, len(e.argv()))
	for _, a := range e.argv() {
		if strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func enableWindows(e Entry) error {
	return exec.Command("reg", "add", windowsRunKey,
		"/v", windowsValueName,
		"/t", "REG_SZ",
		"/d", windowsCommandLine(e),
		"/f").Run()
}

func disableWindows() error {
	output, err := exec.Command("reg", "delete", windowsRunKey, "/v", windowsValueName, "/f").CombinedOutput()
	// Missing value means already disabled.
	if err != nil && !strings.Contains(string(output), "unable to find") {
		return err
	}
	return nil
}
