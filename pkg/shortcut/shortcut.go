// pkg/shortcut/shortcut.go - desktop shortcut creation for the dashboard.
//
// On Windows a small VBScript is rendered, handed to the Windows Script
// Host, and deleted again. The script asks the shell for the desktop
// folder itself, so the generated file carries no machine-specific paths
// beyond the interpreter. On Linux a .desktop launcher entry is written
// instead.

package shortcut

import (
	"fmt"
	"os"
	"strings"
	"text/template"
)

// Options describes the shortcut to create.
type Options struct {
	Name        string // shortcut file name, without extension
	DisplayName string // launcher entry name (Linux)
	Description string
	Target      string // interpreter executable
	Arguments   string // e.g. "-m macro_database.run"
	WorkingDir  string // may be empty when the package path is unknown
}

// scriptFileName is the transient helper written into the working
// directory and removed after every run.
const scriptFileName = "create_shortcut.vbs"

var templateFuncs = template.FuncMap{
	// VBScript string literals escape quotes by doubling them.
	"vbs": func(s string) string { return strings.ReplaceAll(s, `"`, `""`) },
}

const windowsScriptTemplate = `Set oWS = WScript.CreateObject("WScript.Shell")
sDesktop = oWS.SpecialFolders("Desktop")
Set oLink = oWS.CreateShortcut(sDesktop & "\{{vbs .Name}}.lnk")
oLink.TargetPath = "{{vbs .Target}}"
oLink.Arguments = "{{vbs .Arguments}}"
{{- if .WorkingDir}}
oLink.WorkingDirectory = "{{vbs .WorkingDir}}"
{{- end}}
oLink.IconLocation = "{{vbs .Target}}"
oLink.Description = "{{vbs .Description}}"
oLink.Save
`

const desktopEntryTemplate = `[Desktop Entry]
Version=1.0
Type=Application
Name={{.DisplayName}}
Comment={{.Description}}
Exec={{.Target}} {{.Arguments}}
Icon=utilities-terminal
Terminal=false
Categories=Office;Finance;
`

// renderWindowsScript produces the VBScript that creates the shortcut.
func renderWindowsScript(opts Options) (string, error) {
	return render("windows-shortcut", windowsScriptTemplate, opts)
}

// renderDesktopEntry produces the Linux launcher entry.
func renderDesktopEntry(opts Options) (string, error) {
	return render("desktop-entry", desktopEntryTemplate, opts)
}

func render(name, tmpl string, opts Options) (string, error) {
	t, err := template.New(name).Funcs(templateFuncs).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", name, err)
	}
	var buf strings.Builder
	if err := t.Execute(&buf, opts); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", name, err)
	}
	return buf.String(), nil
}

// runScriptFile writes the transient helper script, runs it, and removes
// it on every exit path, success and failure alike.
func runScriptFile(path, content string, run func(string) (string, error)) (string, error) {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing shortcut script: %w", err)
	}
	defer os.Remove(path)

	return run(path)
}

// entryFileName derives the .desktop file name from the shortcut name,
// e.g. "Economic Dashboard" -> "economic-dashboard.desktop".
func entryFileName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug + ".desktop"
}
