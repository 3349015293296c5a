// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ProjectRootNotFoundId Id = iota + 1
	GatefileParseErrorId
	VenvNotFoundId
	VenvInvalidId
	ToolNotFoundId
	RuntimeNotAvailableId
	ContainerEngineNotFoundId
	ConfigLoadFailedId
	ShellNotFoundId
	PermissionDeniedId
	CheckFailedId
	WatchStartFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	projectRootNotFoundIssue = &Issue{
		id: ProjectRootNotFoundId,
		mdMsg: `
# No project root found!

We walked up from the current directory but couldn't find anything that
looks like a lintable Python project.

## Markers we look for (in order of precedence):
1. A gatefile.cue
2. A pyproject.toml
3. A .venv directory

## Things you can try:
- Run lintgate from inside your project:
~~~
$ cd /path/to/your/project
$ lintgate check
~~~

- Point lintgate at the project explicitly:
~~~
$ lintgate check --project /path/to/your/project
~~~

- Create a gatefile in your project root:
~~~
$ lintgate init
~~~`,
	}

	gatefileParseErrorIssue = &Issue{
		id: GatefileParseErrorId,
		mdMsg: `
# Failed to parse gatefile!

Your gatefile.cue contains syntax errors or invalid configuration.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Unknown field names
- Invalid values for known fields
- Missing required fields (name, script for checks)

## Things you can try:
- Check the error message above for the specific line/column
- Validate your CUE syntax using the cue command-line tool
- Run with verbose mode for more details:
~~~
$ lintgate --verbose check
~~~

## Example of a valid gatefile:
~~~cue
venv: ".venv"

tool: {
	name: "ruff"
	args: ["check", "."]
}

checks: [
	{
		name:   "typecheck"
		script: "mypy src/"
	},
]
~~~`,
	}

	venvNotFoundIssue = &Issue{
		id: VenvNotFoundId,
		mdMsg: `
# Virtual environment not found!

The project's Python virtual environment does not exist, so the lint
tool cannot be resolved. A missing environment always fails the gate.

## Things you can try:
- Create the environment in the project root:
~~~
$ python -m venv .venv
$ .venv/bin/pip install ruff
~~~

- If your environment lives elsewhere, point the gatefile at it:
~~~cue
venv: "envs/lint"
~~~

- Check the environment path with:
~~~
$ lintgate env
~~~`,
	}

	venvInvalidIssue = &Issue{
		id: VenvInvalidId,
		mdMsg: `
# Virtual environment looks broken!

The configured environment directory exists but doesn't have the layout
of a Python venv (bin/ or Scripts/ plus a pyvenv.cfg).

## Common causes:
- The directory was created by hand instead of ` + "`python -m venv`" + `
- A partial or interrupted venv creation
- The gatefile points at the wrong directory

## Things you can try:
- Recreate the environment from scratch:
~~~
$ rm -rf .venv
$ python -m venv .venv
~~~

- Inspect what lintgate resolved:
~~~
$ lintgate env
~~~`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Lint tool not found!

The configured lint tool is not installed in the project's virtual
environment.

## Things you can try:
- Install the tool into the environment:
~~~
$ .venv/bin/pip install ruff
~~~

- Check which tool lintgate expects:
~~~
$ lintgate env
~~~

- Allow falling back to a system-wide install (use sparingly, it
  weakens reproducibility):
~~~cue
tool: {
	name:     "ruff"
	fallback: "system"
}
~~~`,
	}

	runtimeNotAvailableIssue = &Issue{
		id: RuntimeNotAvailableId,
		mdMsg: `
# Runtime not available!

The runtime requested for a check is not available on your system.

## Available runtimes:
- **native**: Uses your system's default shell (bash, sh, powershell, etc.)
- **virtual**: Uses the built-in mvdan/sh interpreter
- **container**: Runs the check inside a Docker/Podman container

## Things you can try:
- Change the runtime for the check in your gatefile:
~~~cue
checks: [
	{
		name:    "typecheck"
		script:  "mypy src/"
		runtime: "virtual"
	},
]
~~~

- Or change the default runtime in your config:
~~~cue
default_runtime: "virtual"
~~~`,
	}

	containerEngineNotFoundIssue = &Issue{
		id: ContainerEngineNotFoundId,
		mdMsg: `
# Container engine not found!

A check uses the 'container' runtime but no container engine is available.

## Supported container engines:
- **Podman** (recommended for rootless containers)
- **Docker**

## Things you can try:
- Install Podman:
  - Linux: ` + "`sudo apt install podman`" + ` or ` + "`sudo dnf install podman`" + `
  - macOS: ` + "`brew install podman`" + `
  - Windows: Download from https://podman.io

- Install Docker:
  - https://docs.docker.com/get-docker/

- Switch the check to a different runtime:
~~~cue
checks: [
	{
		name:    "typecheck"
		script:  "mypy src/"
		runtime: "virtual"
	},
]
~~~

- Configure your preferred engine in your lintgate config:
~~~cue
container_engine: "podman"  // or "docker"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the lintgate configuration file.

## Configuration file locations:
- Linux: ~/.config/lintgate/config.cue
- macOS: ~/Library/Application Support/lintgate/config.cue
- Windows: %APPDATA%\lintgate\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ lintgate config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/lintgate/config.cue
~~~

## Example configuration:
~~~cue
container_engine: "podman"
default_runtime:  "native"

ui: {
	color_scheme: "auto"
	verbose:      false
}
~~~`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# Shell not found!

Could not find a suitable shell for the 'native' runtime.

## Shells we look for:
- Linux/macOS: $SHELL, bash, sh
- Windows: pwsh, powershell, cmd

## Things you can try:
- Install bash or another POSIX shell
- Set the SHELL environment variable
- Use the 'virtual' runtime instead (built-in shell):
~~~cue
default_runtime: "virtual"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The lint tool binary is not executable
- Trying to write to a protected directory
- Container engine requires elevated permissions

## Things you can try:
- Check file/directory permissions
- Reinstall the tool into the environment:
~~~
$ .venv/bin/pip install --force-reinstall ruff
~~~

- For containers, ensure you're in the docker/podman group:
~~~
$ sudo usermod -aG docker $USER
~~~

- Use rootless containers with Podman`,
	}

	checkFailedIssue = &Issue{
		id: CheckFailedId,
		mdMsg: `
# A check failed to run!

A check's script could not be executed properly. This is an execution
failure, not a lint finding.

## Common causes:
- Command not found in PATH
- Permission denied
- Syntax error in the script
- Missing dependencies inside the container image

## Things you can try:
- Run with verbose mode for more details:
~~~
$ lintgate --verbose check
~~~

- Test the script manually in your shell
- For container checks, make sure the image has the required tools`,
	}

	watchStartFailedIssue = &Issue{
		id: WatchStartFailedId,
		mdMsg: `
# Failed to start the file watcher!

lintgate could not set up filesystem notifications for watch mode.

## Common causes:
- Too many inotify watches in use (Linux)
- The watched directory disappeared
- The filesystem does not support change notification

## Things you can try:
- On Linux, raise the inotify limits:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~

- Narrow the watch patterns in your gatefile:
~~~cue
watch: {
	patterns: ["src/**/*.py"]
}
~~~

- Fall back to one-shot runs with ` + "`lintgate check`" + ``,
	}

	issues = map[Id]*Issue{
		projectRootNotFoundIssue.Id():     projectRootNotFoundIssue,
		gatefileParseErrorIssue.Id():      gatefileParseErrorIssue,
		venvNotFoundIssue.Id():            venvNotFoundIssue,
		venvInvalidIssue.Id():             venvInvalidIssue,
		toolNotFoundIssue.Id():            toolNotFoundIssue,
		runtimeNotAvailableIssue.Id():     runtimeNotAvailableIssue,
		containerEngineNotFoundIssue.Id(): containerEngineNotFoundIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		shellNotFoundIssue.Id():           shellNotFoundIssue,
		permissionDeniedIssue.Id():        permissionDeniedIssue,
		checkFailedIssue.Id():             checkFailedIssue,
		watchStartFailedIssue.Id():        watchStartFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
