// SPDX-License-Identifier: MPL-2.0

package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"

	"github.com/lintgate/lintgate/internal/config"
	"github.com/lintgate/lintgate/internal/discovery"
	"github.com/lintgate/lintgate/internal/issue"
	"github.com/lintgate/lintgate/internal/report"
	"github.com/lintgate/lintgate/internal/runner"
	"github.com/lintgate/lintgate/internal/venv"
	"github.com/lintgate/lintgate/pkg/gatefile"
	"github.com/lintgate/lintgate/pkg/types"
)

type (
	// Request carries the inputs of one gate run.
	Request struct {
		// ExplicitRoot pins the project root and skips the marker search.
		ExplicitRoot string
		// WorkDir is where the marker search starts. Empty means the
		// process working directory.
		WorkDir string
		// ConfigPath overrides the global config file location.
		ConfigPath string
		// RuntimeOverride forces the runtime for the tool run and all
		// checks. Empty applies the configured precedence.
		RuntimeOverride gatefile.RuntimeMode
		// Tool overrides the lint tool selection. Empty selects from the
		// gatefile or pyproject.toml.
		Tool gatefile.ToolName
		// PTY attaches the tool to a pseudo-terminal so it keeps its
		// colorized output. Ignored when capturing or unsupported.
		PTY bool
		// NoChecks skips the gatefile's custom checks.
		NoChecks bool
		// KeepGoing keeps running later steps after one fails instead of
		// skipping them.
		KeepGoing bool
		// CaptureOutput buffers tool and check output into the report
		// instead of streaming it, for structured rendering.
		CaptureOutput bool
		// Verbose enables debug logging.
		Verbose bool
	}

	// Service runs the gate pipeline.
	Service interface {
		// Run executes the pipeline and returns the report plus any
		// non-fatal diagnostics. A non-nil error is a *GateError from a
		// failure before the tool invocation; once the tool has started,
		// every outcome lands in the report.
		Run(ctx context.Context, req Request) (*report.Report, []discovery.Diagnostic, error)
		// Inspect resolves the run plan (root, tool, runtime, activation)
		// without executing it. Failures classify exactly as Run's
		// pre-invocation failures do.
		Inspect(ctx context.Context, req Request) (*EnvironmentPlan, []discovery.Diagnostic, error)
	}

	// gateService is the production Service implementation.
	gateService struct {
		config config.Provider
		stdout io.Writer
		stderr io.Writer
		logger *log.Logger
	}
)

// NewService creates the production gate service. Nil arguments select
// the default provider and the process streams.
func NewService(provider config.Provider, stdout, stderr io.Writer) Service {
	if provider == nil {
		provider = config.NewProvider()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := log.NewWithOptions(stderr, log.Options{Prefix: "lintgate"})
	return &gateService{config: provider, stdout: stdout, stderr: stderr, logger: logger}
}

// Run executes the gate pipeline for one request.
func (s *gateService) Run(ctx context.Context, req Request) (*report.Report, []discovery.Diagnostic, error) {
	started := time.Now()
	logger := s.runLogger(req)

	cfg, err := s.config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(req.ConfigPath),
	})
	if err != nil {
		return nil, nil, newGateError(types.CodeConfigError, issue.ConfigLoadFailedId, err)
	}

	project, err := discovery.Resolve(discovery.Options{
		ExplicitRoot: req.ExplicitRoot,
		WorkDir:      req.WorkDir,
	})
	if err != nil {
		return nil, nil, classifyResolveError(err)
	}
	diags := project.Diagnostics
	logger.Debug("resolved project root", "root", project.Root, "marker", project.Marker)

	p := &pipeline{svc: s, req: req, cfg: cfg, project: project, logger: logger}

	toolDiags, gerr := p.selectTool()
	diags = append(diags, toolDiags...)
	if gerr != nil {
		return nil, diags, gerr
	}
	logger.Debug("selected lint tool",
		"tool", p.selection.Name, "args", p.selection.Args, "origin", p.selection.Origin)

	if gerr := p.resolveRuntimes(); gerr != nil {
		return nil, diags, gerr
	}
	if gerr := p.preflight(); gerr != nil {
		return nil, diags, gerr
	}
	p.buildRegistry()

	rep := p.execute(ctx, started)
	logger.Debug("gate finished", "verdict", rep.Verdict, "exit_code", rep.ExitCode)
	return rep, diags, nil
}

// runLogger returns the per-run logger, raised to debug when verbose.
func (s *gateService) runLogger(req Request) *log.Logger {
	if !req.Verbose {
		return s.logger
	}
	logger := s.logger.With()
	logger.SetLevel(log.DebugLevel)
	return logger
}

type (
	// pipeline carries the resolved state of one run across stages.
	pipeline struct {
		svc     *gateService
		req     Request
		cfg     *config.Config
		project *discovery.Project
		logger  *log.Logger

		selection   discovery.ToolSelection
		toolRuntime RuntimeSelection
		checkRuns   []checkPlan

		// activation is nil when no step executes on the host.
		activation *venv.Activation
		// toolPath is the resolved tool executable for host runs.
		toolPath string
		// toolScript is the tool invocation as a shell line for
		// containerized runs.
		toolScript string
		// engine is resolved once when any step is containerized.
		engine   *runner.Engine
		registry *runner.Registry
		native   *runner.NativeRunner
	}

	// checkPlan pairs a gatefile check with its resolved runtime.
	checkPlan struct {
		check   gatefile.Check
		runtime RuntimeSelection
	}
)

// selectTool picks the lint tool: a flag override wins, otherwise the
// gatefile or pyproject detection decides.
func (p *pipeline) selectTool() ([]discovery.Diagnostic, *GateError) {
	if p.req.Tool != "" {
		if err := p.req.Tool.Validate(); err != nil {
			return nil, newGateError(types.CodeConfigError, 0, err)
		}
		p.selection = discovery.ToolSelection{
			Name:   p.req.Tool,
			Args:   discovery.DefaultToolArgs(p.req.Tool),
			Origin: discovery.ToolOriginFlag,
		}
		return nil, nil
	}

	sel, diags := discovery.SelectTool(p.project)
	p.selection = sel
	return diags, nil
}

// resolveRuntimes fixes the runtime for the tool run and for every
// planned check before anything executes.
func (p *pipeline) resolveRuntimes() *GateError {
	sel, err := ResolveToolRuntime(p.req.RuntimeOverride, p.cfg)
	if err != nil {
		return newGateError(types.CodeConfigError, 0, err)
	}
	p.toolRuntime = sel

	if p.req.NoChecks || p.project.Gatefile == nil {
		return nil
	}
	for _, chk := range p.project.Gatefile.Checks {
		rt, err := ResolveCheckRuntime(chk, p.req.RuntimeOverride, p.cfg)
		if err != nil {
			return newGateError(types.CodeConfigError, 0, fmt.Errorf("check %q: %w", chk.Name, err))
		}
		p.checkRuns = append(p.checkRuns, checkPlan{check: chk, runtime: rt})
	}
	return nil
}

// preflight resolves everything the run needs before the tool is invoked,
// so environment problems surface as classified errors rather than
// mid-run failures.
func (p *pipeline) preflight() *GateError {
	if p.needsContainer() {
		engine, err := runner.ResolveEngine(string(p.cfg.ContainerEngine))
		if err != nil {
			return newGateError(types.CodeEnvironmentError, issue.ContainerEngineNotFoundId, err)
		}
		p.engine = engine
		p.logger.Debug("resolved container engine", "engine", engine.Name())
	}

	if p.toolRuntime.Mode() == gatefile.RuntimeContainer {
		script, err := shellLine(append([]string{string(p.selection.Name)}, p.selection.Args...))
		if err != nil {
			return newGateError(types.CodeConfigError, 0, err)
		}
		p.toolScript = script
	}

	if !p.needsActivation() {
		return nil
	}

	venvDir := gatefile.DefaultVenvDir
	if p.project.Gatefile != nil {
		venvDir = p.project.Gatefile.VenvDir()
	}
	act, err := venv.Activate(p.project.Root, venvDir)
	if err != nil {
		return classifyVenvError(err)
	}
	p.activation = act
	p.logger.Debug("activated virtualenv", "dir", act.Root)

	if p.toolRuntime.Mode() != gatefile.RuntimeContainer {
		path, err := act.ResolveTool(p.selection.Name, p.fallbackPolicy())
		if err != nil {
			return classifyToolResolveError(err)
		}
		p.toolPath = path
		p.logger.Debug("resolved lint tool", "tool", p.selection.Name, "path", path)
	}
	return nil
}

// needsContainer reports whether the tool run or any planned check
// executes in a container.
func (p *pipeline) needsContainer() bool {
	if p.toolRuntime.Mode() == gatefile.RuntimeContainer {
		return true
	}
	for _, cp := range p.checkRuns {
		if cp.runtime.Mode() == gatefile.RuntimeContainer {
			return true
		}
	}
	return false
}

// needsActivation reports whether any step executes on the host and
// therefore needs the virtualenv environment. A fully containerized run
// takes its toolchain from the image instead.
func (p *pipeline) needsActivation() bool {
	if p.toolRuntime.Mode() != gatefile.RuntimeContainer {
		return true
	}
	for _, cp := range p.checkRuns {
		if cp.runtime.Mode() != gatefile.RuntimeContainer {
			return true
		}
	}
	return false
}

// fallbackPolicy is the effective tool-resolution fallback: the
// gatefile's when set, otherwise the global config's.
func (p *pipeline) fallbackPolicy() gatefile.FallbackPolicy {
	if p.selection.Fallback != "" {
		return p.selection.Fallback
	}
	return gatefile.FallbackPolicy(p.cfg.Tool.Fallback)
}

// buildRegistry wires the runners the plan needs. The container runner
// carries the config-level image; a per-check image override is bound at
// dispatch time instead.
func (p *pipeline) buildRegistry() {
	reg := runner.NewRegistry()
	native := runner.NewNativeRunner()
	reg.Register(runner.TypeNative, native)
	reg.Register(runner.TypeVirtual, runner.NewVirtualRunner())
	if p.engine != nil {
		reg.Register(runner.TypeContainer, runner.NewContainerRunner(p.engine, p.containerImage("")))
	}
	p.native = native
	p.registry = reg
}

// containerImage picks the image for a containerized step: the per-check
// override, then the config image, then the built-in default.
func (p *pipeline) containerImage(override string) string {
	if override != "" {
		return override
	}
	if p.cfg.ContainerImage != "" {
		return p.cfg.ContainerImage
	}
	return config.DefaultContainerImage
}

// execute runs the tool and the planned checks, assembling the report.
// A failed step skips the remaining ones unless the request keeps going;
// skipped checks are still recorded.
func (p *pipeline) execute(ctx context.Context, started time.Time) *report.Report {
	rep := &report.Report{
		Root:      p.project.Root,
		StartedAt: started,
	}

	rep.Tool = p.runTool(ctx)
	failed := rep.Tool.Normalized != types.CodeSuccess

	for _, cp := range p.checkRuns {
		if failed && !p.req.KeepGoing {
			rep.Checks = append(rep.Checks, report.CheckResult{
				Name:    string(cp.check.Name),
				Runtime: string(cp.runtime.Mode()),
				Skipped: true,
			})
			continue
		}
		res := p.runCheck(ctx, cp)
		rep.Checks = append(rep.Checks, res)
		if res.Normalized != types.CodeSuccess {
			failed = true
		}
	}

	rep.ExitCode = types.CodeSuccess
	if failed {
		rep.ExitCode = types.CodeLintFailure
	}
	rep.Verdict = report.VerdictFor(rep.ExitCode)
	rep.Duration = report.Duration(time.Since(started))
	return rep
}

// runTool invokes the lint tool over the project tree: exactly one
// blocking wait, output streamed through unmodified unless captured.
func (p *pipeline) runTool(ctx context.Context) report.ToolRun {
	execCtx := runner.NewExecutionContext(p.project.Root, p.hostEnv())
	execCtx.Context = ctx
	execCtx.Stdout = p.svc.stdout
	execCtx.Stderr = p.svc.stderr

	if p.toolRuntime.Mode() == gatefile.RuntimeContainer {
		execCtx.Script = p.toolScript
	} else {
		execCtx.Argv = append([]string{p.toolPath}, p.selection.Args...)
	}

	p.logger.Debug("running lint tool",
		"tool", p.selection.Name, "runtime", p.toolRuntime.Mode(), "origin", p.toolRuntime.Origin())

	start := time.Now()
	var result *runner.Result
	if p.usePTY() {
		result = p.native.ExecutePTY(execCtx)
	} else {
		result = p.dispatch(runner.Type(p.toolRuntime.Mode()), execCtx)
	}

	run := report.ToolRun{
		Name:       string(p.selection.Name),
		Path:       p.toolPath,
		Args:       p.selection.Args,
		Origin:     p.selection.Origin.String(),
		ExitCode:   result.ExitCode,
		Normalized: result.Normalized(),
		Duration:   report.Duration(time.Since(start)),
	}
	if p.req.CaptureOutput {
		run.Output = result.Output
		run.ErrOutput = result.ErrOutput
	}
	if result.Error != nil {
		run.Error = result.Error.Error()
		p.logger.Error("lint tool did not run", "tool", p.selection.Name, "error", result.Error)
	}
	return run
}

// usePTY decides whether the tool run gets a pseudo-terminal.
func (p *pipeline) usePTY() bool {
	if !p.req.PTY || p.req.CaptureOutput || p.toolRuntime.Mode() != gatefile.RuntimeNative {
		return false
	}
	if !p.native.SupportsPTY() {
		p.logger.Warn("pty is not supported on this platform, streaming instead")
		return false
	}
	return true
}

// runCheck executes one custom check on its resolved runtime.
func (p *pipeline) runCheck(ctx context.Context, cp checkPlan) report.CheckResult {
	execCtx := runner.NewExecutionContext(p.project.Root, p.checkEnv(cp))
	execCtx.Context = ctx
	execCtx.Script = cp.check.Script
	execCtx.Stdout = p.svc.stdout
	execCtx.Stderr = p.svc.stderr

	p.logger.Debug("running check", "check", cp.check.Name, "runtime", cp.runtime.Mode())

	start := time.Now()
	var result *runner.Result
	if cp.runtime.Mode() == gatefile.RuntimeContainer && cp.check.Image != "" {
		result = p.runInImage(execCtx, cp.check.Image)
	} else {
		result = p.dispatch(runner.Type(cp.runtime.Mode()), execCtx)
	}

	res := report.CheckResult{
		Name:       string(cp.check.Name),
		Runtime:    string(cp.runtime.Mode()),
		ExitCode:   result.ExitCode,
		Normalized: result.Normalized(),
		Duration:   report.Duration(time.Since(start)),
	}
	if p.req.CaptureOutput {
		res.Output = result.Output
		res.ErrOutput = result.ErrOutput
	}
	if result.Error != nil {
		res.Error = result.Error.Error()
		p.logger.Error("check did not run", "check", cp.check.Name, "error", result.Error)
	}
	return res
}

// runInImage executes one check on a container runner bound to the
// check's image override.
func (p *pipeline) runInImage(execCtx *runner.ExecutionContext, image string) *runner.Result {
	rn := runner.NewContainerRunner(p.engine, image)
	if p.req.CaptureOutput {
		return rn.ExecuteCapture(execCtx)
	}
	return rn.Execute(execCtx)
}

// dispatch runs the context through the registry, capturing instead of
// streaming when the request asks for it.
func (p *pipeline) dispatch(typ runner.Type, execCtx *runner.ExecutionContext) *runner.Result {
	if p.req.CaptureOutput {
		return p.registry.ExecuteCapture(typ, execCtx)
	}
	return p.registry.Execute(typ, execCtx)
}

// hostEnv is the environment for host-side runs: the activation's
// explicit environment over the current process environment. Container
// runs take their environment from the image instead.
func (p *pipeline) hostEnv() []string {
	if p.activation == nil {
		return nil
	}
	return p.activation.Environ(os.Environ())
}

// checkEnv is the environment for one check run.
func (p *pipeline) checkEnv(cp checkPlan) []string {
	if cp.runtime.Mode() == gatefile.RuntimeContainer {
		return nil
	}
	return p.hostEnv()
}

// shellLine renders argv as a single shell command line, quoting each
// word for the container's /bin/sh.
func shellLine(argv []string) (string, error) {
	quoted := make([]string, len(argv))
	for i, word := range argv {
		q, err := syntax.Quote(word, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("cannot quote argument %q: %w", word, err)
		}
		quoted[i] = q
	}
	return strings.Join(quoted, " "), nil
}
