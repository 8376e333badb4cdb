package cli

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/distspan/ist/pkg/builder"
	"github.com/distspan/ist/pkg/cohort"
	"github.com/distspan/ist/pkg/config"
	"github.com/distspan/ist/pkg/errors"
	"github.com/distspan/ist/pkg/history"
	"github.com/distspan/ist/pkg/observability"
	"github.com/distspan/ist/pkg/statusserver"
)

// buildFlags holds the `ist build` flag values.
type buildFlags struct {
	workers    int
	rank       int
	transport  string
	redisAddr  string
	buildID    string
	out        string
	statusAddr string
	historyURI string
	serial     bool
	tui        bool
}

// buildCommand implements `ist build <n>`.
func (c *CLI) buildCommand() *cobra.Command {
	var f buildFlags
	cfg, _ := config.LoadDefault()

	cmd := &cobra.Command{
		Use:   "build <n>",
		Short: "Build the n-1 independent spanning trees of B_n",
		Long: `Build constructs the n-1 edge-disjoint independent spanning trees rooted at
the identity permutation of the bubble-sort graph B_n, and writes each as a
Graphviz DOT file under <out>/<n>/Tree_<n>_<t>.dot.

With --transport=local (the default), a single invocation simulates the
whole cohort of --workers processes in one binary. With --transport=redis,
each invocation is one rank of a cohort launched as separate processes;
every process must be given the same --workers, --redis-addr and
--build-id, and a distinct --rank.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeUsage, err, "parse n %q", args[0])
			}
			return c.runBuild(cmd.Context(), n, f)
		},
	}

	cmd.Flags().IntVarP(&f.workers, "workers", "w", cfg.Workers, "cohort size")
	cmd.Flags().IntVar(&f.rank, "rank", 0, "this process's rank (transport=redis only)")
	cmd.Flags().StringVar(&f.transport, "transport", cfg.Transport, "cohort transport: local or redis")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", cfg.RedisAddr, "redis address (transport=redis)")
	cmd.Flags().StringVar(&f.buildID, "build-id", "", "shared cohort identifier (transport=redis; generated if empty)")
	cmd.Flags().StringVar(&f.out, "out", cfg.OutDir, "output directory root")
	cmd.Flags().StringVar(&f.statusAddr, "status-addr", cfg.StatusAddr, "listen address for the coordinator status server (disabled when empty)")
	cmd.Flags().StringVar(&f.historyURI, "history-uri", cfg.HistoryURI, "MongoDB URI for run-history recording (disabled when empty)")
	cmd.Flags().BoolVar(&f.serial, "serial", false, "run the single-process serial fallback, ignoring --workers/--transport")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "show a live progress table instead of log output")

	return cmd
}

// buildAllCommand implements `ist build-all`, running build for every n in
// [perm.MinN, perm.MaxN].
func (c *CLI) buildAllCommand() *cobra.Command {
	var f buildFlags
	cfg, _ := config.LoadDefault()

	cmd := &cobra.Command{
		Use:   "build-all",
		Short: "Build every B_n from n=2 to n=10",
		RunE: func(cmd *cobra.Command, args []string) error {
			for n := 2; n <= 10; n++ {
				if err := c.runBuild(cmd.Context(), n, f); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&f.workers, "workers", "w", cfg.Workers, "cohort size")
	cmd.Flags().StringVar(&f.transport, "transport", cfg.Transport, "cohort transport: local or redis")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", cfg.RedisAddr, "redis address (transport=redis)")
	cmd.Flags().StringVar(&f.out, "out", cfg.OutDir, "output directory root")
	cmd.Flags().StringVar(&f.historyURI, "history-uri", cfg.HistoryURI, "MongoDB URI for run-history recording (disabled when empty)")
	cmd.Flags().BoolVar(&f.serial, "serial", false, "run the single-process serial fallback for every n")

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, n int, f buildFlags) error {
	ctx = builder.WithLogger(ctx, c.Logger)

	if f.serial {
		return c.runBuildSerial(ctx, n, f.out)
	}

	switch f.transport {
	case "", "local":
		return c.runBuildLocal(ctx, n, f)
	case "redis":
		return c.runBuildRedis(ctx, n, f)
	default:
		return errors.New(errors.ErrCodeUsage, "unknown transport %q (want local or redis)", f.transport)
	}
}

func (c *CLI) runBuildSerial(ctx context.Context, n int, out string) error {
	spin := newSpinnerWithContext(ctx, fmt.Sprintf("building B_%d (serial)", n))
	spin.Start()

	res, err := builder.RunSerial(ctx, n, out)
	if err != nil {
		spin.StopWithError(fmt.Sprintf("build failed: %s", err))
		return err
	}

	spin.StopWithSuccess(fmt.Sprintf("wrote %d trees", n-1))
	printStats(res.VertexCount, res.EdgeCount, n-1)
	return nil
}

// runBuildLocal simulates the whole cohort of f.workers ranks within this
// process over an in-memory transport.
func (c *CLI) runBuildLocal(ctx context.Context, n int, f buildFlags) error {
	recorder, err := openRecorder(ctx, f.historyURI)
	if err != nil {
		return err
	}
	defer recorder.Close(ctx)

	srv, stopServer := c.maybeStartStatusServer(f.statusAddr)
	defer stopServer()

	transport := cohort.NewLocal(f.workers)
	defer transport.Close()

	program, tuiDone, tuiHooks := c.maybeStartTUI(f.tui, n, f.workers)
	defer observability.Reset()

	var hooks []observability.BuildHooks
	if tuiHooks != nil {
		hooks = append(hooks, tuiHooks)
	}
	if srv != nil {
		hooks = append(hooks, newStatusBuildHooks(srv, n, f.workers))
	}
	if len(hooks) > 0 {
		observability.SetBuildHooks(newMultiBuildHooks(hooks...))
	}

	var spin *Spinner
	if program == nil {
		spin = newSpinnerWithContext(ctx, fmt.Sprintf("building B_%d (%d workers)", n, f.workers))
		spin.Start()
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	results := make([]builder.Result, f.workers)
	for r := 0; r < f.workers; r++ {
		r := r
		g.Go(func() error {
			opts := builder.Options{N: n, Rank: r, World: f.workers, OutDir: f.out}
			res, err := builder.Run(gctx, opts, transport)
			if err != nil {
				return err
			}
			results[r] = res
			return nil
		})
	}
	buildErr := g.Wait()

	if program != nil {
		program.Send(BuildDoneMsg{Err: buildErr})
		<-tuiDone
	} else if buildErr != nil {
		spin.StopWithError(fmt.Sprintf("build failed: %s", buildErr))
	} else {
		spin.Stop()
	}

	if buildErr != nil {
		return buildErr
	}

	res := results[0]
	if srv != nil {
		srv.SetStatus(statusserver.Status{
			Phase: "done", N: n, World: f.workers,
			VertexCount: res.VertexCount, EdgeCount: res.EdgeCount,
			TreesDone: n - 1, TreesTotal: n - 1,
		})
	}
	if err := recorder.Record(ctx, history.Run{
		N: n, World: f.workers, VertexCount: res.VertexCount, EdgeCount: res.EdgeCount,
		Duration: time.Since(start).String(), StartedAt: start,
	}); err != nil {
		c.Logger.Warn("history record failed", "err", err)
	}

	if program == nil {
		printSuccess("wrote %d trees in %s", n-1, time.Since(start).Round(time.Millisecond))
		printStats(res.VertexCount, res.EdgeCount, n-1)
	}
	return nil
}

// runBuildRedis runs a single rank of a cohort whose ranks are separate
// processes coordinating over Redis.
func (c *CLI) runBuildRedis(ctx context.Context, n int, f buildFlags) error {
	if f.redisAddr == "" {
		return errors.New(errors.ErrCodeUsage, "--redis-addr is required with --transport=redis")
	}
	if err := errors.ValidateRank(f.rank, f.workers); err != nil {
		return err
	}

	transport := cohort.NewRedis(cohort.RedisConfig{Addr: f.redisAddr, BuildID: f.buildID})
	defer transport.Close()

	var recorder history.Recorder = history.NoopRecorder{}
	if f.rank == 0 {
		r, err := openRecorder(ctx, f.historyURI)
		if err != nil {
			return err
		}
		recorder = r
		defer recorder.Close(ctx)
	}

	var srv *statusserver.Server
	if f.rank == 0 {
		s, stop := c.maybeStartStatusServer(f.statusAddr)
		srv = s
		defer stop()
		if srv != nil {
			observability.SetBuildHooks(newStatusBuildHooks(srv, n, f.workers))
			defer observability.Reset()
		}
	}

	printInfo("building B_%d (rank %d of %d, redis cohort)", n, f.rank, f.workers)
	start := time.Now()

	opts := builder.Options{N: n, Rank: f.rank, World: f.workers, OutDir: f.out, BuildID: f.buildID}
	res, err := builder.Run(ctx, opts, transport)
	if err != nil {
		printError("build failed: %s", err)
		return err
	}

	if f.rank != 0 {
		printSuccess("rank %d sent its edges to the coordinator", f.rank)
		return nil
	}

	if srv != nil {
		srv.SetStatus(statusserver.Status{
			Phase: "done", N: n, World: f.workers,
			VertexCount: res.VertexCount, EdgeCount: res.EdgeCount,
			TreesDone: n - 1, TreesTotal: n - 1,
		})
	}
	if err := recorder.Record(ctx, history.Run{
		N: n, World: f.workers, VertexCount: res.VertexCount, EdgeCount: res.EdgeCount,
		Duration: time.Since(start).String(), StartedAt: start,
	}); err != nil {
		c.Logger.Warn("history record failed", "err", err)
	}

	printSuccess("wrote %d trees in %s", n-1, time.Since(start).Round(time.Millisecond))
	printStats(res.VertexCount, res.EdgeCount, n-1)
	return nil
}

// openRecorder builds the history.Recorder for --history-uri, or a
// NoopRecorder when it is empty.
func openRecorder(ctx context.Context, uri string) (history.Recorder, error) {
	if uri == "" {
		return history.NoopRecorder{}, nil
	}
	return history.NewMongoRecorder(ctx, uri)
}

// maybeStartStatusServer starts the status server in the background when
// addr is non-empty, returning it and a stop function that is always safe
// to call.
func (c *CLI) maybeStartStatusServer(addr string) (*statusserver.Server, func()) {
	if addr == "" {
		return nil, func() {}
	}
	srv := statusserver.New()
	httpSrv := &http.Server{Addr: addr, Handler: srv.Handler()}
	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.Logger.Error("status server", "err", err)
		}
	}()
	return srv, func() { _ = httpSrv.Close() }
}

// maybeStartTUI launches the bubbletea progress program when enabled and
// returns a BuildHooks implementation that forwards generation events into
// it. The returned channel closes once the program's event loop exits. The
// caller is responsible for registering the returned hooks (possibly
// composed with others, via newMultiBuildHooks) through
// observability.SetBuildHooks.
func (c *CLI) maybeStartTUI(enabled bool, n, world int) (*tea.Program, chan struct{}, observability.BuildHooks) {
	if !enabled {
		return nil, nil, nil
	}

	model := NewBuildProgressModel(n, world)
	program := tea.NewProgram(model)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = program.Run()
	}()

	return program, done, &tuiBuildHooks{program: program}
}

// tuiBuildHooks forwards per-rank generation progress into a running
// BuildProgressModel.
type tuiBuildHooks struct {
	observability.NoopBuildHooks
	program *tea.Program
}

func (h *tuiBuildHooks) OnGenerateStart(ctx context.Context, rank, treeLo, treeHi int) {
	h.program.Send(RankUpdateMsg{Rank: rank, TreeLo: treeLo, TreeHi: treeHi, Phase: "generating"})
}

func (h *tuiBuildHooks) OnGenerateComplete(ctx context.Context, rank, edgeCount int, duration time.Duration, err error) {
	phase := "sent"
	if err != nil {
		phase = "error"
	}
	h.program.Send(RankUpdateMsg{Rank: rank, EdgeCount: edgeCount, Phase: phase, Done: err == nil})
}

// statusBuildHooks keeps the coordinator's status server updated as the
// build pipeline moves through each stage, rather than setting the status
// snapshot once after the whole build has already finished.
type statusBuildHooks struct {
	observability.NoopBuildHooks
	srv   *statusserver.Server
	n     int
	world int
}

func newStatusBuildHooks(srv *statusserver.Server, n, world int) *statusBuildHooks {
	return &statusBuildHooks{srv: srv, n: n, world: world}
}

func (h *statusBuildHooks) OnTableInitComplete(ctx context.Context, n, vertexCount int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	h.srv.SetStatus(statusserver.Status{
		Phase: "table_init", N: h.n, World: h.world,
		VertexCount: vertexCount, TreesTotal: h.n - 1,
	})
}

func (h *statusBuildHooks) OnGenerateComplete(ctx context.Context, rank, edgeCount int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	h.srv.SetStatus(statusserver.Status{
		Phase: "generating", N: h.n, World: h.world,
		EdgeCount: edgeCount, TreesTotal: h.n - 1,
	})
}

func (h *statusBuildHooks) OnAggregateComplete(ctx context.Context, edgeCount int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	h.srv.SetStatus(statusserver.Status{
		Phase: "aggregating", N: h.n, World: h.world,
		EdgeCount: edgeCount, TreesTotal: h.n - 1,
	})
}

func (h *statusBuildHooks) OnWriteComplete(ctx context.Context, treeCount int, _ time.Duration, err error) {
	phase := "writing"
	if err != nil {
		phase = "error"
	} else if treeCount == h.n-1 {
		phase = "done"
	}
	h.srv.SetStatus(statusserver.Status{
		Phase: phase, N: h.n, World: h.world,
		TreesDone: treeCount, TreesTotal: h.n - 1,
	})
}

// multiBuildHooks fans a single build event out to several registered
// listeners, so --tui and --status-addr can both be set without one
// observability.SetBuildHooks call silently overwriting the other.
type multiBuildHooks struct {
	observability.NoopBuildHooks
	hooks []observability.BuildHooks
}

func newMultiBuildHooks(hooks ...observability.BuildHooks) *multiBuildHooks {
	return &multiBuildHooks{hooks: hooks}
}

func (m *multiBuildHooks) OnTableInitStart(ctx context.Context, n int) {
	for _, h := range m.hooks {
		h.OnTableInitStart(ctx, n)
	}
}

func (m *multiBuildHooks) OnTableInitComplete(ctx context.Context, n, vertexCount int, d time.Duration, err error) {
	for _, h := range m.hooks {
		h.OnTableInitComplete(ctx, n, vertexCount, d, err)
	}
}

func (m *multiBuildHooks) OnGenerateStart(ctx context.Context, rank, treeLo, treeHi int) {
	for _, h := range m.hooks {
		h.OnGenerateStart(ctx, rank, treeLo, treeHi)
	}
}

func (m *multiBuildHooks) OnGenerateComplete(ctx context.Context, rank, edgeCount int, d time.Duration, err error) {
	for _, h := range m.hooks {
		h.OnGenerateComplete(ctx, rank, edgeCount, d, err)
	}
}

func (m *multiBuildHooks) OnAggregateStart(ctx context.Context, workerCount int) {
	for _, h := range m.hooks {
		h.OnAggregateStart(ctx, workerCount)
	}
}

func (m *multiBuildHooks) OnAggregateComplete(ctx context.Context, edgeCount int, d time.Duration, err error) {
	for _, h := range m.hooks {
		h.OnAggregateComplete(ctx, edgeCount, d, err)
	}
}

func (m *multiBuildHooks) OnWriteStart(ctx context.Context, treeCount int, outDir string) {
	for _, h := range m.hooks {
		h.OnWriteStart(ctx, treeCount, outDir)
	}
}

func (m *multiBuildHooks) OnWriteComplete(ctx context.Context, treeCount int, d time.Duration, err error) {
	for _, h := range m.hooks {
		h.OnWriteComplete(ctx, treeCount, d, err)
	}
}
