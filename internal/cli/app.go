package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"location-lookup/internal/adapters/feed"
	"location-lookup/internal/adapters/parser"
	"location-lookup/internal/adapters/position"
	"location-lookup/internal/config"
	"location-lookup/internal/domain"
	"location-lookup/internal/platform/obs"
	"location-lookup/internal/ports"
	"location-lookup/internal/render"
	"location-lookup/internal/services"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInvalid = 2
)

const usage = `usage: locator [global flags] <command> [command flags]

commands:
  categories                       list categories
  regions                          list regions
  near   -category C [-lat X -lng Y | -locate] [-page N]
  region -region R -category C [-page N]

global flags:
`

// App runs one locator invocation against the configured feed.
type App struct {
	Config config.Config
	Log    *zap.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Terminal reports whether stdin and stdout are attached to a terminal;
	// it decides -interactive=auto.
	Terminal func() bool
}

type globalFlags struct {
	export      string
	interactive string
}

// Run parses args, runs the command and returns the process exit code.
func (a *App) Run(ctx context.Context, args []string) int {
	if a.Log == nil {
		a.Log = zap.NewNop()
	}

	cfg := a.Config
	var g globalFlags

	fs := flag.NewFlagSet("locator", flag.ContinueOnError)
	fs.SetOutput(a.Stderr)
	fs.StringVar(&cfg.Feed.URL, "feed", cfg.Feed.URL, "feed URL, file path, or - for stdin")
	fs.StringVar(&cfg.Feed.Format, "format", cfg.Feed.Format, "feed format: csv or xlsx (default: detect)")
	fs.StringVar(&cfg.Feed.Parser, "parser", cfg.Feed.Parser, "csv parser: split or csv")
	fs.BoolVar(&cfg.Feed.Strict, "strict", cfg.Feed.Strict, "fail on malformed feed rows")
	fs.StringVar(&g.export, "export", "", "also write all results to this .xlsx file")
	fs.StringVar(&g.interactive, "interactive", "auto", "page interactively: auto, true or false")
	fs.Usage = func() {
		fmt.Fprint(a.Stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitInvalid
	}
	cfg.Feed.Format = strings.ToLower(cfg.Feed.Format)
	cfg.Feed.Parser = strings.ToLower(cfg.Feed.Parser)
	if err := cfg.Validate(); err != nil {
		render.Notice(a.Stderr, err.Error())
		return ExitInvalid
	}

	interactive, err := a.interactive(g.interactive)
	if err != nil {
		render.Notice(a.Stderr, err.Error())
		return ExitInvalid
	}

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return ExitInvalid
	}

	cmd := &command{app: a, cfg: cfg, export: g.export, interactive: interactive}

	switch rest[0] {
	case "categories":
		err = cmd.list(ctx, rest[1:], cmd.listCategories)
	case "regions":
		err = cmd.list(ctx, rest[1:], cmd.listRegions)
	case "near":
		err = cmd.near(ctx, rest[1:])
	case "region":
		err = cmd.region(ctx, rest[1:])
	default:
		render.Notice(a.Stderr, fmt.Sprintf("unknown command %q", rest[0]))
		fs.Usage()
		return ExitInvalid
	}

	return a.exitCode(err)
}

func (a *App) interactive(mode string) (bool, error) {
	switch strings.ToLower(mode) {
	case "auto":
		return a.Terminal != nil && a.Terminal(), nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("-interactive must be auto, true or false, got %q", mode)
}

// exitCode maps a command error onto the process exit code and tells the
// user about it.
func (a *App) exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, flag.ErrHelp):
		return ExitOK
	case errors.Is(err, errUsage):
		return ExitInvalid
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPositionUnavailable),
		errors.Is(err, domain.ErrPositionUnsupported),
		errors.Is(err, domain.ErrPageOutOfRange):
		render.Notice(a.Stderr, err.Error())
		return ExitInvalid
	default:
		render.Notice(a.Stderr, err.Error())
		return ExitFailure
	}
}

// errUsage marks a command line the flag package already reported.
var errUsage = errors.New("usage")

type command struct {
	app         *App
	cfg         config.Config
	export      string
	interactive bool
}

func (c *command) settings() services.Settings {
	return services.Settings{
		RadiusMeters: c.cfg.Query.RadiusMeters,
		PageSize:     c.cfg.Query.PageSize,
		Speeds: services.TravelSpeeds{
			WalkMetersPerMinute: c.cfg.Query.WalkMetersPerMinute,
			RideMetersPerMinute: c.cfg.Query.RideMetersPerMinute,
		},
	}
}

func (c *command) loader() (*services.Loader, error) {
	src, err := feed.NewSource(c.cfg.Feed.URL, feed.Options{
		Timeout:     c.cfg.Feed.Timeout,
		MaxAttempts: c.cfg.Feed.MaxAttempts,
		Backoff:     c.cfg.Feed.Backoff,
	}, c.app.Log)
	if err != nil {
		return nil, err
	}

	format := c.cfg.Feed.Format
	if format == "" {
		format = parser.DetectFormat(c.cfg.Feed.URL)
	}
	p, err := parser.New(format, c.cfg.Feed.Parser)
	if err != nil {
		return nil, err
	}

	return services.NewLoader(src, p, c.cfg.Feed.Strict, c.app.Log), nil
}

func (c *command) load(ctx context.Context) (*domain.Dataset, error) {
	l, err := c.loader()
	if err != nil {
		return nil, err
	}
	res, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return res.Dataset, nil
}

// loadAndLocate fetches the dataset and resolves the current position at
// the same time. Either failure cancels the other.
func (c *command) loadAndLocate(ctx context.Context, provider ports.PositionProvider) (*domain.Dataset, domain.Coordinates, error) {
	var (
		ds  *domain.Dataset
		ref domain.Coordinates
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ds, err = c.load(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ref, err = provider.Locate(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, domain.Coordinates{}, err
	}
	return ds, ref, nil
}

func (c *command) list(ctx context.Context, args []string, run func(context.Context) error) error {
	if len(args) > 0 {
		fmt.Fprintf(c.app.Stderr, "unexpected arguments: %s\n", strings.Join(args, " "))
		return errUsage
	}
	return run(ctx)
}

func (c *command) listCategories(ctx context.Context) (err error) {
	defer obs.Time(ctx, c.app.Log, "cli.categories")(&err)

	ds, err := c.load(ctx)
	if err != nil {
		return err
	}
	return render.Options(c.app.Stdout, "Categories", append([]string{domain.AnyCategory}, ds.Categories()...))
}

func (c *command) listRegions(ctx context.Context) (err error) {
	defer obs.Time(ctx, c.app.Log, "cli.regions")(&err)

	ds, err := c.load(ctx)
	if err != nil {
		return err
	}
	return render.Options(c.app.Stdout, "Regions", ds.Regions())
}

func (c *command) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("locator "+name, flag.ContinueOnError)
	fs.SetOutput(c.app.Stderr)
	return fs
}

func (c *command) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(c.app.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		return errUsage
	}
	return nil
}

func (c *command) near(ctx context.Context, args []string) (err error) {
	defer obs.Time(ctx, c.app.Log, "cli.near")(&err)

	var (
		category string
		lat, lng string
		locate   bool
		page     int
	)
	fs := c.flagSet("near")
	fs.StringVar(&category, "category", "", "category to match, or \"any\"")
	fs.StringVar(&lat, "lat", "", "reference latitude")
	fs.StringVar(&lng, "lng", "", "reference longitude")
	fs.BoolVar(&locate, "locate", false, "use the configured position (LOCATOR_POSITION)")
	fs.IntVar(&page, "page", 1, "page to show")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	if category == "" {
		return fmt.Errorf("please select a category: %w", domain.ErrInvalidInput)
	}
	if locate && (lat != "" || lng != "") {
		return fmt.Errorf("-locate cannot be combined with -lat/-lng: %w", domain.ErrInvalidInput)
	}

	var s *services.Session
	if locate {
		ds, ref, err := c.loadAndLocate(ctx, position.NewProvider(c.cfg.Position))
		if err != nil {
			return err
		}
		s = services.NewSession(ds, c.settings())
		if _, err := s.SearchFrom(ref, category); err != nil {
			return err
		}
	} else {
		if _, err := domain.ParseCoordinates(lat, lng); err != nil {
			return fmt.Errorf("please enter a valid latitude and longitude: %w", err)
		}
		ds, err := c.load(ctx)
		if err != nil {
			return err
		}
		s = services.NewSession(ds, c.settings())
		if _, err := s.SearchNear(lat, lng, category); err != nil {
			return err
		}
	}

	return c.show(s, page)
}

func (c *command) region(ctx context.Context, args []string) (err error) {
	defer obs.Time(ctx, c.app.Log, "cli.region")(&err)

	var (
		region   string
		category string
		page     int
	)
	fs := c.flagSet("region")
	fs.StringVar(&region, "region", "", "region to match exactly")
	fs.StringVar(&category, "category", "", "category to match, or \"any\"")
	fs.IntVar(&page, "page", 1, "page to show")
	if err := c.parse(fs, args); err != nil {
		return err
	}

	if region == "" {
		return fmt.Errorf("please select a region: %w", domain.ErrInvalidInput)
	}
	if category == "" {
		return fmt.Errorf("please select a category: %w", domain.ErrInvalidInput)
	}

	ds, err := c.load(ctx)
	if err != nil {
		return err
	}
	s := services.NewSession(ds, c.settings())
	if _, err := s.SearchRegion(region, category); err != nil {
		return err
	}

	return c.show(s, page)
}

// show exports and prints the results of the session's latest search,
// starting on page.
func (c *command) show(s *services.Session, page int) error {
	if page != 1 {
		if err := s.Goto(page); err != nil {
			return err
		}
	}

	if c.export != "" {
		if err := render.ExportXLSX(c.export, s.All()); err != nil {
			return err
		}
		c.app.Log.Info("results exported", zap.String("path", c.export), zap.Int("results", s.Page().TotalResults))
	}

	if c.interactive {
		pager := &Pager{In: c.app.Stdin, Out: c.app.Stdout, Session: s}
		return pager.Run()
	}
	return render.Page(c.app.Stdout, s.Mode(), s.Page())
}
