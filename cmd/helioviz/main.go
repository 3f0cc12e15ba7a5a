package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/rmaitra/helioviz/internal/catalog"
	"github.com/rmaitra/helioviz/internal/config"
	"github.com/rmaitra/helioviz/internal/ephem"
	"github.com/rmaitra/helioviz/internal/export"
	"github.com/rmaitra/helioviz/internal/horizons"
	"github.com/rmaitra/helioviz/internal/logging"
	"github.com/rmaitra/helioviz/internal/playback"
	"github.com/rmaitra/helioviz/internal/render"
	"github.com/rmaitra/helioviz/internal/scene"
	"github.com/rmaitra/helioviz/internal/store"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool
	// Fetch range
	startDate string
	stopDate  string
	stepDays  int
	// Render output
	outPath   string
	fps       int
	bitrate   int
	width     int
	height    int
	highlight string
	// Session selection
	sessionID string
)

func main() {
	var closeLog func() error

	rootCmd := &cobra.Command{
		Use:   "helioviz",
		Short: "comet trajectory fetcher and animator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			closeLog, err = logging.Setup(dataDir, debug)
			return err
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".helioviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "fetch ephemerides from JPL Horizons",
		RunE:  fetchEphemerides,
	}
	fetchCmd.Flags().StringVar(&startDate, "start", config.DefaultStart, "start date (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&stopDate, "stop", config.DefaultStop, "stop date (YYYY-MM-DD)")
	fetchCmd.Flags().IntVar(&stepDays, "step", config.DefaultStepDays, "step size in days")
	fetchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "list cached fetch sessions",
		RunE:  listSessions,
	}

	infoCmd := &cobra.Command{
		Use:   "info [session_id]",
		Short: "show fetch session details",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showInfo,
	}
	infoCmd.Flags().StringVar(&highlight, "highlight", config.DefaultHighlight, "highlight date (YYYY-MM-DD)")
	infoCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot comet distance from the Sun",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSession,
	}

	renderCmd := &cobra.Command{
		Use:   "render [session_id]",
		Short: "render the trajectory animation to a file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderSession,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "comet_trajectory.mp4", "output path (.mp4, .gif or .svg)")
	renderCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	renderCmd.Flags().IntVar(&bitrate, "bitrate", config.DefaultBitrate, "video bitrate (kbps)")
	renderCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "output width in pixels")
	renderCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "output height in pixels")
	renderCmd.Flags().StringVar(&highlight, "highlight", config.DefaultHighlight, "highlight date (YYYY-MM-DD)")
	renderCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	playCmd := &cobra.Command{
		Use:   "play [session_id]",
		Short: "play the animation in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  playSession,
	}
	playCmd.Flags().IntVar(&fps, "fps", 10, "playback frame rate")
	playCmd.Flags().StringVar(&highlight, "highlight", config.DefaultHighlight, "highlight date (YYYY-MM-DD)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-12s %s to %s, step %dd\n", name, p.Start, p.Stop, p.StepDays)
			}
			return nil
		},
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list known bodies",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDESIGNATION\tORBIT (AU)")
			for _, name := range catalog.List() {
				e, err := catalog.Get(name)
				if err != nil {
					return err
				}
				orbit := "-"
				if e.OrbitAU > 0 {
					orbit = fmt.Sprintf("%.2f", e.OrbitAU)
				}
				fmt.Fprintf(w, "%c %s\t%s\t%s\n", e.Glyph, e.Name, e.Designation, orbit)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(fetchCmd, sessionsCmd, infoCmd, plotCmd, renderCmd, playCmd, presetsCmd, bodiesCmd)

	err := rootCmd.Execute()
	if closeLog != nil {
		closeLog()
	}
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and CLI flags, the later winning.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flagged := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if flagged("start") {
		cfg.Start = startDate
	}
	if flagged("stop") {
		cfg.Stop = stopDate
	}
	if flagged("step") {
		cfg.StepDays = stepDays
	}
	if flagged("highlight") {
		cfg.Highlight = highlight
	}
	if flagged("out") {
		cfg.Output.Path = outPath
	}
	if flagged("fps") {
		cfg.Output.FPS = fps
	}
	if flagged("bitrate") {
		cfg.Output.BitrateKbps = bitrate
	}
	if flagged("width") {
		cfg.Output.Width = width
	}
	if flagged("height") {
		cfg.Output.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fetchEphemerides(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	comet, err := catalog.Get(cfg.Comet)
	if err != nil {
		return err
	}
	planets := make([]catalog.Entry, 0, len(cfg.Planets))
	for _, name := range cfg.Planets {
		e, err := catalog.Get(name)
		if err != nil {
			return err
		}
		planets = append(planets, e)
	}

	start, err := cfg.StartDate()
	if err != nil {
		return err
	}
	stop, err := cfg.StopDate()
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("fetching %s and %d planets, %s to %s (step %dd)...\n",
		comet.Name, len(planets), cfg.Start, cfg.Stop, cfg.StepDays)
	began := time.Now()

	client := horizons.NewClient()
	set, err := horizons.FetchSet(context.Background(), client, horizons.Range{
		Start:    start,
		Stop:     stop,
		StepDays: cfg.StepDays,
	}, comet, planets)
	if err != nil {
		return err
	}

	id, err := st.Save(set)
	if err != nil {
		return err
	}

	fmt.Printf("fetched %d epochs in %v\n", set.Epochs.Count, time.Since(began).Round(time.Millisecond))
	fmt.Printf("session id: %s\n", id)
	if n := set.Comet.Series.MissingCount(); n > 0 {
		fmt.Printf("warning: %d epochs missing from %s\n", n, comet.Name)
	}
	return nil
}

func listSessions(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	sessions, err := st.List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no fetch sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFETCHED\tSTART\tSTEP\tEPOCHS\tCOMET")
	for _, s := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%d\t%s\n",
			s.ID,
			s.FetchedAt.Format("2006-01-02 15:04:05"),
			s.Start.Format("2006-01-02"),
			s.StepDays,
			s.Count,
			s.Comet.Name,
		)
	}
	return w.Flush()
}

// loadSet resolves the session argument, defaulting to the most recent.
func loadSet(st *store.Store, args []string) (*ephem.Set, *store.SessionMeta, error) {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	if id == "" {
		latest, err := st.Latest()
		if err != nil {
			return nil, nil, err
		}
		id = latest
	}
	return st.Load(id)
}

func showInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	set, meta, err := loadSet(st, args)
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("fetched: %s\n", meta.FetchedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("range: %s to %s (step %dd, %d epochs)\n\n",
		set.Epochs.Start.Format("2006-01-02"),
		set.Epochs.End().Format("2006-01-02"),
		set.Epochs.StepDays,
		set.Epochs.Count,
	)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMIN DIST\tMAX DIST\tMISSING")
	for _, b := range set.Bodies() {
		lo, hi := distanceBounds(b.Series)
		fmt.Fprintf(w, "%s\t%.3f AU\t%.3f AU\t%d\n", b.Name, lo, hi, b.Series.MissingCount())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if hd, err := cfg.HighlightDate(); err == nil {
		if k, err := set.FrameAt(hd); err == nil {
			smp := set.Comet.Series[k]
			fmt.Printf("\n%s is frame %d", cfg.Highlight, k)
			if !smp.Missing {
				fmt.Printf(": comet at (%.3f, %.3f, %.3f) AU, %.3f AU from the Sun",
					smp.X, smp.Y, smp.Z, smp.Radius())
			}
			fmt.Println()
		} else {
			fmt.Printf("\n%s is outside the fetched range\n", cfg.Highlight)
		}
	}
	return nil
}

func distanceBounds(s ephem.Series) (lo, hi float64) {
	first := true
	for _, smp := range s {
		if smp.Missing {
			continue
		}
		r := smp.Radius()
		if first {
			lo, hi = r, r
			first = false
			continue
		}
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return lo, hi
}

func plotSession(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	set, meta, err := loadSet(st, args)
	if err != nil {
		return err
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("comet: %s\n\n", set.Comet.Name)

	radii := set.Comet.Series.Radii()
	data := make([]float64, 0, len(radii))
	for _, r := range radii {
		if r == r { // skip gaps
			data = append(data, r)
		}
	}
	if len(data) == 0 {
		return fmt.Errorf("no data to plot")
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("heliocentric distance (AU)"),
	)
	fmt.Println(graph)
	return nil
}

// buildScene assembles the static scene for a set, resolving the highlight
// date into a frame. A highlight outside the fetched range is an error; an
// empty highlight disables the marker.
func buildScene(set *ephem.Set, highlightDate string) (*scene.Scene, error) {
	bodies := make([]catalog.Entry, 0, 4)
	if e, err := catalog.Get(set.Comet.Name); err == nil {
		bodies = append(bodies, e)
	}
	for _, p := range set.Planets {
		if e, err := catalog.Get(p.Name); err == nil {
			bodies = append(bodies, e)
		}
	}

	hk := scene.NoHighlight
	if highlightDate != "" {
		hd, err := time.Parse("2006-01-02", highlightDate)
		if err != nil {
			return nil, fmt.Errorf("invalid highlight date %q: %w", highlightDate, err)
		}
		hk, err = set.FrameAt(hd)
		if err != nil {
			return nil, fmt.Errorf("highlight %s: %w", highlightDate, err)
		}
	}
	return scene.New(set, bodies, hk), nil
}

func renderSession(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	set, meta, err := loadSet(st, args)
	if err != nil {
		return err
	}

	sc, err := buildScene(set, cfg.Highlight)
	if err != nil {
		return err
	}
	cam := render.NewCamera()

	fmt.Printf("rendering %d frames from session %s...\n", set.Epochs.Count, meta.ID)
	began := time.Now()

	path := cfg.Output.Path
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		frames := export.RenderAll(set, sc, cam, cfg.Output.Width, cfg.Output.Height)
		err = export.SaveGIF(path, frames, cfg.Output.FPS)
	case ".svg":
		err = saveSVG(path, set, sc, cam, cfg.Output.Width, cfg.Output.Height)
	case ".mp4":
		frames := export.RenderAll(set, sc, cam, cfg.Output.Width, cfg.Output.Height)
		err = export.EncodeMP4(context.Background(), path, frames, export.VideoOptions{
			FPS:         cfg.Output.FPS,
			BitrateKbps: cfg.Output.BitrateKbps,
			Width:       cfg.Output.Width,
			Height:      cfg.Output.Height,
		})
	default:
		return fmt.Errorf("unsupported output format: %s", path)
	}
	if err != nil {
		if errors.Is(err, export.ErrEncoderMissing) {
			return fmt.Errorf("mp4 export requires ffmpeg on PATH: %w", err)
		}
		return err
	}

	fmt.Printf("wrote %s in %v\n", path, time.Since(began).Round(time.Millisecond))
	return nil
}

// saveSVG writes the final frame, full path drawn, as a vector snapshot.
func saveSVG(path string, set *ephem.Set, sc *scene.Scene, cam *render.Camera, w, h int) error {
	cols, rows := export.FrameSize(w, h)
	canvas := render.NewCanvas(cols, rows)
	export.RenderFrame(canvas, cam, sc, set, set.Epochs.Count-1)

	color := "#ffffff"
	if e, err := catalog.Get(set.Comet.Name); err == nil {
		color = e.Color
	}
	return os.WriteFile(path, []byte(export.CanvasSVG(canvas, 4.0, color)), 0o644)
}

func playSession(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	set, _, err := loadSet(st, args)
	if err != nil {
		return err
	}

	sc, err := buildScene(set, highlight)
	if err != nil {
		return err
	}
	p := tea.NewProgram(playback.New(set, sc, fps))
	_, err = p.Run()
	return err
}
