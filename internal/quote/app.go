// Package quote runs one pricing session: it loads the spool catalog, has
// the operator pick a spool, asks for the job figures and prints the price.
package quote

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"printquote/internal/calculators"
	"printquote/internal/catalog"
	"printquote/internal/config"
	"printquote/internal/menu"
)

const banner = "--- Advanced 3D Printing Pricing Calculator ---"

type App struct {
	cfg    *config.Config
	logger *zap.Logger

	loader *catalog.Loader
	menu   *menu.Menu
	calc   *calculators.PrintingCalculator

	open menu.Opener
	in   *bufio.Reader
	out  io.Writer
}

// New wires an App. open acquires the terminal for the spool menu; prompts
// are read from in and everything else is written to out.
func New(cfg *config.Config, logger *zap.Logger, open menu.Opener, in io.Reader, out io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		loader: catalog.NewLoader(logger.Named("catalog")),
		menu:   menu.New(logger.Named("menu")),
		calc:   calculators.NewPrintingCalculator(),
		open:   open,
		in:     bufio.NewReader(in),
		out:    out,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.printf("%s\n", banner)

	spools, err := a.loader.Load(a.cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	a.printf("Loading filament selector...\n")
	var session menu.Session
	open := func() (menu.Session, error) {
		s, err := a.open()
		session = s
		return s, err
	}
	idx, err := menu.SelectItem(ctx, a.menu, open, a.cfg.MenuTitle, spools, func(r catalog.Record) string {
		return r.Label(a.cfg.CurrencySymbol)
	})
	if err != nil {
		return fmt.Errorf("select filament: %w", err)
	}
	a.keepTypeahead(session)

	spool := spools[idx]
	a.printf("Selected Filament: %s\n", spool.Label(a.cfg.CurrencySymbol))

	job, err := a.promptJob(ctx)
	if err != nil {
		return fmt.Errorf("job input: %w", err)
	}

	prices, err := a.calc.Calculate(spool, job)
	if err != nil {
		return fmt.Errorf("calculate price: %w", err)
	}

	a.logger.Info("Price calculated",
		zap.String("type", spool.Type),
		zap.String("color", spool.Color),
		zap.Float64("print_weight_g", job.PrintWeightGrams),
		zap.Float64("final_price", prices.FinalPrice))

	a.printf("\n%s", FormatPriceBreakdown(spool, prices, a.cfg.CurrencySymbol))

	a.hold(ctx)
	return nil
}

// keepTypeahead puts input the menu read past its confirming key in front of
// the prompt reader.
func (a *App) keepTypeahead(session menu.Session) {
	r, ok := session.(menu.Remainder)
	if !ok {
		return
	}
	rest := r.Remaining()
	if len(rest) == 0 {
		return
	}
	a.logger.Debug("Keeping input typed ahead of the prompts", zap.Int("bytes", len(rest)))
	a.in = bufio.NewReader(io.MultiReader(bytes.NewReader(rest), a.in))
}

// hold keeps the result on screen for the configured time before returning.
func (a *App) hold(ctx context.Context) {
	if a.cfg.ExitHold <= 0 {
		return
	}

	timer := time.NewTimer(a.cfg.ExitHold)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (a *App) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		a.logger.Warn("Failed to write output", zap.Error(err))
	}
}
