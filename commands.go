package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"aceh-poverty-dashboard/config"
	"aceh-poverty-dashboard/models"
	"aceh-poverty-dashboard/render"
	"aceh-poverty-dashboard/services"
	"aceh-poverty-dashboard/snapshot"
	"aceh-poverty-dashboard/storage"
	"aceh-poverty-dashboard/utils"
	"aceh-poverty-dashboard/web"
)

type app struct {
	cfg    *config.Config
	logger *utils.Logger
}

// source opens the configured dataset backend. The returned func releases it.
func (a *app) source(ctx context.Context) (storage.TableSource, func(), error) {
	if a.cfg.DataSource == config.SourcePostgres {
		retry := &utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.logger}
		store, err := storage.NewPostgresStore(ctx, a.cfg.DSN(), retry)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return storage.NewCSVSource(a.cfg.DataDir), func() {}, nil
}

func (a *app) datasets(ctx context.Context) (*models.Datasets, error) {
	src, release, err := a.source(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	a.logger.Info("Loading datasets from %s", a.cfg.DataSource)
	catalog := storage.NewCatalog(src, storage.Specs(a.cfg), services.NewCleaner(a.logger),
		a.cfg.MaxConcurrency, a.cfg.MaxRetries, a.logger)
	return catalog.Datasets(ctx)
}

func (a *app) dashboard(ctx context.Context) (*services.Dashboard, error) {
	data, err := a.datasets(ctx)
	if err != nil {
		return nil, err
	}
	return services.NewDashboard(data, services.NewFormatter(a.cfg.Locale), a.logger), nil
}

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.HTTPAddr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.logger.Info("=== Aceh Poverty Dashboard starting ===")
	dash, err := a.dashboard(ctx)
	if err != nil {
		return err
	}
	srv, err := web.NewServer(dash, a.cfg.AllowedOrigins, a.logger)
	if err != nil {
		return err
	}
	return srv.Run(ctx, *addr)
}

func (a *app) inspect(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := a.datasets(ctx)
	if err != nil {
		return err
	}
	numeric := make(map[models.DatasetName][]string)
	for _, spec := range storage.Specs(a.cfg) {
		numeric[spec.Name] = spec.Numeric
	}
	svc := services.NewSummaryService(a.logger)
	svc.Print(os.Stdout, svc.Generate(data, numeric))
	return nil
}

func (a *app) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("out", a.cfg.ExportDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dash, err := a.dashboard(ctx)
	if err != nil {
		return err
	}
	csvWriter, err := storage.NewCSVWriter(filepath.Join(*out, "csv"))
	if err != nil {
		return err
	}
	defer csvWriter.Close()
	book := storage.NewXLSXWriter(filepath.Join(*out, "dashboard.xlsx"))

	pngDir := filepath.Join(*out, "png")
	if err := os.MkdirAll(pngDir, 0755); err != nil {
		return fmt.Errorf("export: create png dir: %w", err)
	}
	png := render.NewPlotPNG()
	pool := utils.NewWorkerPool(a.cfg.MaxConcurrency, 0)

	for _, sel := range dash.AllSelections() {
		view, err := dash.Render(sel)
		if err != nil {
			_ = book.Close()
			return err
		}
		if _, err := storage.WriteView(csvWriter, view); err != nil {
			_ = book.Close()
			return err
		}
		if _, err := storage.WriteView(book, view); err != nil {
			_ = book.Close()
			return err
		}
		for _, sec := range view.Sections {
			if sec.Chart == nil || sec.Chart.Empty() {
				continue
			}
			chart := sec.Chart
			path := filepath.Join(pngDir, storage.FileName(fmt.Sprintf("%s_%s", sel.Chart, sec.ID))+".png")
			pool.Submit(func() error { return writePNG(png, chart, path) })
		}
	}

	errs := pool.Wait()
	if err := book.Close(); err != nil {
		errs = append(errs, err)
	}
	for _, err := range errs {
		a.logger.Error("%v", err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("export finished with %d errors", len(errs))
	}
	a.logger.Info("Exported %d tables to %s", len(csvWriter.Written()), *out)
	return nil
}

func writePNG(r render.Renderer, c *models.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Render(f, c); err != nil {
		_ = f.Close()
		return fmt.Errorf("render %s: %w", path, err)
	}
	return f.Close()
}

func (a *app) importData(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	retry := &utils.RetryConfig{MaxAttempts: a.cfg.MaxRetries, BaseDelay: 2 * time.Second, Logger: a.logger}
	store, err := storage.NewPostgresStore(ctx, a.cfg.DSN(), retry)
	if err != nil {
		return err
	}
	defer store.Close()

	// Raw tables are stored; the dashboard cleans them when it loads.
	catalog := storage.NewCatalog(storage.NewCSVSource(a.cfg.DataDir), storage.Specs(a.cfg), nil,
		a.cfg.MaxConcurrency, a.cfg.MaxRetries, a.logger)
	data, err := catalog.Datasets(ctx)
	if err != nil {
		return err
	}
	for _, t := range data.All() {
		if err := store.Import(ctx, t); err != nil {
			return err
		}
		a.logger.Info("Imported %s: %d rows", t.Name, t.Len())
	}
	return nil
}

func (a *app) snapshot(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("snapshot", flag.ContinueOnError)
	baseURL := fs.String("url", localURL(a.cfg.HTTPAddr), "dashboard base URL")
	out := fs.String("out", filepath.Join(a.cfg.ExportDir, "snapshots"), "output directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dash, err := a.dashboard(ctx)
	if err != nil {
		return err
	}
	shooter := snapshot.New(a.cfg.ChromeBin, *out, a.cfg.MaxConcurrency, a.cfg.MaxRetries, a.logger)
	files, err := shooter.Capture(ctx, shooter.Targets(*baseURL, dash.AllSelections()))
	if err != nil {
		return err
	}
	a.logger.Info("Saved %d screenshots to %s", len(files), *out)
	return nil
}

// localURL turns a listen address such as ":8501" into a URL on localhost.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
