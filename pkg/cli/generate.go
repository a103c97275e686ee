package cli

import (
	"flag"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/protodoc/pkg/config"
	"github.com/platinummonkey/protodoc/pkg/docs"
	"github.com/platinummonkey/protodoc/pkg/schema"
	"github.com/platinummonkey/protodoc/pkg/storage"
)

func newGenerateCommand() *Command {
	cmd := &Command{
		Name:        "generate",
		Description: "Generate an HTML API reference from a directory of schema files",
		Flags:       flag.NewFlagSet("generate", flag.ExitOnError),
	}

	dir := cmd.Flags.String("dir", "", "Directory containing schema files")
	out := cmd.Flags.String("out", "api_reference.html", "Output HTML file name")
	service := cmd.Flags.String("service", "", "Specific service to document (default: all services)")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		// Accept the schema directory as a positional argument too.
		if *dir == "" && cmd.Flags.NArg() > 0 {
			*dir = cmd.Flags.Arg(0)
		}
		if *dir == "" {
			return fmt.Errorf("schema directory is required (use -dir)")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return runGenerate(cfg, cfg.NewLogger(), *dir, *out, *service)
	}

	return cmd
}

// runGenerate executes the full pipeline: ingest, qualify, optionally filter
// to one service, render, write. An unknown service filter fails before
// anything is written.
func runGenerate(cfg *config.Config, log *logrus.Logger, dir, out, service string) error {
	reg, err := buildRegistry(log, dir, nil)
	if err != nil {
		return err
	}

	if service != "" {
		reg, err = reg.FilterService(service)
		if err != nil {
			return err
		}
	}

	renderer := docs.NewRenderer(reg, templateSource(cfg),
		docs.WithTitle(cfg.Docs.Title),
		docs.WithBaseURL(cfg.Docs.BaseURL),
		docs.WithLogger(log),
	)
	content := renderer.Render()

	path, err := storage.NewDocumentWriter().WriteDocument(out, content)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"output":   path,
		"services": reg.ServiceNames(),
		"bytes":    len(content),
	}).Info("Documentation generated successfully")
	return nil
}

// buildRegistry ingests a schema directory into a fresh qualified registry.
// The observer may be nil.
func buildRegistry(log *logrus.Logger, dir string, obs schema.IngestObserver) (*schema.Registry, error) {
	source, err := storage.NewSchemaDir(dir)
	if err != nil {
		return nil, err
	}

	reg := schema.NewRegistry(log)
	reg.SetObserver(obs)
	reg.SeedBuiltins()
	if err := reg.IngestSource(source); err != nil {
		return nil, err
	}
	reg.Qualify()
	return reg, nil
}

// templateSource picks the configured on-disk template directory, or nil so
// the renderer uses the embedded assets.
func templateSource(cfg *config.Config) docs.TemplateSource {
	if cfg.Docs.TemplateDir != "" {
		return storage.NewTemplateDir(cfg.Docs.TemplateDir)
	}
	return nil
}
