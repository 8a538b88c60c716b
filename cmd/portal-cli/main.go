// Command portal-cli drives the upload wizard end to end from the
// terminal: select a PDF, submit it for signing and save the signed bytes.
package main

import (
	"context"
	"flag"
	"log"
	"mime"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/inkstamp/sign-portal/internal/config"
	"github.com/inkstamp/sign-portal/internal/history"
	"github.com/inkstamp/sign-portal/internal/signclient"
	"github.com/inkstamp/sign-portal/internal/validate"
	"github.com/inkstamp/sign-portal/internal/wizard"
	"github.com/inkstamp/sign-portal/pkg/logger"
	"github.com/inkstamp/sign-portal/pkg/preview"
)

// zapNotifier adapts the logger to the wizard's notification sink.
type zapNotifier struct {
	log *zap.Logger
}

func (n *zapNotifier) Notify(severity wizard.Severity, message string) {
	switch severity {
	case wizard.SeverityError:
		n.log.Error(message)
	case wizard.SeverityWarning:
		n.log.Warn(message)
	default:
		n.log.Info(message)
	}
}

func main() {
	filePath := flag.String("file", "", "PDF file to sign")
	endpoint := flag.String("endpoint", "", "signing endpoint (overrides config)")
	outPath := flag.String("out", "", "where to write the signed PDF")
	configPath := flag.String("config", "", "path to JSON config file")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: portal-cli -file document.pdf [-endpoint url] [-out signed.pdf]")
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if *endpoint != "" {
		cfg.Client.Endpoint = *endpoint
	}

	zl, err := logger.New(cfg.Logging.Environment, cfg.Logging.Level)
	if err != nil {
		log.Fatal("failed to build logger:", err)
	}
	defer zl.Sync()

	registry := preview.NewRegistry()
	store := history.NewStore(registry)
	w := wizard.New(
		validate.New(validate.DefaultConfig()),
		signclient.New(signclient.Config{Endpoint: cfg.Client.Endpoint, Timeout: cfg.Client.Timeout}),
		registry,
		&zapNotifier{log: zl},
		store,
	)
	defer w.Close()

	data, err := os.ReadFile(*filePath)
	if err != nil {
		zl.Fatal("failed to read file", zap.Error(err))
	}

	mediaType := mime.TypeByExtension(filepath.Ext(*filePath))
	doc := wizard.Document{
		Name:      filepath.Base(*filePath),
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
	}
	if err := w.SelectFile(doc); err != nil {
		zl.Fatal("file selection failed", zap.Error(err))
	}
	if w.State().Step != wizard.StepPreview {
		// Validation rejected the file; the notifier already said why.
		os.Exit(1)
	}

	zl.Info("submitting for signing",
		zap.String("name", doc.Name),
		zap.Int64("size", doc.Size),
		zap.String("endpoint", cfg.Client.Endpoint))
	if err := w.RequestSign(context.Background()); err != nil {
		zl.Fatal("sign request failed", zap.Error(err))
	}

	st := w.State()
	if st.Step != wizard.StepDone {
		os.Exit(1)
	}

	signed, ok := registry.Get(st.SignedURL)
	if !ok {
		zl.Fatal("signed bytes missing from preview registry")
	}

	out := *outPath
	if out == "" {
		out = "signed_" + filepath.Base(*filePath)
	}
	if err := os.WriteFile(out, signed, 0o644); err != nil {
		zl.Fatal("failed to write signed file", zap.Error(err))
	}
	zl.Info("signed document saved", zap.String("path", out))

	for _, e := range store.Entries() {
		zl.Info("history entry",
			zap.String("name", e.Name),
			zap.Time("signed_at", e.SignedAt))
	}
}
