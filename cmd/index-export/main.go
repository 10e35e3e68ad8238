// Index exporter: walks a Google Drive folder tree depth-first and writes
// a CSV index of every file and folder, using the webViewLink Drive
// reports for each item. Configuration comes from the environment (or a
// .env file); there are no flags.
package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/virulent-hate/google-drive-index/internal/auth"
	"github.com/virulent-hate/google-drive-index/internal/config"
	"github.com/virulent-hate/google-drive-index/internal/drive"
	"github.com/virulent-hate/google-drive-index/internal/export"
	"github.com/virulent-hate/google-drive-index/internal/inventory"
	"github.com/virulent-hate/google-drive-index/internal/logging"
)

func main() {
	cfg, err := config.Load("indexes")
	if err != nil {
		// Can't use structured logging yet
		panic("configuration error: " + err.Error())
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}); err != nil {
		panic("logging init error: " + err.Error())
	}
	defer logging.Sync()

	ctx := context.Background()

	svc, err := auth.NewDriveService(ctx, cfg.CredentialsFile, cfg.TokenFile)
	if err != nil {
		logging.Fatal("drive authentication failed", zap.Error(err))
	}

	client := drive.New(svc, drive.Config{
		MaxRetries:      cfg.MaxRetries,
		IncludeWebLinks: true,
	})
	if err := client.ResolveSharedDrive(ctx, cfg.RootFolderID); err != nil {
		logging.Fatal("shared drive resolution failed", zap.Error(err))
	}

	logging.Info("processing Google Drive folder, this may take a while for large trees",
		zap.String("root", cfg.RootFolderName))

	walker := inventory.NewWalker(client, inventory.ModeIndex)
	records, err := walker.Walk(ctx, cfg.RootFolderID, cfg.RootFolderName)
	if err != nil {
		logging.Fatal("aborted, no output written", zap.Error(err))
	}

	csvPath := cfg.OutputPath("index")
	if err := export.WriteCSV(csvPath, records); err != nil {
		logging.Fatal("csv write failed", zap.Error(err))
	}

	logging.Info("process complete",
		zap.String("root", cfg.RootFolderName),
		zap.Int("items", len(records)),
		zap.String("csv", csvPath))
}
