package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/decker502/storefront/pkg/app"
	"github.com/decker502/storefront/pkg/embedded"
)

var (
	verbose       bool
	category      string
	reducedMotion bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Animated hardware storefront",
	Long: `Renders a scrolling product page: hero marquee, category filter with
exit/enter reflow animation, hover previews and a zoom parallax section.

Controls: mouse wheel or touch drag to scroll, click a category tab to filter,
F11 to toggle fullscreen.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg = zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&category, "category", "", "Category to select on start (default: last used)")
	rootCmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "Finish animations almost instantly")
}

func run(cmd *cobra.Command, args []string) error {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	storefront, err := app.NewApp(app.Config{
		Logger:        logger,
		Category:      category,
		ReducedMotion: reducedMotion,
	})
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}
	defer storefront.Shutdown()

	w, h := storefront.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Storefront")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(storefront)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
