// Package main 无窗口验证分类筛选的退场/切换/入场时序
//
// Usage:
//
//	go run ./cmd/verify_reflow --categories gaming-laptop,monitor,all
//
// Flags:
//
//	--categories <ids>    依次切换的分类（逗号分隔）
//	--data <dir>          data/ 所在目录（默认当前目录）
//	--fps <n>             模拟帧率（默认 60）
//	--reduced-motion      减少动态效果
//	--spam                过渡期间每帧重复点击，验证请求被丢弃
//	--isolated            每个分类在独立场景中从 all 开始验证（并行）
//	--verbose             输出调试日志
//
// 每次状态迁移打印一行：时间、迁移、当前分类、显示中的卡片数量。
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/storefront/pkg/components"
	"github.com/decker502/storefront/pkg/config"
	"github.com/decker502/storefront/pkg/ecs"
	"github.com/decker502/storefront/pkg/embedded"
	"github.com/decker502/storefront/pkg/game"
	"github.com/decker502/storefront/pkg/scenes"
	"github.com/decker502/storefront/pkg/systems"
)

var (
	categories    []string
	dataDir       string
	fps           int
	reducedMotion bool
	spam          bool
	isolated      bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:          "verify_reflow",
	Short:        "Print the filter reflow state trace without opening a window",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringSliceVar(&categories, "categories", []string{"gaming-laptop", "monitor", config.CategoryAll}, "Categories to select in order")
	rootCmd.Flags().StringVar(&dataDir, "data", ".", "Directory containing data/")
	rootCmd.Flags().IntVar(&fps, "fps", 60, "Simulated frame rate")
	rootCmd.Flags().BoolVar(&reducedMotion, "reduced-motion", false, "Finish animations almost instantly")
	rootCmd.Flags().BoolVar(&spam, "spam", false, "Request the next category every frame during transitions")
	rootCmd.Flags().BoolVar(&isolated, "isolated", false, "Verify each category in its own scene, in parallel")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func run(cmd *cobra.Command, args []string) error {
	if fps <= 0 {
		return fmt.Errorf("--fps must be positive, got %d", fps)
	}
	logger := zap.NewNop()
	if verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
	}

	embedded.Init(os.DirFS(dataDir))
	motion, err := config.LoadMotionConfig(config.MotionConfigPath)
	if err != nil {
		return err
	}
	catalog, err := config.LoadCatalogConfig(config.CatalogConfigPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !isolated {
		return trace(out, motion, catalog, logger, categories)
	}

	// 每个分类一个独立场景，输出先缓存再按顺序打印
	buffers := make([]bytes.Buffer, len(categories))
	var g errgroup.Group
	for i, category := range categories {
		g.Go(func() error {
			fmt.Fprintf(&buffers[i], "== %s\n", category)
			return trace(&buffers[i], motion, catalog, logger.With(zap.String("category", category)), []string{category})
		})
	}
	err = g.Wait()
	for i := range buffers {
		_, _ = buffers[i].WriteTo(out)
	}
	return err
}

// trace 在一个新场景中依次切换 categories 并打印状态迁移
func trace(out io.Writer, motion *config.MotionConfig, catalog *config.CatalogConfig, logger *zap.Logger, categories []string) error {
	clock := game.NewTickSource()
	scene, err := scenes.NewStorefrontScene(scenes.Options{
		Motion:        motion,
		Catalog:       catalog,
		Logger:        logger,
		Clock:         clock,
		ReducedMotion: reducedMotion,
	})
	if err != nil {
		return err
	}
	defer scene.Teardown()

	dt := 1 / float64(fps)
	for _, category := range categories {
		if !scene.SelectCategory(category) {
			fmt.Fprintf(out, "%8.3fs  request %-14s ignored\n", clock.Elapsed(), category)
			continue
		}
		fmt.Fprintf(out, "%8.3fs  request %-14s Idle -> %s  shown=%d\n",
			clock.Elapsed(), category, scene.ReflowState(), shown(scene))

		prev, dropped := scene.ReflowState(), 0
		for frames := 0; scene.ReflowState() != systems.ReflowIdle; frames++ {
			if frames > 10*fps {
				return fmt.Errorf("reflow to %s did not settle within 10s", category)
			}
			if spam && scene.SelectCategory(config.CategoryAll) {
				return fmt.Errorf("request accepted during %s", scene.ReflowState())
			} else if spam {
				dropped++
			}
			scene.Step(dt)
			if s := scene.ReflowState(); s != prev {
				fmt.Fprintf(out, "%8.3fs  %s -> %s  shown=%d\n", clock.Elapsed(), prev, s, shown(scene))
				prev = s
			}
		}
		if spam {
			fmt.Fprintf(out, "          %d requests dropped during transition\n", dropped)
		}
	}
	fmt.Fprintf(out, "final category %s, %d cards shown, page height %.0f\n",
		scene.ActiveCategory(), shown(scene), scene.PageHeight())
	return nil
}

func shown(scene *scenes.StorefrontScene) int {
	em := scene.EntityManager()
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.PresenceComponent](em) {
		if p, _ := ecs.GetComponent[*components.PresenceComponent](em, id); p.Displayed {
			n++
		}
	}
	return n
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
