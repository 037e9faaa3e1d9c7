package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/JoeShih716/go-mem-bank/internal/app/core"
	"github.com/JoeShih716/go-mem-bank/internal/app/core/adapter/out/console"
	"github.com/JoeShih716/go-mem-bank/internal/app/demo"
	"github.com/JoeShih716/go-mem-bank/internal/config"
	"github.com/JoeShih716/go-mem-bank/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config yaml (empty: built-in defaults)")
	flag.Parse()

	// 1. 載入設定
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg = demo.Config(cfg, *configPath != "")

	// 2. Logger 寫 stderr，stdout 留給示範輸出
	slogger, err := logger.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 3. 組裝銀行核心
	bank, err := core.NewBank(cfg, slogger)
	if err != nil {
		log.Fatalf("Failed to init bank: %v", err)
	}
	defer bank.Close()

	// 4. 執行示範流程
	demo.Run(context.Background(), bank.Service, console.NewPrinter(os.Stdout))
}
