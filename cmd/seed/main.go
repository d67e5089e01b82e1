package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/smart-maple/roster-calendar/backend/internal/config"
	"github.com/smart-maple/roster-calendar/backend/internal/repository"
	"github.com/smart-maple/roster-calendar/backend/internal/seed"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * 创建 logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * 读取配置文件
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * 连接数据库
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 写入演示数据
	 **********************************************/
	if err := seed.Seed(cfg, repo); err != nil {
		logger.Error("写入演示数据失败", slog.String("error", err.Error()))
		return
	}

	logger.Info("演示数据写入完成")
}
