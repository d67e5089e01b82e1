package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/smart-maple/roster-calendar/backend/internal/config"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/smart-maple/roster-calendar/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// dispatcher 消费排班变更意图并将其落库，
// 是日历会话与外部存储之间唯一的写路径
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

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("无法连接到数据库", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * 连接 RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("无法连接到 RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("无法创建通道", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	// 声明队列
	q, err := ch.QueueDeclare(
		"assignment_update_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法声明队列", slog.String("error", err.Error()))
		return
	}

	// 监听 CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// 消费消息
	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("无法消费消息", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("收到排班变更意图", slog.String("message", string(msg.Body)))

				update := domain.AssignmentUpdate{}
				if err := json.Unmarshal(msg.Body, &update); err != nil {
					logger.Error("变更意图反序列化失败", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if err := repo.UpdateAssignmentDate(update.AssignmentID, update.ShiftStart, update.ShiftEnd); err != nil {
					switch {
					case errors.Is(err, sql.ErrNoRows):
						// 排班已不存在，重新入队只会无限循环
						logger.Error("排班不存在，丢弃该意图", slog.String("assignmentId", update.AssignmentID))
						_ = msg.Nack(false, false)
					default:
						logger.Error("排班变更落库失败", slog.String("error", err.Error()))
						_ = msg.Nack(false, true) // 将消息重新入队
					}
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("等待排班变更意图...（按 CTRL+C 退出）")
	<-sigChan

	slog.Info("正在关闭 dispatcher...")
	cancel()
	wg.Wait()
	slog.Info("dispatcher 已成功关闭")
}
