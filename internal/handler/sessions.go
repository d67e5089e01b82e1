package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smart-maple/roster-calendar/backend/internal/calendar"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

func sessionKey(userID int64) string {
	return fmt.Sprintf("calendar_session_%d", userID)
}

// loadSession 从 redis 读取用户的会话状态并注入排班表快照。
// 会话不存在时基于当前排班表新建，排班表快照本身从不写入 redis。
func (h *Handler) loadSession(ctx context.Context, userID int64, schedule *domain.Schedule) (*calendar.State, error) {
	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	payload, err := h.redisClient.Get(opCtx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return calendar.NewState(schedule), nil
		}
		return nil, err
	}

	state := &calendar.State{}
	if err := json.Unmarshal(payload, state); err != nil {
		// 会话数据损坏时直接丢弃，等价于会话过期
		return calendar.NewState(schedule), nil
	}

	state.Schedule = schedule
	state.EnsureSelection()
	return state, nil
}

func (h *Handler) saveSession(ctx context.Context, userID int64, state *calendar.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}

	opCtx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Session.Expiration) * time.Second
	return h.redisClient.Set(opCtx, sessionKey(userID), payload, expiration).Err()
}
