package seed

import (
	"time"

	"github.com/smart-maple/roster-calendar/backend/internal/config"
	"github.com/smart-maple/roster-calendar/backend/internal/domain"
	"github.com/smart-maple/roster-calendar/backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// Seed 写入一套演示数据：2025 年 10 月的完整排班表和几个演示账户。
// 演示排班覆盖视图推导的所有分支：休息日、pair 区间重叠、夜班和空档日。
func Seed(cfg *config.Config, repo *repository.Repository) error {
	if err := seedUsers(cfg, repo); err != nil {
		return err
	}
	return seedSchedule(repo)
}

func seedUsers(cfg *config.Config, repo *repository.Repository) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.Seed.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []*domain.User{
		{
			Username:     "planner",
			PasswordHash: string(passwordHash),
			FullName:     "Deniz Aksoy",
			Email:        "deniz.aksoy@smart-maple.com",
			Role:         domain.RolePlanner,
			Language:     "tr",
		},
		{
			Username:     "tuba",
			PasswordHash: string(passwordHash),
			FullName:     "Tuba",
			Email:        "tuba@smart-maple.com",
			Role:         domain.RoleAssistant,
			Language:     "tr",
		},
	}

	for _, user := range users {
		if err := repo.CreateUser(user); err != nil {
			return err
		}
	}
	return nil
}

func seedSchedule(repo *repository.Repository) error {
	day := func(d int) time.Time {
		return time.Date(2025, time.October, d, 0, 0, 0, 0, time.UTC)
	}
	at := func(d, hour, minute int) time.Time {
		return time.Date(2025, time.October, d, hour, minute, 0, 0, time.UTC)
	}

	schedule := &domain.Schedule{
		Name:              "Ekim 2025 Vardiya Planı",
		ScheduleStartDate: day(1),
		ScheduleEndDate:   day(31),
		Staffs: []domain.Staff{
			{
				ID:      "staff-tuba",
				Name:    "Tuba",
				OffDays: []string{"04.10.2025", "11.10.2025", "18.10.2025", "25.10.2025"},
				PairList: []domain.PairRange{
					// 两个区间在 08.10 重叠，当天以后者为准
					{StaffID: "staff-ayse", StartDate: "05.10.2025", EndDate: "12.10.2025"},
					{StaffID: "staff-mehmet", StartDate: "08.10.2025", EndDate: "10.10.2025"},
				},
			},
			{
				ID:      "staff-ayse",
				Name:    "Ayşe Kaya",
				OffDays: []string{"05.10.2025", "12.10.2025", "19.10.2025", "26.10.2025"},
			},
			{
				ID:      "staff-mehmet",
				Name:    "Mehmet Demir",
				OffDays: []string{"06.10.2025", "13.10.2025", "20.10.2025", "27.10.2025"},
			},
			{
				ID:      "staff-elif",
				Name:    "Elif Şahin",
				OffDays: []string{"07.10.2025", "14.10.2025", "21.10.2025", "28.10.2025"},
			},
		},
		Shifts: []domain.Shift{
			{ID: "shift-morning", Name: "Sabah Vardiyası", ShiftRule: "Haftada en fazla 5 sabah", ShiftStart: "08:00", ShiftEnd: "16:00"},
			{ID: "shift-evening", Name: "Akşam Vardiyası", ShiftRule: "", ShiftStart: "16:00", ShiftEnd: "23:00"},
			{ID: "shift-night", Name: "Night Shift", ShiftRule: "night rotation", ShiftStart: "22:00", ShiftEnd: "23:59"},
		},
	}

	// 每个员工隔天排班，班次按日期轮换，自然留出空档日给建议引擎
	shiftStartHours := []int{8, 16, 22}
	shiftEndHours := []int{16, 23, 23}
	shiftIDs := []string{"shift-morning", "shift-evening", "shift-night"}

	for i, staff := range schedule.Staffs {
		offDays := make(map[string]struct{}, len(staff.OffDays))
		for _, offDay := range staff.OffDays {
			offDays[offDay] = struct{}{}
		}

		for d := 1 + i%2; d <= 28; d += 2 {
			date := day(d)
			if _, ok := offDays[date.Format("02.01.2006")]; ok {
				continue
			}

			shiftIdx := (d + i) % len(shiftIDs)
			schedule.Assignments = append(schedule.Assignments, domain.Assignment{
				ID:         staff.ID + "-" + date.Format("2006-01-02"),
				StaffID:    staff.ID,
				ShiftID:    shiftIDs[shiftIdx],
				ShiftStart: at(d, shiftStartHours[shiftIdx], 0),
				ShiftEnd:   at(d, shiftEndHours[shiftIdx], 0),
			})
		}
	}

	return repo.InsertSchedule(schedule)
}
