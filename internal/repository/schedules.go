package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/smart-maple/roster-calendar/backend/internal/domain"
)

func (r *Repository) InsertSchedule(schedule *domain.Schedule) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO schedules (name, schedule_start_date, schedule_end_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, version
	`

	args := []any{schedule.Name, schedule.ScheduleStartDate, schedule.ScheduleEndDate}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&schedule.ID, &schedule.CreatedAt, &schedule.Version); err != nil {
		return err
	}

	for _, staff := range schedule.Staffs {
		query := `
			INSERT INTO staffs (id, schedule_id, name)
			VALUES ($1, $2, $3)
		`

		if _, err := tx.ExecContext(ctx, query, staff.ID, schedule.ID, staff.Name); err != nil {
			return err
		}

		for _, offDay := range staff.OffDays {
			query := `
				INSERT INTO staff_off_days (staff_id, off_day)
				VALUES ($1, $2)
			`

			if _, err := tx.ExecContext(ctx, query, staff.ID, offDay); err != nil {
				return err
			}
		}

		for _, pair := range staff.PairList {
			query := `
				INSERT INTO staff_pairs (staff_id, pair_staff_id, start_date, end_date)
				VALUES ($1, $2, $3, $4)
			`

			if _, err := tx.ExecContext(ctx, query, staff.ID, pair.StaffID, pair.StartDate, pair.EndDate); err != nil {
				return err
			}
		}
	}

	for _, shift := range schedule.Shifts {
		query := `
			INSERT INTO shifts (id, schedule_id, name, shift_rule, shift_start, shift_end)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		args := []any{shift.ID, schedule.ID, shift.Name, shift.ShiftRule, shift.ShiftStart, shift.ShiftEnd}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	for _, assignment := range schedule.Assignments {
		query := `
			INSERT INTO assignments (id, schedule_id, staff_id, shift_id, shift_start, shift_end)
			VALUES ($1, $2, $3, $4, $5, $6)
		`

		args := []any{assignment.ID, schedule.ID, assignment.StaffID, assignment.ShiftID, assignment.ShiftStart, assignment.ShiftEnd}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// GetLatestSchedule 读取最近创建的排班表及其全部员工、班次与排班
func (r *Repository) GetLatestSchedule() (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT id, name, schedule_start_date, schedule_end_date, created_at, version
		FROM schedules
		ORDER BY created_at DESC
		LIMIT 1
	`

	schedule := &domain.Schedule{}
	dst := []any{&schedule.ID, &schedule.Name, &schedule.ScheduleStartDate, &schedule.ScheduleEndDate, &schedule.CreatedAt, &schedule.Version}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	if err := r.loadStaffs(ctx, schedule); err != nil {
		return nil, err
	}
	if err := r.loadShifts(ctx, schedule); err != nil {
		return nil, err
	}
	if err := r.loadAssignments(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (r *Repository) loadStaffs(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		SELECT
			s.id,
			s.name,
			sod.off_day,
			sp.pair_staff_id,
			sp.start_date,
			sp.end_date
		FROM staffs s
		LEFT JOIN staff_off_days sod ON s.id = sod.staff_id
		LEFT JOIN staff_pairs sp ON s.id = sp.staff_id
		WHERE s.schedule_id = $1
		ORDER BY s.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, schedule.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	staffsMap := make(map[string]*domain.Staff)
	order := make([]string, 0)
	offDaySets := make(map[string]map[string]struct{})
	pairSets := make(map[string]map[domain.PairRange]struct{})

	for rows.Next() {
		var row struct {
			id          string
			name        string
			offDay      sql.NullString
			pairStaffID sql.NullString
			startDate   sql.NullString
			endDate     sql.NullString
		}

		dst := []any{&row.id, &row.name, &row.offDay, &row.pairStaffID, &row.startDate, &row.endDate}
		if err := rows.Scan(dst...); err != nil {
			return err
		}

		if _, exists := staffsMap[row.id]; !exists {
			staffsMap[row.id] = &domain.Staff{
				ID:      row.id,
				Name:    row.name,
				OffDays: make([]string, 0),
			}
			order = append(order, row.id)
			offDaySets[row.id] = make(map[string]struct{})
			pairSets[row.id] = make(map[domain.PairRange]struct{})
		}

		// 两个 LEFT JOIN 会产生笛卡尔积，这里需要去重
		if row.offDay.Valid {
			if _, exists := offDaySets[row.id][row.offDay.String]; !exists {
				offDaySets[row.id][row.offDay.String] = struct{}{}
				staffsMap[row.id].OffDays = append(staffsMap[row.id].OffDays, row.offDay.String)
			}
		}

		if row.pairStaffID.Valid {
			pair := domain.PairRange{
				StaffID:   row.pairStaffID.String,
				StartDate: row.startDate.String,
				EndDate:   row.endDate.String,
			}
			if _, exists := pairSets[row.id][pair]; !exists {
				pairSets[row.id][pair] = struct{}{}
				staffsMap[row.id].PairList = append(staffsMap[row.id].PairList, pair)
			}
		}
	}

	if err := rows.Err(); err != nil {
		return err
	}

	schedule.Staffs = make([]domain.Staff, 0, len(order))
	for _, id := range order {
		schedule.Staffs = append(schedule.Staffs, *staffsMap[id])
	}

	return nil
}

func (r *Repository) loadShifts(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		SELECT id, name, shift_rule, shift_start, shift_end
		FROM shifts
		WHERE schedule_id = $1
		ORDER BY shift_start
	`

	rows, err := r.dbpool.QueryContext(ctx, query, schedule.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	schedule.Shifts = make([]domain.Shift, 0)
	for rows.Next() {
		shift := domain.Shift{}
		dst := []any{&shift.ID, &shift.Name, &shift.ShiftRule, &shift.ShiftStart, &shift.ShiftEnd}
		if err := rows.Scan(dst...); err != nil {
			return err
		}
		schedule.Shifts = append(schedule.Shifts, shift)
	}

	return rows.Err()
}

func (r *Repository) loadAssignments(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		SELECT id, staff_id, shift_id, shift_start, shift_end
		FROM assignments
		WHERE schedule_id = $1
		ORDER BY shift_start, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, schedule.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	schedule.Assignments = make([]domain.Assignment, 0)
	for rows.Next() {
		assignment := domain.Assignment{}
		dst := []any{&assignment.ID, &assignment.StaffID, &assignment.ShiftID, &assignment.ShiftStart, &assignment.ShiftEnd}
		if err := rows.Scan(dst...); err != nil {
			return err
		}
		schedule.Assignments = append(schedule.Assignments, assignment)
	}

	return rows.Err()
}

// UpdateAssignmentDate 落库一次拖拽产生的排班时间变更
func (r *Repository) UpdateAssignmentDate(assignmentID string, shiftStart time.Time, shiftEnd time.Time) error {
	query := `
		UPDATE assignments
		SET
		    shift_start = $1,
			shift_end = $2
		WHERE id = $3
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, shiftStart, shiftEnd, assignmentID)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
