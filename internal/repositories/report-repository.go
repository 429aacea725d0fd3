package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/entities"
)

type ReportRepositoryInterface interface {
	RequestsByTeam(ctx context.Context) ([]entities.StageBreakdown, error)
	RequestsByCategory(ctx context.Context) ([]entities.StageBreakdown, error)
	RequestsByStage(ctx context.Context) ([]entities.StageCount, error)
}

type ReportRepository struct {
	storage *pgxpool.Pool
}

func NewReportRepository(storage *pgxpool.Pool) ReportRepositoryInterface {
	return &ReportRepository{storage: storage}
}

const stageBreakdownAggregates = `
	COUNT(*) AS total,
	COUNT(*) FILTER (WHERE mr.stage = 'new') AS new_requests,
	COUNT(*) FILTER (WHERE mr.stage = 'in_progress') AS in_progress_requests,
	COUNT(*) FILTER (WHERE mr.stage = 'repaired') AS repaired_requests,
	COUNT(*) FILTER (WHERE mr.stage = 'scrap') AS scrap_requests`

func (r *ReportRepository) collectBreakdown(ctx context.Context, query string) ([]entities.StageBreakdown, error) {
	q := queryEngine(ctx, r.storage)
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var breakdowns []entities.StageBreakdown
	for rows.Next() {
		var b entities.StageBreakdown
		if err := rows.Scan(&b.GroupName, &b.Total, &b.New, &b.InProgress, &b.Repaired, &b.Scrap); err != nil {
			return nil, err
		}
		breakdowns = append(breakdowns, b)
	}
	return breakdowns, rows.Err()
}

func (r *ReportRepository) RequestsByTeam(ctx context.Context) ([]entities.StageBreakdown, error) {
	return r.collectBreakdown(ctx, `
		SELECT mt.name,`+stageBreakdownAggregates+`
		FROM maintenance_requests mr
		JOIN equipment e ON e.id = mr.equipment_id
		LEFT JOIN maintenance_teams mt ON mt.id = e.maintenance_team_id
		GROUP BY mt.name
		ORDER BY total DESC
	`)
}

func (r *ReportRepository) RequestsByCategory(ctx context.Context) ([]entities.StageBreakdown, error) {
	return r.collectBreakdown(ctx, `
		SELECT e.category,`+stageBreakdownAggregates+`
		FROM maintenance_requests mr
		JOIN equipment e ON e.id = mr.equipment_id
		GROUP BY e.category
		ORDER BY total DESC
	`)
}

func (r *ReportRepository) RequestsByStage(ctx context.Context) ([]entities.StageCount, error) {
	q := queryEngine(ctx, r.storage)
	rows, err := q.Query(ctx, `
		SELECT stage, COUNT(*) FROM maintenance_requests GROUP BY stage ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []entities.StageCount
	for rows.Next() {
		var c entities.StageCount
		if err := rows.Scan(&c.Stage, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
