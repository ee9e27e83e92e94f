// Package snapshotio loads and saves full data snapshots (plays,
// grades, injuries) as single sqlite files. The injury-date
// predicates are resolved by whatever wrote the file; this loader
// hands them to the stores as plain booleans.
package snapshotio

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // sqlite driver

	"github.com/okian/rivers/internal/adapters/repository"
	"github.com/okian/rivers/internal/domain/model"
	"github.com/okian/rivers/internal/domain/types"
)

// Load reads a snapshot from a sqlite file. The file is opened
// read-only; a snapshot is immutable once built.
func Load(ctx context.Context, path string) (*repository.Snapshot, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenSnapshot, err)
	}
	defer db.Close()

	plays, err := loadPlays(ctx, db)
	if err != nil {
		return nil, err
	}
	teamGrades, playerGrades, err := loadGrades(ctx, db)
	if err != nil {
		return nil, err
	}
	injuries, err := loadInjuries(ctx, db)
	if err != nil {
		return nil, err
	}

	return repository.NewSnapshot(
		repository.NewPlayStore(plays),
		repository.NewGradeStore(teamGrades, playerGrades),
		repository.NewInjuryStore(injuries),
	), nil
}

func loadPlays(ctx context.Context, db *sql.DB) ([]model.PlayRow, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT game_id, season, week, pos_team, def_team, play_kind,
		       down, yards_to_go, yardline_100, yards_gained,
		       epa, success, interception, fumble_lost,
		       air_yards, yards_after_catch, qb_epa,
		       quarter_seconds_remaining, game_seconds_remaining
		FROM plays`)
	if err != nil {
		return nil, fmt.Errorf("%w: plays: %v", ErrReadSnapshot, err)
	}
	defer rows.Close()

	var plays []model.PlayRow
	for rows.Next() {
		var (
			p                     model.PlayRow
			posTeam, defTeam, kind string
			down, ytg, qsec, gsec sql.NullInt64
			epa, air, yac, qbEPA  sql.NullFloat64
			success               bool
		)
		if err := rows.Scan(
			&p.GameID, &p.Season, &p.Week, &posTeam, &defTeam, &kind,
			&down, &ytg, &p.Yardline100, &p.YardsGained,
			&epa, &success, &p.Interception, &p.FumbleLost,
			&air, &yac, &qbEPA,
			&qsec, &gsec,
		); err != nil {
			return nil, fmt.Errorf("%w: plays: %v", ErrReadSnapshot, err)
		}

		p.PosTeam = resolveTeam(posTeam)
		p.DefTeam = resolveTeam(defTeam)
		p.Kind = types.ParsePlayKind(kind)

		p.Down = int(down.Int64) // 0 when NULL
		p.YardsToGo = nullableInt(ytg)
		p.QuarterSecondsRemaining = nullableInt(qsec)
		p.GameSecondsRemaining = nullableInt(gsec)

		p.EPA, p.HasEPA = epa.Float64, epa.Valid
		p.AirYards, p.HasAirYards = air.Float64, air.Valid
		p.YardsAfterCatch, p.HasYardsAfterCatch = yac.Float64, yac.Valid
		p.QBEPA, p.HasQBEPA = qbEPA.Float64, qbEPA.Valid

		// Success must agree with the sign of EPA where present.
		if p.HasEPA {
			p.Success = p.EPA > 0
		} else {
			p.Success = success
		}

		plays = append(plays, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: plays: %v", ErrReadSnapshot, err)
	}
	return plays, nil
}

func loadGrades(ctx context.Context, db *sql.DB) ([]model.TeamGrades, []model.PlayerGrade, error) {
	teamRows, err := db.QueryContext(ctx, `
		SELECT team, passing, rushing, receiving, pass_blocking, run_blocking,
		       pass_rush, run_defense, coverage, tackling,
		       overall_offense, overall_defense
		FROM team_grades`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: team_grades: %v", ErrReadSnapshot, err)
	}
	defer teamRows.Close()

	var teamGrades []model.TeamGrades
	for teamRows.Next() {
		var (
			team string
			cols [11]sql.NullFloat64
		)
		if err := teamRows.Scan(
			&team, &cols[0], &cols[1], &cols[2], &cols[3], &cols[4],
			&cols[5], &cols[6], &cols[7], &cols[8], &cols[9], &cols[10],
		); err != nil {
			return nil, nil, fmt.Errorf("%w: team_grades: %v", ErrReadSnapshot, err)
		}
		tg := model.TeamGrades{
			Team:           resolveTeam(team),
			Passing:        nullableGrade(cols[0]),
			Rushing:        nullableGrade(cols[1]),
			Receiving:      nullableGrade(cols[2]),
			PassBlocking:   nullableGrade(cols[3]),
			RunBlocking:    nullableGrade(cols[4]),
			PassRush:       nullableGrade(cols[5]),
			RunDefense:     nullableGrade(cols[6]),
			Coverage:       nullableGrade(cols[7]),
			Tackling:       nullableGrade(cols[8]),
			OverallOffense: nullableGrade(cols[9]),
			OverallDefense: nullableGrade(cols[10]),
		}
		teamGrades = append(teamGrades, tg)
	}
	if err := teamRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: team_grades: %v", ErrReadSnapshot, err)
	}

	playerRows, err := db.QueryContext(ctx, `SELECT team, position, player, grade FROM player_grades`)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: player_grades: %v", ErrReadSnapshot, err)
	}
	defer playerRows.Close()

	var playerGrades []model.PlayerGrade
	for playerRows.Next() {
		var (
			team, position string
			pg             model.PlayerGrade
		)
		if err := playerRows.Scan(&team, &position, &pg.Player, &pg.Grade); err != nil {
			return nil, nil, fmt.Errorf("%w: player_grades: %v", ErrReadSnapshot, err)
		}
		pg.Team = resolveTeam(team)
		pg.Position = types.ParsePosition(position)
		playerGrades = append(playerGrades, pg)
	}
	if err := playerRows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: player_grades: %v", ErrReadSnapshot, err)
	}

	return teamGrades, playerGrades, nil
}

func loadInjuries(ctx context.Context, db *sql.DB) ([]model.InjuryEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT team, player, position, status, note,
		       long_term, season_start, rookie_backup
		FROM injuries`)
	if err != nil {
		return nil, fmt.Errorf("%w: injuries: %v", ErrReadSnapshot, err)
	}
	defer rows.Close()

	var injuries []model.InjuryEntry
	for rows.Next() {
		var (
			team, position, status string
			e                      model.InjuryEntry
		)
		if err := rows.Scan(&team, &e.Player, &position, &status, &e.Note,
			&e.LongTerm, &e.SeasonStart, &e.RookieBackup); err != nil {
			return nil, fmt.Errorf("%w: injuries: %v", ErrReadSnapshot, err)
		}
		e.Team = resolveTeam(team)
		e.Position = types.ParsePosition(position)
		e.Status = types.ParseInjuryStatus(status)
		injuries = append(injuries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: injuries: %v", ErrReadSnapshot, err)
	}
	return injuries, nil
}

// resolveTeam accepts an abbreviation or a full franchise name and
// falls back to the raw string for teams outside the alias table.
func resolveTeam(s string) types.TeamID {
	if id, ok := types.ResolveTeam(s); ok {
		return id
	}
	return types.TeamID(s)
}

func nullableInt(v sql.NullInt64) int {
	if !v.Valid {
		return -1
	}
	return int(v.Int64)
}

func nullableGrade(v sql.NullFloat64) model.Grade {
	if !v.Valid {
		return model.Grade{}
	}
	return model.GradeOf(v.Float64)
}
