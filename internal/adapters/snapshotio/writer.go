package snapshotio

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okian/rivers/internal/domain/model"
)

// schema creates the four snapshot tables.
const schema = `
CREATE TABLE IF NOT EXISTS plays (
	game_id TEXT NOT NULL,
	season INTEGER NOT NULL,
	week INTEGER NOT NULL,
	pos_team TEXT NOT NULL,
	def_team TEXT NOT NULL,
	play_kind TEXT NOT NULL,
	down INTEGER,
	yards_to_go INTEGER,
	yardline_100 INTEGER NOT NULL,
	yards_gained INTEGER NOT NULL,
	epa REAL,
	success INTEGER NOT NULL,
	interception INTEGER NOT NULL,
	fumble_lost INTEGER NOT NULL,
	air_yards REAL,
	yards_after_catch REAL,
	qb_epa REAL,
	quarter_seconds_remaining INTEGER,
	game_seconds_remaining INTEGER
);
CREATE TABLE IF NOT EXISTS team_grades (
	team TEXT PRIMARY KEY,
	passing REAL, rushing REAL, receiving REAL,
	pass_blocking REAL, run_blocking REAL,
	pass_rush REAL, run_defense REAL, coverage REAL, tackling REAL,
	overall_offense REAL, overall_defense REAL
);
CREATE TABLE IF NOT EXISTS player_grades (
	team TEXT NOT NULL,
	position TEXT NOT NULL,
	player TEXT NOT NULL,
	grade REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS injuries (
	team TEXT NOT NULL,
	player TEXT NOT NULL,
	position TEXT NOT NULL,
	status TEXT NOT NULL,
	note TEXT NOT NULL DEFAULT '',
	long_term INTEGER NOT NULL DEFAULT 0,
	season_start INTEGER NOT NULL DEFAULT 0,
	rookie_backup INTEGER NOT NULL DEFAULT 0
);
`

// Save writes a complete snapshot to a sqlite file, creating the
// schema as needed. Existing rows are replaced wholesale so the file
// always holds exactly one snapshot.
func Save(
	ctx context.Context,
	path string,
	plays []model.PlayRow,
	teamGrades []model.TeamGrades,
	playerGrades []model.PlayerGrade,
	injuries []model.InjuryEntry,
) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpenSnapshot, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: schema: %v", ErrWriteSnapshot, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteSnapshot, err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	for _, table := range []string{"plays", "team_grades", "player_grades", "injuries"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("%w: clear %s: %v", ErrWriteSnapshot, table, err)
		}
	}

	if err := insertPlays(ctx, tx, plays); err != nil {
		return err
	}
	if err := insertGrades(ctx, tx, teamGrades, playerGrades); err != nil {
		return err
	}
	if err := insertInjuries(ctx, tx, injuries); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteSnapshot, err)
	}
	return nil
}

func insertPlays(ctx context.Context, tx *sql.Tx, plays []model.PlayRow) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO plays (
			game_id, season, week, pos_team, def_team, play_kind,
			down, yards_to_go, yardline_100, yards_gained,
			epa, success, interception, fumble_lost,
			air_yards, yards_after_catch, qb_epa,
			quarter_seconds_remaining, game_seconds_remaining
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("%w: plays: %v", ErrWriteSnapshot, err)
	}
	defer stmt.Close()

	for i := range plays {
		p := &plays[i]
		if _, err := stmt.ExecContext(ctx,
			p.GameID, p.Season, p.Week, string(p.PosTeam), string(p.DefTeam), p.Kind.String(),
			nullInt(p.Down, p.Down >= 1), nullInt(p.YardsToGo, p.YardsToGo >= 0), p.Yardline100, p.YardsGained,
			nullFloat(p.EPA, p.HasEPA), p.Success, p.Interception, p.FumbleLost,
			nullFloat(p.AirYards, p.HasAirYards), nullFloat(p.YardsAfterCatch, p.HasYardsAfterCatch), nullFloat(p.QBEPA, p.HasQBEPA),
			nullInt(p.QuarterSecondsRemaining, p.QuarterSecondsRemaining >= 0),
			nullInt(p.GameSecondsRemaining, p.GameSecondsRemaining >= 0),
		); err != nil {
			return fmt.Errorf("%w: plays: %v", ErrWriteSnapshot, err)
		}
	}
	return nil
}

func insertGrades(ctx context.Context, tx *sql.Tx, teamGrades []model.TeamGrades, playerGrades []model.PlayerGrade) error {
	for _, tg := range teamGrades {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO team_grades (
				team, passing, rushing, receiving, pass_blocking, run_blocking,
				pass_rush, run_defense, coverage, tackling,
				overall_offense, overall_defense
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			string(tg.Team),
			nullGrade(tg.Passing), nullGrade(tg.Rushing), nullGrade(tg.Receiving),
			nullGrade(tg.PassBlocking), nullGrade(tg.RunBlocking),
			nullGrade(tg.PassRush), nullGrade(tg.RunDefense), nullGrade(tg.Coverage), nullGrade(tg.Tackling),
			nullGrade(tg.OverallOffense), nullGrade(tg.OverallDefense),
		); err != nil {
			return fmt.Errorf("%w: team_grades: %v", ErrWriteSnapshot, err)
		}
	}

	for _, pg := range playerGrades {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO player_grades (team, position, player, grade) VALUES (?, ?, ?, ?)`,
			string(pg.Team), pg.Position.String(), pg.Player, pg.Grade,
		); err != nil {
			return fmt.Errorf("%w: player_grades: %v", ErrWriteSnapshot, err)
		}
	}
	return nil
}

func insertInjuries(ctx context.Context, tx *sql.Tx, injuries []model.InjuryEntry) error {
	for _, e := range injuries {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO injuries (team, player, position, status, note, long_term, season_start, rookie_backup)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			string(e.Team), e.Player, e.Position.String(), e.Status.String(), e.Note,
			e.LongTerm, e.SeasonStart, e.RookieBackup,
		); err != nil {
			return fmt.Errorf("%w: injuries: %v", ErrWriteSnapshot, err)
		}
	}
	return nil
}

func nullInt(v int, valid bool) any {
	if !valid {
		return nil
	}
	return v
}

func nullFloat(v float64, valid bool) any {
	if !valid {
		return nil
	}
	return v
}

func nullGrade(g model.Grade) any {
	if !g.Valid {
		return nil
	}
	return g.Value
}
