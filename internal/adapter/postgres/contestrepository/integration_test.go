package contestrepository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/bugfix-arena.net/internal/adapter/logging"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/static/errs"
)

// openTestDB creates a throwaway schema on TEST_DATABASE_URL and applies the migrations to it
func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	admin, err := sqlx.Connect("postgres", url)
	require.NoError(t, err)
	schema := fmt.Sprintf("arena_test_%d", time.Now().UnixNano())
	_, err = admin.Exec(`CREATE SCHEMA ` + schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(`DROP SCHEMA ` + schema + ` CASCADE`)
		_ = admin.Close()
	})

	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	db, err := sqlx.Connect("postgres", url+sep+"search_path="+schema)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ddl, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(ddl))
	require.NoError(t, err)
	return db
}

func addUser(t *testing.T, db *sqlx.DB, username string, role domain.Role) int64 {
	t.Helper()
	var id int64
	require.NoError(t, db.QueryRow(`INSERT INTO users (username, full_name, role) VALUES ($1, $1, $2) RETURNING id`, username, role).Scan(&id))
	return id
}

func TestRepositoryRoundsAndQuestions(t *testing.T) {
	db := openTestDB(t)
	repo := New(db, logging.NewNopLogger())
	ctx := context.Background()

	round := &domain.Round{RoundNumber: 1, Name: "R1", DurationMinutes: 30, Weight: 30, Status: domain.RoundStatusLocked}
	require.NoError(t, repo.CreateRound(ctx, round))
	assert.NotZero(t, round.ID)

	dup := &domain.Round{RoundNumber: 1, Name: "again", DurationMinutes: 10, Weight: 10, Status: domain.RoundStatusLocked}
	assert.ErrorIs(t, repo.CreateRound(ctx, dup), errs.ErrConflict)

	q := &domain.Question{RoundID: round.ID, Title: "Q1"}
	require.NoError(t, repo.CreateQuestion(ctx, q))
	for i, in := range []string{"1", "2", "3"} {
		tc := &domain.TestCase{QuestionID: q.ID, Input: in, ExpectedOutput: in, IsHidden: i == 2}
		require.NoError(t, repo.CreateTestCase(ctx, tc))
		assert.Equal(t, i, tc.Position)
	}
	bc := &domain.BuggyCode{QuestionID: q.ID, Language: "python", Code: "print(1)"}
	require.NoError(t, repo.CreateBuggyCode(ctx, bc))
	bc.Code = "print(2)"
	require.NoError(t, repo.UpdateBuggyCode(ctx, bc))

	tests, err := repo.ListTestCases(ctx, q.ID)
	require.NoError(t, err)
	require.Len(t, tests, 3)
	assert.Equal(t, "1", tests[0].Input)

	tests[0].ExpectedOutput = "one"
	require.NoError(t, repo.UpdateTestCase(ctx, tests[0]))
	tc, err := repo.GetTestCase(ctx, tests[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "one", tc.ExpectedOutput)
	assert.Equal(t, 0, tc.Position)

	stored, err := repo.GetBuggyCode(ctx, bc.ID)
	require.NoError(t, err)
	assert.Equal(t, "print(2)", stored.Code)

	questions, err := repo.ListQuestions(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Len(t, questions[0].TestCases, 3)
	assert.Len(t, questions[0].BuggyCodes, 1)

	n, err := repo.CountQuestions(ctx, round.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	start := time.Now().Add(-time.Hour)
	ends := start.Add(30 * time.Minute)
	changed, err := repo.TransitionRound(ctx, round.ID, []domain.RoundStatus{domain.RoundStatusLocked}, domain.RoundStatusActive, &start, &ends)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = repo.TransitionRound(ctx, round.ID, []domain.RoundStatus{domain.RoundStatusLocked}, domain.RoundStatusActive, nil, nil)
	require.NoError(t, err)
	assert.False(t, changed)

	expired, err := repo.ListExpiredRounds(ctx, time.Now())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, round.ID, expired[0].ID)

	missing, err := repo.GetRound(ctx, round.ID+100)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepositoryScoringTransaction(t *testing.T) {
	db := openTestDB(t)
	repo := New(db, logging.NewNopLogger())
	ctx := context.Background()

	userID := addUser(t, db, "ana", domain.RoleParticipant)
	addUser(t, db, "root", domain.RoleAdmin)
	round := &domain.Round{RoundNumber: 1, Name: "R1", DurationMinutes: 30, Weight: 30, Status: domain.RoundStatusActive}
	require.NoError(t, repo.CreateRound(ctx, round))
	q := &domain.Question{RoundID: round.ID, Title: "Q1"}
	require.NoError(t, repo.CreateQuestion(ctx, q))

	// concurrent writers serialise on the locked rows and see each other's attempts
	var wg sync.WaitGroup
	attempts := make(chan int, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
				if _, err := tx.LockRound(ctx, round.ID); err != nil {
					return err
				}
				uq, err := tx.LockUserQuestion(ctx, userID, q.ID)
				if err != nil {
					return err
				}
				uq.Attempts++
				if err := tx.SaveUserQuestion(ctx, uq); err != nil {
					return err
				}
				sub := domain.NewSubmission(userID, round.ID, q.ID, "python", "x", time.Now())
				sub.Attempt = uq.Attempts
				if err := tx.CreateSubmission(ctx, sub); err != nil {
					return err
				}
				attempts <- uq.Attempts
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	close(attempts)
	var got []int
	for a := range attempts {
		got = append(got, a)
	}
	assert.ElementsMatch(t, []int{1, 2}, got)

	err := repo.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		row, err := tx.LockLeaderboardRow(ctx, round.ID, userID)
		if err != nil {
			return err
		}
		row.Score = 20
		row.CorrectCount = 1
		if err := tx.SaveLeaderboardRow(ctx, row); err != nil {
			return err
		}
		rows, err := tx.ListLeaderboardRows(ctx, round.ID)
		if err != nil {
			return err
		}
		for _, r := range rows {
			r.Rank = 1
		}
		if err := tx.SaveRanks(ctx, rows); err != nil {
			return err
		}
		return tx.AddUserScore(ctx, userID, 20)
	})
	require.NoError(t, err)

	standings, err := repo.ListRoundStandings(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 20, standings[0].Score)
	assert.Equal(t, "ana", standings[0].TeamName)

	top, err := repo.TopUsers(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, 20, top[0].TotalScore)

	subs, err := repo.ListRoundSubmissions(ctx, round.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "Q1", subs[0].QuestionTitle)

	// a failing callback leaves nothing behind
	err = repo.WithinTx(ctx, func(ctx context.Context, tx secondary.ScoringTx) error {
		if err := tx.AddUserScore(ctx, userID, 100); err != nil {
			return err
		}
		return tx.AddUserScore(ctx, userID+1000, 1)
	})
	assert.ErrorIs(t, err, errs.ErrUserNotFound)
	top, err = repo.TopUsers(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, top[0].TotalScore)
}
