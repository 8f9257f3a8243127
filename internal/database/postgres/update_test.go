package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetList_UpdateQuery(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var s SetList
	s.Add("name", "Pantalla")
	s.Add("quantity", 4)

	query, args := s.UpdateQuery("inventory", "abc", now, "id, name")
	assert.Equal(t, "UPDATE inventory SET name = $1, quantity = $2, updated_at = $3 WHERE id = $4 RETURNING id, name", query)
	assert.Equal(t, []any{"Pantalla", 4, now, "abc"}, args)
	assert.Equal(t, 2, s.Len())
}

func TestSetList_AddExpr(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	var s SetList
	s.Add("notes", "x")
	s.AddExpr("is_active", "CASE WHEN claim_date IS NULL THEN %s ELSE FALSE END", true)

	query, args := s.UpdateQuery("warranties", "w1", now, "id")
	assert.Equal(t, "UPDATE warranties SET notes = $1, is_active = CASE WHEN claim_date IS NULL THEN $2 ELSE FALSE END, updated_at = $3 WHERE id = $4 RETURNING id", query)
	assert.Equal(t, []any{"x", true, now, "w1"}, args)
}

func TestSetList_EmptyOnlyTouchesUpdatedAt(t *testing.T) {
	now := time.Now()

	var s SetList
	query, args := s.UpdateQuery("jobs", "j1", now, "*")
	assert.Equal(t, "UPDATE jobs SET updated_at = $1 WHERE id = $2 RETURNING *", query)
	assert.Equal(t, []any{now, "j1"}, args)
}

func TestConfig_URL(t *testing.T) {
	cfg := &Config{Host: "db", Port: "5432", User: "taller", Password: "p@ss", DBName: "repairs", SSLMode: "disable"}
	assert.Equal(t, "pgx5://taller:p%40ss@db:5432/repairs?sslmode=disable", cfg.URL("pgx5"))
}
