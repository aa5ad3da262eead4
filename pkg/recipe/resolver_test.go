package recipe

import (
	"context"
	"errors"
	"testing"

	"Go-Recipe-Hub/entities"

	"github.com/stretchr/testify/require"
)

func TestResolveIngredientIgnoresCaseAndSpaces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := NewResolver(env.repo.IngredientTable(), env.repo.TypeTable())

	first, err := r.ResolveIngredient(ctx, "Cà chua")
	require.NoError(t, err)
	second, err := r.ResolveIngredient(ctx, "  cà CHUA ")
	require.NoError(t, err)
	require.Equal(t, first, second)

	var rows []entities.IngredientMaster
	require.NoError(t, env.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	require.Equal(t, "Cà chua", rows[0].Name)
	require.Equal(t, "cà chua", rows[0].NormalizedName)

	other, err := r.ResolveIngredient(ctx, "Cà rốt")
	require.NoError(t, err)
	require.NotEqual(t, first, other)
}

func TestResolveTypeUsesItsOwnTable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := NewResolver(env.repo.IngredientTable(), env.repo.TypeTable())

	typeID, err := r.ResolveType(ctx, "Món chay")
	require.NoError(t, err)
	again, err := r.ResolveType(ctx, "MÓN CHAY")
	require.NoError(t, err)
	require.Equal(t, typeID, again)

	var n int64
	require.NoError(t, env.db.Model(&entities.IngredientMaster{}).Count(&n).Error)
	require.Zero(t, n)
}

func TestNameTableMissIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, table := range []NameTable{env.repo.IngredientTable(), env.repo.TypeTable()} {
		id, found, err := table.FindByNormalized(ctx, "không có")
		require.NoError(t, err)
		require.False(t, found)
		require.Zero(t, id)

		inserted, err := table.Insert(ctx, "Không Có", "không có")
		require.NoError(t, err)
		id, found, err = table.FindByNormalized(ctx, "không có")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, inserted, id)
	}
}

func TestResolveRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)
	r := NewResolver(env.repo.IngredientTable(), env.repo.TypeTable())

	_, err := r.ResolveIngredient(context.Background(), "   ")
	require.ErrorIs(t, err, errBlankName)
}

// racingTable simulates a concurrent insert of the same key between lookup and insert.
type racingTable struct {
	finds     int
	winnerID  uint
	insertErr error
	lost      bool
}

func (r *racingTable) FindByNormalized(context.Context, string) (uint, bool, error) {
	r.finds++
	if r.finds == 1 || r.lost {
		return 0, false, nil
	}
	return r.winnerID, true, nil
}

func (r *racingTable) Insert(context.Context, string, string) (uint, error) {
	return 0, r.insertErr
}

func TestResolveRefetchesAfterLostInsert(t *testing.T) {
	table := &racingTable{winnerID: 7, insertErr: errors.New("UNIQUE constraint failed")}
	r := NewResolver(table, table)

	id, err := r.ResolveIngredient(context.Background(), "Muối")
	require.NoError(t, err)
	require.Equal(t, uint(7), id)
	require.Equal(t, 2, table.finds)
}

func TestResolveReturnsInsertErrorWhenRowStillMissing(t *testing.T) {
	insertErr := errors.New("disk full")
	table := &racingTable{insertErr: insertErr, lost: true}
	r := NewResolver(table, table)

	_, err := r.ResolveType(context.Background(), "Canh")
	require.ErrorIs(t, err, insertErr)
}

func TestUniqueNames(t *testing.T) {
	got := uniqueNames([]string{" Trứng ", "trứng", "", "  ", "Hành", "HÀNH", "Tỏi"})
	require.Equal(t, []string{"Trứng", "Hành", "Tỏi"}, got)
	require.Empty(t, uniqueNames(nil))
}
