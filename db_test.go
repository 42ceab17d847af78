package partition

import (
	"os"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gpt-tools/partition/dto"
	"github.com/gpt-tools/partition/interval"
	"github.com/gpt-tools/partition/ir"
	"github.com/stretchr/testify/require"
)

func runPartitionTest(t *testing.T, test func(t *testing.T, db *DB)) {
	backends := map[string][]Option{
		"badger":        {WithBackend(Badger)},
		"badger-memory": {InMemoryMode(true)},
		"bbolt":         {WithBackend(Bbolt)},
	}

	for name, opts := range backends {
		t.Run(name, func(t *testing.T) {
			dir, err := os.MkdirTemp("", "partition-test")
			require.NoError(t, err)
			defer os.RemoveAll(dir)

			db, err := Open(dir, opts...)
			require.NoError(t, err)
			defer db.Close()

			test(t, db)
		})
	}
}

func ageFeature() *ir.Feature {
	return &ir.Feature{
		Variables: []ir.Variable{
			{Name: "age", Type: ir.IntegerType},
			{Name: "member", Type: ir.BoolType},
		},
		Predicates: []ir.Predicate{
			{
				ir.IntervalCondition{Variable: "age", Expression: dto.Eq, Interval: interval.MustParseSet("[0, 18)")},
				ir.BoolCondition{Variable: "member", ShouldEqualTo: false},
			},
			{
				ir.IntervalCondition{Variable: "age", Expression: dto.Eq, Interval: interval.MustParseSet("[0, 18)").Inverse()},
				ir.BoolCondition{Variable: "member", ShouldEqualTo: true},
			},
		},
	}
}

func TestSaveFeature(t *testing.T) {
	runPartitionTest(t, func(t *testing.T, db *DB) {
		f := ageFeature()

		id, err := db.SaveFeature(f)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		has, err := db.HasFeature(id)
		require.NoError(t, err)
		require.True(t, has)

		expected, err := f.NTuples()
		require.NoError(t, err)

		inputs, err := db.Inputs(id)
		require.NoError(t, err)
		require.Equal(t, expected, inputs)

		age, ok := inputs[1].Get("age")
		require.True(t, ok)
		require.Equal(t, "in (-Inf, 0) [18, Inf)", age.String())
	})
}

func TestSaveEmptyFeature(t *testing.T) {
	runPartitionTest(t, func(t *testing.T, db *DB) {
		id, err := db.SaveFeature(&ir.Feature{})
		require.NoError(t, err)

		has, err := db.HasFeature(id)
		require.NoError(t, err)
		require.True(t, has)

		inputs, err := db.Inputs(id)
		require.NoError(t, err)
		require.Empty(t, inputs)
	})
}

func TestSaveInvalidFeature(t *testing.T) {
	runPartitionTest(t, func(t *testing.T, db *DB) {
		f := ageFeature()
		f.Variables = f.Variables[:1]

		_, err := db.SaveFeature(f)
		require.ErrorIs(t, err, ir.ErrUndefinedVariable)

		ids, err := db.Features()
		require.NoError(t, err)
		require.Empty(t, ids)
	})
}

func TestFeatureNotExist(t *testing.T) {
	runPartitionTest(t, func(t *testing.T, db *DB) {
		id := gofakeit.UUID()

		has, err := db.HasFeature(id)
		require.NoError(t, err)
		require.False(t, has)

		_, err = db.Inputs(id)
		require.ErrorIs(t, err, ErrFeatureNotExist)

		require.ErrorIs(t, db.DeleteFeature(id), ErrFeatureNotExist)
	})
}

func TestDeleteFeature(t *testing.T) {
	runPartitionTest(t, func(t *testing.T, db *DB) {
		id1, err := db.SaveFeature(ageFeature())
		require.NoError(t, err)
		id2, err := db.SaveFeature(ageFeature())
		require.NoError(t, err)

		ids, err := db.Features()
		require.NoError(t, err)
		require.ElementsMatch(t, []string{id1, id2}, ids)

		require.NoError(t, db.DeleteFeature(id1))

		has, err := db.HasFeature(id1)
		require.NoError(t, err)
		require.False(t, has)

		ids, err = db.Features()
		require.NoError(t, err)
		require.Equal(t, []string{id2}, ids)

		inputs, err := db.Inputs(id2)
		require.NoError(t, err)
		require.Len(t, inputs, 2)
	})
}

func TestManyTuples(t *testing.T) {
	runPartitionTest(t, func(t *testing.T, db *DB) {
		f := &ir.Feature{Variables: []ir.Variable{{Name: "x", Type: ir.FloatType(0.5)}}}

		n := 300
		for i := 0; i < n; i++ {
			lo := float64(gofakeit.Number(-1000, 1000))
			set, err := interval.NewSet(interval.Closed, lo, lo+float64(i), interval.Open)
			require.NoError(t, err)

			f.Predicates = append(f.Predicates, ir.Predicate{
				ir.IntervalCondition{Variable: "x", Expression: dto.Eq, Interval: set},
			})
		}

		id, err := db.SaveFeature(f)
		require.NoError(t, err)

		expected, err := f.NTuples()
		require.NoError(t, err)

		inputs, err := db.Inputs(id)
		require.NoError(t, err)
		require.Equal(t, expected, inputs)
	})
}

func TestReopen(t *testing.T) {
	for _, backend := range []Backend{Badger, Bbolt} {
		dir, err := os.MkdirTemp("", "partition-test")
		require.NoError(t, err)
		defer os.RemoveAll(dir)

		db, err := Open(dir, WithBackend(backend))
		require.NoError(t, err)

		id, err := db.SaveFeature(ageFeature())
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = Open(dir, WithBackend(backend))
		require.NoError(t, err)

		inputs, err := db.Inputs(id)
		require.NoError(t, err)
		require.Len(t, inputs, 2)
		require.NoError(t, db.Close())
	}
}

func TestOptions(t *testing.T) {
	c, err := defaultConfig().applyOptions([]Option{
		WithBackend(Bbolt),
		WithGCReclaimInterval(time.Minute),
		WithGCDiscardRatio(0.7),
	})
	require.NoError(t, err)
	require.Equal(t, Bbolt, c.Backend)
	require.Equal(t, time.Minute, c.GCReclaimInterval)
	require.Equal(t, 0.7, c.GCDiscardRatio)

	_, err = defaultConfig().applyOptions([]Option{WithGCReclaimInterval(0)})
	require.Error(t, err)

	_, err = defaultConfig().applyOptions([]Option{WithGCDiscardRatio(1)})
	require.Error(t, err)

	_, err = defaultConfig().applyOptions([]Option{WithBackend(Backend(42))})
	require.Error(t, err)

	_, err = defaultConfig().applyOptions([]Option{WithBackend(Bbolt), InMemoryMode(true)})
	require.Error(t, err)

	_, err = Open("", WithBackend(Backend(42)))
	require.Error(t, err)
}
