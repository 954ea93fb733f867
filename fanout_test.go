package recursor

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/recursor/memlist"
	"github.com/input-output-hk/catalyst-forge-libs/recursor/walktypes"
)

func TestFanout(t *testing.T) {
	tests := []struct {
		name        string
		opts        []walktypes.Option
		parallelism int
		want        []string
	}{
		{
			name:        "partitioned",
			opts:        []walktypes.Option{WithStartPrefix(start), WithPageSize(2)},
			parallelism: 2,
			want: []string{
				"dt=2019-04-19/h=10/orders/a.gz",
				"dt=2019-04-19/h=9/orders/a.gz",
				"dt=2019-04-19/h=9/orders/b.gz",
				"dt=2019-04-19/h=9/refunds/a.gz",
				"dt=2019-04-20/h=0/orders/a.gz",
				"dt=2019-04-20/h=1/refunds/a.gz",
				"dt=2019-04-20/h=1/refunds/b.gz",
				"dt=2019-04-20/h=1/refunds/c.gz",
			},
		},
		{
			name:        "default parallelism",
			opts:        []walktypes.Option{WithStartPrefix(start)},
			parallelism: 0,
			want: []string{
				"dt=2019-04-19/h=10/orders/a.gz",
				"dt=2019-04-19/h=9/orders/a.gz",
				"dt=2019-04-19/h=9/orders/b.gz",
				"dt=2019-04-19/h=9/refunds/a.gz",
				"dt=2019-04-20/h=0/orders/a.gz",
				"dt=2019-04-20/h=1/refunds/a.gz",
				"dt=2019-04-20/h=1/refunds/b.gz",
				"dt=2019-04-20/h=1/refunds/c.gz",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append(tt.opts, WithFilters(partitionFilters(t)...))
			w, err := New(partitionedStore(), opts...)
			require.NoError(t, err)

			var mu sync.Mutex
			perBranch := map[string][]string{}
			var got []string

			err = Fanout(context.Background(), w, tt.parallelism, func(_ context.Context, obj walktypes.Object) error {
				key := strings.TrimPrefix(obj.Key, start)
				branch := key[:strings.IndexByte(key, '/')]

				mu.Lock()
				defer mu.Unlock()
				got = append(got, key)
				perBranch[branch] = append(perBranch[branch], key)
				return nil
			})
			require.NoError(t, err)

			sort.Strings(got)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			assert.Equal(t, want, got)

			// within a branch the walk order is kept
			assert.Equal(t, tt.want[:4], perBranch["dt=2019-04-19"])
			assert.Equal(t, tt.want[4:], perBranch["dt=2019-04-20"])
		})
	}
}

func TestFanout_NoFilters(t *testing.T) {
	w, err := New(memlist.New("a", "b", "c/d"))
	require.NoError(t, err)

	var got []string
	err = Fanout(context.Background(), w, 4, func(_ context.Context, obj walktypes.Object) error {
		got = append(got, obj.Key)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestFanout_Errors(t *testing.T) {
	boom := fmt.Errorf("boom")

	t.Run("callback error", func(t *testing.T) {
		w, err := New(memlist.New("a/1", "b/1", "c/1"), WithDepth(1))
		require.NoError(t, err)

		err = Fanout(context.Background(), w, 1, func(_ context.Context, obj walktypes.Object) error {
			if obj.Key == "b/1" {
				return boom
			}
			return nil
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("branch listing error", func(t *testing.T) {
		store := memlist.New("a/1", "b/1")
		lister := walktypes.ListerFunc(func(ctx context.Context, req walktypes.ListRequest) (*walktypes.Page, error) {
			if req.Prefix == "b/" {
				return nil, boom
			}
			return store.List(ctx, req)
		})

		w, err := New(lister, WithDepth(1))
		require.NoError(t, err)

		err = Fanout(context.Background(), w, 2, func(context.Context, walktypes.Object) error { return nil })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("root listing error", func(t *testing.T) {
		lister := walktypes.ListerFunc(func(context.Context, walktypes.ListRequest) (*walktypes.Page, error) {
			return nil, boom
		})

		w, err := New(lister, WithDepth(1))
		require.NoError(t, err)

		err = Fanout(context.Background(), w, 2, func(context.Context, walktypes.Object) error { return nil })
		assert.ErrorIs(t, err, boom)
	})

	t.Run("no filters callback error", func(t *testing.T) {
		w, err := New(memlist.New("a"))
		require.NoError(t, err)

		err = Fanout(context.Background(), w, 2, func(context.Context, walktypes.Object) error { return boom })
		assert.ErrorIs(t, err, boom)
	})
}
