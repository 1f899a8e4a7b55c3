// storebench measures store mutation cost against a chosen substrate. Every
// mutation rewrites the full collection, so latency grows with N; this tool
// shows where that linear cost starts to hurt.
//
//	N=2000 SPARKFEED_STORAGE_BACKEND=memory go run ./cmd/storebench
package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/ndaedxo/Social-Media-Platform/config"
	"github.com/ndaedxo/Social-Media-Platform/internal/store"
	"github.com/ndaedxo/Social-Media-Platform/internal/substrate"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())
	sub := must(substrate.Open(cfg))
	ctx := context.Background()

	N := 1000
	if s := os.Getenv("N"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			N = n
		}
	}
	PAGE := cfg.Feed.PageSize

	identity := store.NewIdentityStore(ctx, sub)
	posts := store.NewPostsStore(ctx, sub)

	// seed users: u0 is the celebrity everyone follows
	celeb := must(identity.Login(ctx, "u0"))
	users := make([]string, N)
	for i := 0; i < N; i++ {
		u := must(identity.Login(ctx, fmt.Sprintf("u%06d", i+1)))
		users[i] = u.ID
	}

	followRecs := make([]time.Duration, 0, N)
	t0 := time.Now()
	for _, id := range users {
		st := time.Now()
		_ = identity.ToggleFollow(ctx, id, celeb.ID)
		followRecs = append(followRecs, time.Since(st))
	}
	followDur := time.Since(t0)

	postRecs := make([]time.Duration, 0, N)
	t1 := time.Now()
	for i, id := range users {
		st := time.Now()
		_ = must(posts.CreatePost(ctx, store.CreatePostParams{UserID: id, Content: fmt.Sprintf("post %d", i)}))
		postRecs = append(postRecs, time.Since(st))
	}
	postDur := time.Since(t1)

	likeRecs := make([]time.Duration, 0, N)
	all := posts.Posts()
	t2 := time.Now()
	for i := 0; i < N; i++ {
		st := time.Now()
		_ = posts.ToggleLike(ctx, all[i%len(all)].ID, celeb.ID)
		likeRecs = append(likeRecs, time.Since(st))
	}
	likeDur := time.Since(t2)

	q0 := time.Now()
	snap := posts.Posts()
	_ = snap[:min(PAGE, len(snap))]
	readDur := time.Since(q0)

	pct := func(vs []time.Duration, p float64) time.Duration {
		if len(vs) == 0 {
			return 0
		}
		xs := append([]time.Duration(nil), vs...)
		sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
		k := int(math.Ceil(p*float64(len(xs)))) - 1
		if k < 0 {
			k = 0
		}
		if k >= len(xs) {
			k = len(xs) - 1
		}
		return xs[k]
	}

	fmt.Printf("backend=%s, N=%d, PAGE=%d\n", cfg.Storage.Backend, N, PAGE)
	fmt.Printf("ToggleFollow total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		followDur, followDur/time.Duration(N), pct(followRecs, 0.50), pct(followRecs, 0.95), pct(followRecs, 0.99))
	fmt.Printf("CreatePost   total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		postDur, postDur/time.Duration(N), pct(postRecs, 0.50), pct(postRecs, 0.95), pct(postRecs, 0.99))
	fmt.Printf("ToggleLike   total: %v, per op: %v, p50: %v, p95: %v, p99: %v\n",
		likeDur, likeDur/time.Duration(N), pct(likeRecs, 0.50), pct(likeRecs, 0.95), pct(likeRecs, 0.99))
	fmt.Printf("Snapshot read(%d): %v\n", PAGE, readDur)
}
