// Package main provides a tool to seed the database with demo review data.
//
// This creates a handful of users, reviews with Korean tags, likes, and
// comments to exercise the feed, tag preference, and search features during
// frontend development.
//
// Usage:
//
//	DATA_PATH=~/review/data go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/baejw0111/review-server/internal/domain"
	"github.com/baejw0111/review-server/internal/id"
	"github.com/baejw0111/review-server/internal/search"
	"github.com/baejw0111/review-server/internal/service"
	"github.com/baejw0111/review-server/internal/sse"
	"github.com/baejw0111/review-server/internal/store/sqlite"
)

// seedUsers are the nicknames for generated demo users.
var seedUsers = []string{"철수", "영희", "민준", "서연", "지우"}

// seedReviews are the demo reviews, one per entry, assigned round-robin.
var seedReviews = []struct {
	title   string
	content string
	rating  int
	tags    []string
}{
	{"쇼생크 탈출 후기", "희망에 대한 이야기. 몇 번을 봐도 좋다.", 5, []string{"드라마", "명작"}},
	{"기생충 다시 보기", "계단의 영화. 볼 때마다 새로운 게 보인다.", 5, []string{"드라마", "스릴러"}},
	{"콘클라베 감상", "긴장감이 끝까지 유지된다.", 4, []string{"드라마", "스릴러"}},
	{"서브스턴스 후기", "호불호가 갈리겠지만 나는 호.", 4, []string{"공포", "SF"}},
	{"듄 파트2", "IMAX로 봐야 하는 영화.", 5, []string{"SF", "액션"}},
	{"헤어질 결심", "붕괴라는 단어가 이렇게 쓰일 줄은.", 5, []string{"로맨스", "미스터리"}},
	{"존 오브 인터레스트", "소리로 기억되는 영화.", 4, []string{"드라마", "전쟁"}},
	{"퍼펙트 데이즈", "반복되는 일상이 이렇게 아름다울 수 있다니.", 4, []string{"드라마", "일상"}},
}

// seedComments are attached to random reviews by random users.
var seedComments = []string{
	"잘 봤습니다",
	"저도 이 영화 좋아해요",
	"덕분에 보러 갑니다",
	"평점이 후하신데요",
	"공감합니다",
}

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/review/data")
	}

	fmt.Printf("Seeding data at: %s\n", dataPath)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(dataPath, "review.db"), logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	index, err := search.NewIndex(search.Options{DataPath: dataPath, Logger: logger})
	if err != nil {
		log.Fatalf("Failed to open search index: %v", err)
	}
	defer index.Close()
	st.SetSearchIndexer(index)

	ctx := context.Background()
	idGen := id.NewGenerator(st)
	sseManager := sse.NewManager(logger)

	tagService := service.NewTagService(st, logger)
	notificationService := service.NewNotificationService(st, sseManager, logger)
	reviewService := service.NewReviewService(st, idGen, tagService, notificationService, nil, logger)
	commentService := service.NewCommentService(st, idGen, tagService, notificationService, logger)

	// Create demo users.
	users := make([]*domain.User, 0, len(seedUsers))
	for i, nickname := range seedUsers {
		userID, err := idGen.Generate(ctx, id.KindUser)
		if err != nil {
			log.Fatalf("Failed to generate user ID: %v", err)
		}

		user := domain.NewUser(userID, "kakao", fmt.Sprintf("seed-%d", i+1), nickname, "")
		if err := st.CreateUser(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", nickname, err)
		}
		users = append(users, user)
		fmt.Printf("  Created user: %s (%s)\n", nickname, userID)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Post reviews round-robin across users.
	reviewIDs := make([]string, 0, len(seedReviews))
	for i, r := range seedReviews {
		author := users[i%len(users)]

		review, err := reviewService.Create(ctx, author.ID, service.CreateReviewRequest{
			Title:   r.title,
			Content: r.content,
			Rating:  r.rating,
			Tags:    r.tags,
		})
		if err != nil {
			log.Fatalf("Failed to create review %q: %v", r.title, err)
		}
		reviewIDs = append(reviewIDs, review.ID)
		fmt.Printf("  Created review: %s (%s) by %s\n", r.title, review.ID, author.Nickname)
	}

	// Scatter likes. A user cannot like their own review, and each pair
	// likes at most once; conflicts are skipped.
	likes := 0
	for _, reviewID := range reviewIDs {
		for _, user := range users {
			if rng.Float32() > 0.4 {
				continue
			}
			if err := reviewService.Like(ctx, user.ID, reviewID); err != nil {
				continue
			}
			likes++
		}
	}
	fmt.Printf("  Created %d likes\n", likes)

	// Scatter comments.
	comments := 0
	for _, content := range seedComments {
		user := users[rng.Intn(len(users))]
		reviewID := reviewIDs[rng.Intn(len(reviewIDs))]

		if _, err := commentService.Create(ctx, user.ID, reviewID, service.CreateCommentRequest{Content: content}); err != nil {
			log.Printf("  Failed to create comment: %v", err)
			continue
		}
		comments++
	}
	fmt.Printf("  Created %d comments\n", comments)

	fmt.Println("Seeding complete!")
}
