package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	businessdomain "github.com/smallbiznis/revu/internal/business/domain"
	businessrepo "github.com/smallbiznis/revu/internal/business/repository"
	"github.com/smallbiznis/revu/internal/config"
	"github.com/smallbiznis/revu/internal/providers/generator"
	reviewdomain "github.com/smallbiznis/revu/internal/review/domain"
	reviewrepo "github.com/smallbiznis/revu/internal/review/repository"
	reviewservice "github.com/smallbiznis/revu/internal/review/service"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubGenerator struct {
	text string
	err  error
}

func (g stubGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func newReviewService(t *testing.T, db *gorm.DB, gen generator.Provider) reviewdomain.Service {
	t.Helper()

	node, err := snowflake.NewNode(30)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	return reviewservice.NewService(reviewservice.Params{
		DB:           db,
		Log:          zap.NewNop(),
		GenID:        node,
		Cfg:          config.Config{RechargeBaseURL: "http://localhost:8080"},
		GenCfg:       &config.GenerationConfigHolder{},
		BusinessRepo: businessrepo.Provide(),
		Repo:         reviewrepo.Provide(),
		Generator:    gen,
	})
}

func TestGenerateDebitsOneCredit(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedBusiness(t, db, "chai-point", 5, true)

	svc := newReviewService(t, db, stubGenerator{text: "Lovely chai and quick service."})

	result, err := svc.Generate(ctx, "chai-point", "masala chai")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Exhausted {
		t.Fatal("result marked exhausted with credits available")
	}
	if result.Review != "Lovely chai and quick service." {
		t.Fatalf("review = %q", result.Review)
	}
	if got := balance(t, db, "chai-point"); got != 4 {
		t.Fatalf("balance = %d, want 4", got)
	}

	logs, err := svc.CountByBusiness(ctx, "chai-point")
	if err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if logs != 1 {
		t.Fatalf("review logs = %d, want 1", logs)
	}
}

func TestGenerateExhausted(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedBusiness(t, db, "chai-point", 0, true)

	svc := newReviewService(t, db, stubGenerator{text: "unused"})

	result, err := svc.Generate(ctx, "chai-point", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !result.Exhausted {
		t.Fatal("expected exhausted result")
	}
	if result.RechargeLink != "http://localhost:8080/r/chai-point" {
		t.Fatalf("recharge link = %q", result.RechargeLink)
	}
	if result.Review == "" {
		t.Fatal("exhausted result carries no notice text")
	}
	if got := balance(t, db, "chai-point"); got != 0 {
		t.Fatalf("balance = %d, want 0", got)
	}
}

func TestGenerateUnknownBusiness(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	svc := newReviewService(t, db, stubGenerator{text: "unused"})

	_, err := svc.Generate(ctx, "nope", "")
	if !errors.Is(err, businessdomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGenerateInactiveBusiness(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedBusiness(t, db, "closed-shop", 5, false)

	svc := newReviewService(t, db, stubGenerator{text: "unused"})

	_, err := svc.Generate(ctx, "closed-shop", "")
	if !errors.Is(err, businessdomain.ErrInactive) {
		t.Fatalf("err = %v, want ErrInactive", err)
	}
	if got := balance(t, db, "closed-shop"); got != 5 {
		t.Fatalf("balance = %d, want untouched 5", got)
	}
}

func TestGenerateFallsBackWhenGeneratorFails(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedBusiness(t, db, "chai-point", 5, true)

	svc := newReviewService(t, db, stubGenerator{err: generator.ErrUnavailable})

	result, err := svc.Generate(ctx, "chai-point", "masala chai")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := generator.Sanitize(generator.FallbackText(
		config.DefaultGenerationConfig().FallbackTemplate,
		generator.Request{Name: "Chai Point", Category: "cafe", City: "Bengaluru", Service: "masala chai"},
	))
	if result.Review != want {
		t.Fatalf("review = %q, want fallback %q", result.Review, want)
	}
	// The credit is still spent on the fallback path.
	if got := balance(t, db, "chai-point"); got != 4 {
		t.Fatalf("balance = %d, want 4", got)
	}
}

func TestGenerateSanitizesOutput(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedBusiness(t, db, "chai-point", 5, true)

	svc := newReviewService(t, db, stubGenerator{text: "<b>Great</b>\tchai!!\n\nVisit  now."})

	result, err := svc.Generate(ctx, "chai-point", "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Review != "bGreatb chai Visit now." {
		t.Fatalf("review = %q", result.Review)
	}
}

func TestGenerateConcurrentNeverOverspends(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedBusiness(t, db, "chai-point", 3, true)

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	svc := newReviewService(t, db, stubGenerator{text: "Nice place."})

	const workers = 8
	results := make([]reviewdomain.GenerateResult, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Generate(ctx, "chai-point", "")
		}(i)
	}
	wg.Wait()

	generated := 0
	for i := range results {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if !results[i].Exhausted {
			generated++
		}
	}
	if generated != 3 {
		t.Fatalf("generated %d reviews with 3 credits", generated)
	}
	if got := balance(t, db, "chai-point"); got != 0 {
		t.Fatalf("balance = %d, want 0", got)
	}
}

func seedBusiness(t *testing.T, db *gorm.DB, slug string, credits int64, active bool) {
	t.Helper()
	err := db.Exec(
		`INSERT INTO businesses (slug, name, category, city, contact, place_id, credit_balance, price_per_credit, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		slug, "Chai Point", "cafe", "Bengaluru", "", "", credits, int64(500), active, time.Now().UTC(),
	).Error
	if err != nil {
		t.Fatalf("seed business: %v", err)
	}
}

func balance(t *testing.T, db *gorm.DB, slug string) int64 {
	t.Helper()
	var got int64
	if err := db.Raw(`SELECT credit_balance FROM businesses WHERE slug = ?`, slug).Scan(&got).Error; err != nil {
		t.Fatalf("read balance: %v", err)
	}
	return got
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_review_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE businesses (
			slug TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT,
			city TEXT,
			contact TEXT,
			place_id TEXT,
			credit_balance BIGINT NOT NULL DEFAULT 0,
			price_per_credit BIGINT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE review_logs (
			id BIGINT PRIMARY KEY,
			business_slug TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}

	return db
}
