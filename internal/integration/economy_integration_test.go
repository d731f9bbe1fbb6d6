package integration

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"nftgame/internal/domain"
	"nftgame/internal/repository"
	"nftgame/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(db.Close)

	applyMigrations(t, db)
	return db
}

// createTestUser registers a fresh user and returns it with the
// starting bonus applied (100 GOLD, 5 USD, full energy).
func createTestUser(t *testing.T, db *pgxpool.Pool) *domain.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("testpassword"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	suffix := time.Now().UnixNano()
	u := &domain.User{
		Email:        fmt.Sprintf("u%d@test.local", suffix),
		Username:     fmt.Sprintf("u%d", suffix),
		PasswordHash: string(hash),
	}
	if err := repository.NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// grantNFT gives the user an owned asset with the given powers
func grantNFT(t *testing.T, db *pgxpool.Pool, ownerID, farmPower, battlePower int64) {
	t.Helper()
	nft := &domain.NFT{
		OwnerID:     &ownerID,
		Name:        "Test Warrior",
		Rarity:      domain.RarityCommon,
		FarmPower:   farmPower,
		BattlePower: battlePower,
	}
	if err := repository.NewNFTRepository(db).Create(context.Background(), nft); err != nil {
		t.Fatalf("create nft: %v", err)
	}
}

// backdateSignup shifts created_at so farming has accrued hours
func backdateSignup(t *testing.T, db *pgxpool.Pool, userID int64, d time.Duration) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`UPDATE users SET created_at = created_at - $1 WHERE id = $2`, d, userID)
	if err != nil {
		t.Fatalf("backdate signup: %v", err)
	}
}

// backdateAdViews shifts recorded views into an earlier quota window
func backdateAdViews(t *testing.T, db *pgxpool.Pool, userID int64, d time.Duration) {
	t.Helper()
	_, err := db.Exec(context.Background(),
		`UPDATE ad_views SET created_at = created_at - $1 WHERE user_id = $2`, d, userID)
	if err != nil {
		t.Fatalf("backdate ad views: %v", err)
	}
}

func TestLedger_ApplyKeepsPeg(t *testing.T) {
	db := testPool(t)
	u := createTestUser(t, db)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	if u.GoldBalance != 100 || u.USDBalance != 5.0 {
		t.Fatalf("starting bonus wrong: gold=%d usd=%f", u.GoldBalance, u.USDBalance)
	}

	if _, err := ledger.Apply(ctx, u.ID, 40, domain.TxFarmReward, "test credit"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	gold, usd, err := ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 140 {
		t.Fatalf("gold = %d, want 140", gold)
	}
	if usd != float64(gold)/service.GoldPerUSD {
		t.Fatalf("peg violated: gold=%d usd=%f", gold, usd)
	}
}

func TestLedger_InsufficientFundsLeavesNoTrace(t *testing.T) {
	db := testPool(t)
	u := createTestUser(t, db)
	ledger := service.NewLedgerService(db)
	ctx := context.Background()

	_, err := ledger.Apply(ctx, u.ID, -1000, domain.TxBattleEntry, "overdraft attempt")
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}

	gold, usd, err := ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 100 || usd != 5.0 {
		t.Fatalf("balance mutated on failure: gold=%d usd=%f", gold, usd)
	}

	history, err := ledger.History(ctx, u.ID, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(history))
	}
}

func TestEnergy_SpendThenBuy(t *testing.T) {
	db := testPool(t)
	u := createTestUser(t, db)
	ctx := context.Background()

	ledger := service.NewLedgerService(db)
	config := service.NewConfigService(db)
	energy := service.NewEnergyService(db, ledger, config)

	if err := energy.Spend(ctx, u.ID, 10); err != nil {
		t.Fatalf("spend: %v", err)
	}

	status, err := energy.Status(ctx, u.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Energy != 90 {
		t.Fatalf("energy after spend = %d, want 90", status.Energy)
	}

	// 10 points at 10 gold each consumes the whole starting bonus
	if err := energy.Buy(ctx, u.ID, 10); err != nil {
		t.Fatalf("buy: %v", err)
	}

	status, err = energy.Status(ctx, u.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Energy != 100 {
		t.Fatalf("energy after buy = %d, want 100", status.Energy)
	}

	gold, usd, err := ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 0 || usd != 0 {
		t.Fatalf("balance after buy: gold=%d usd=%f, want 0/0", gold, usd)
	}

	// Broke now, another purchase must fail without touching energy
	err = energy.Buy(ctx, u.ID, 1)
	if !errors.Is(err, service.ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	status, err = energy.Status(ctx, u.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Energy != 100 {
		t.Fatalf("energy mutated on failed buy: %d", status.Energy)
	}

	// An amount whose cost wraps negative must be rejected, never
	// credited.
	err = energy.Buy(ctx, u.ID, 1844674407370955160)
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	gold, _, err = ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 0 {
		t.Fatalf("gold = %d, overflowing buy mutated the balance", gold)
	}
}

func TestFarm_ClaimThenImmediateReclaim(t *testing.T) {
	db := testPool(t)
	u := createTestUser(t, db)
	ctx := context.Background()

	grantNFT(t, db, u.ID, 10, 0)
	backdateSignup(t, db, u.ID, 3*time.Hour)

	ledger := service.NewLedgerService(db)
	farm := service.NewFarmService(db, ledger)

	result, err := farm.Claim(ctx, u.ID)
	if err != nil {
		t.Fatalf("claim: %v", err)
	}
	// 10 power over ~3 hours, floor
	if result.GoldCredited < 29 || result.GoldCredited > 30 {
		t.Fatalf("credited = %d, want ~30", result.GoldCredited)
	}

	second, err := farm.Claim(ctx, u.ID)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if second.GoldCredited != 0 {
		t.Fatalf("immediate reclaim credited %d, want 0", second.GoldCredited)
	}
}

func TestFarm_ConcurrentClaimsCreditOnce(t *testing.T) {
	db := testPool(t)
	u := createTestUser(t, db)
	ctx := context.Background()

	grantNFT(t, db, u.ID, 10, 0)
	backdateSignup(t, db, u.ID, 5*time.Hour)

	ledger := service.NewLedgerService(db)
	farm := service.NewFarmService(db, ledger)

	const claimers = 4
	credits := make([]int64, claimers)
	errs := make([]error, claimers)

	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := farm.Claim(ctx, u.ID)
			if err != nil {
				errs[i] = err
				return
			}
			credits[i] = r.GoldCredited
		}(i)
	}
	wg.Wait()

	nonzero := 0
	for i := 0; i < claimers; i++ {
		if errs[i] != nil {
			t.Fatalf("claimer %d: %v", i, errs[i])
		}
		if credits[i] > 0 {
			nonzero++
		}
	}
	if nonzero != 1 {
		t.Fatalf("nonzero credits = %d, want exactly 1", nonzero)
	}
}

func TestAds_QuotaAndTokenReplay(t *testing.T) {
	db := testPool(t)
	u := createTestUser(t, db)
	ctx := context.Background()

	// Lower the daily limit so the test exhausts it quickly
	configRepo := repository.NewConfigRepository(db)
	if _, err := configRepo.Upsert(ctx, domain.KeyDailyAdLimit, "2"); err != nil {
		t.Fatalf("set limit: %v", err)
	}
	t.Cleanup(func() {
		_, _ = configRepo.Upsert(ctx, domain.KeyDailyAdLimit, "20")
	})

	ledger := service.NewLedgerService(db)
	config := service.NewConfigService(db)
	issuer := service.NewAdTokenIssuer("test-ad-key")
	ads := service.NewAdsService(db, ledger, config, issuer)

	// Tokens from distinct providers are distinct even within the same
	// second.
	providers := []domain.AdProvider{
		domain.ProviderUnityAds,
		domain.ProviderAdMob,
		domain.ProviderAppLovin,
	}

	token0, err := ads.IssueToken(u.ID, providers[0])
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	result, err := ads.Watch(ctx, u.ID, providers[0], token0)
	if err != nil {
		t.Fatalf("watch 0: %v", err)
	}
	if result.Reward != 5 || result.Remaining != 1 {
		t.Fatalf("watch 0: reward=%d remaining=%d", result.Reward, result.Remaining)
	}

	// Replaying the consumed token is rejected
	if _, err := ads.Watch(ctx, u.ID, providers[0], token0); !errors.Is(err, service.ErrInvalidToken) {
		t.Fatalf("replay err = %v, want ErrInvalidToken", err)
	}

	token1, err := ads.IssueToken(u.ID, providers[1])
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := ads.Watch(ctx, u.ID, providers[1], token1); err != nil {
		t.Fatalf("watch 1: %v", err)
	}

	// Third view exceeds the limit of 2
	token2, err := ads.IssueToken(u.ID, providers[2])
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	_, err = ads.Watch(ctx, u.ID, providers[2], token2)
	if !errors.Is(err, service.ErrDailyQuotaExceeded) {
		t.Fatalf("err = %v, want ErrDailyQuotaExceeded", err)
	}

	remaining, err := ads.RemainingToday(ctx, u.ID)
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("remaining = %d, want 0 at the limit", remaining)
	}

	gold, _, err := ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 110 {
		t.Fatalf("gold = %d, want 110 after two rewarded views", gold)
	}

	// Views recorded yesterday no longer count against today's quota;
	// the rejected token above was never consumed, so it is still
	// valid.
	backdateAdViews(t, db, u.ID, 24*time.Hour)

	remaining, err = ads.RemainingToday(ctx, u.ID)
	if err != nil {
		t.Fatalf("remaining after rollover: %v", err)
	}
	if remaining != 2 {
		t.Fatalf("remaining = %d, want full quota after rollover", remaining)
	}

	result, err = ads.Watch(ctx, u.ID, providers[2], token2)
	if err != nil {
		t.Fatalf("watch after rollover: %v", err)
	}
	if result.Remaining != 1 {
		t.Fatalf("remaining = %d, want limit-1 after rollover", result.Remaining)
	}

	gold, _, err = ledger.GetBalance(ctx, u.ID)
	if err != nil {
		t.Fatalf("get balance: %v", err)
	}
	if gold != 115 {
		t.Fatalf("gold = %d, want 115 after the rollover view", gold)
	}
}

func TestBattle_ForcedWinAndLoss(t *testing.T) {
	db := testPool(t)
	ctx := context.Background()

	ledger := service.NewLedgerService(db)
	config := service.NewConfigService(db)
	energy := service.NewEnergyService(db, ledger, config)

	t.Run("forced win pays double", func(t *testing.T) {
		u := createTestUser(t, db)
		battle := service.NewBattleServiceWithDraw(db, ledger, energy, 10,
			func() float64 { return 0.0 })

		outcome, err := battle.Start(ctx, u.ID, 50)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if outcome.Result != domain.BattleWin || outcome.Reward != 100 {
			t.Fatalf("outcome = %s/%d, want WIN/100", outcome.Result, outcome.Reward)
		}

		// 100 - 50 + 100
		gold, _, err := ledger.GetBalance(ctx, u.ID)
		if err != nil {
			t.Fatalf("get balance: %v", err)
		}
		if gold != 150 {
			t.Fatalf("gold = %d, want 150", gold)
		}

		status, err := energy.Status(ctx, u.ID)
		if err != nil {
			t.Fatalf("status: %v", err)
		}
		if status.Energy != 90 {
			t.Fatalf("energy = %d, want 90", status.Energy)
		}

		// Both gross flows are on the ledger, filterable by type
		entries, err := ledger.HistoryByType(ctx, u.ID, domain.TxBattleEntry, 10)
		if err != nil {
			t.Fatalf("history by type: %v", err)
		}
		if len(entries) != 1 || entries[0].GoldAmount != -50 {
			t.Fatalf("entry rows = %+v, want one -50 debit", entries)
		}
		wins, err := ledger.HistoryByType(ctx, u.ID, domain.TxBattleWin, 10)
		if err != nil {
			t.Fatalf("history by type: %v", err)
		}
		if len(wins) != 1 || wins[0].GoldAmount != 100 {
			t.Fatalf("win rows = %+v, want one 100 credit", wins)
		}
	})

	t.Run("forced loss keeps the fee", func(t *testing.T) {
		u := createTestUser(t, db)
		battle := service.NewBattleServiceWithDraw(db, ledger, energy, 10,
			func() float64 { return 0.99 })

		outcome, err := battle.Start(ctx, u.ID, 50)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if outcome.Result != domain.BattleLoss || outcome.Reward != 0 {
			t.Fatalf("outcome = %s/%d, want LOSS/0", outcome.Result, outcome.Reward)
		}

		gold, _, err := ledger.GetBalance(ctx, u.ID)
		if err != nil {
			t.Fatalf("get balance: %v", err)
		}
		if gold != 50 {
			t.Fatalf("gold = %d, want 50", gold)
		}

		battles, err := battle.History(ctx, u.ID, 10)
		if err != nil {
			t.Fatalf("history: %v", err)
		}
		if len(battles) != 1 || battles[0].Result != domain.BattleLoss {
			t.Fatalf("history = %+v", battles)
		}
	})

	t.Run("fee below minimum is rejected", func(t *testing.T) {
		u := createTestUser(t, db)
		battle := service.NewBattleServiceWithDraw(db, ledger, energy, 10,
			func() float64 { return 0.0 })

		_, err := battle.Start(ctx, u.ID, 5)
		if !errors.Is(err, service.ErrInvalidAmount) {
			t.Fatalf("err = %v, want ErrInvalidAmount", err)
		}
	})
}
