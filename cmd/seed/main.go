package main

import (
	"context"
	"log"
	"os"

	"nftgame/internal/db"
	"nftgame/internal/domain"
	"nftgame/internal/repository"
	"nftgame/internal/service"

	"golang.org/x/crypto/bcrypt"
)

type catalogEntry struct {
	name        string
	slug        string
	rarity      domain.Rarity
	farmPower   int64
	battlePower int64
	priceGold   int64
}

var catalog = []catalogEntry{
	{"Bronze Warrior", "bronze-warrior", domain.RarityCommon, 5, 10, 50},
	{"Silver Knight", "silver-knight", domain.RarityUncommon, 12, 25, 150},
	{"Gold Paladin", "gold-paladin", domain.RarityRare, 30, 60, 400},
	{"Diamond Champion", "diamond-champion", domain.RarityEpic, 75, 150, 1000},
	{"Mythic Legend", "mythic-legend", domain.RarityLegendary, 200, 400, 3000},
}

func main() {
	// expects DATABASE_URL env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	ctx := context.Background()
	userRepo := repository.NewUserRepository(pool)
	nftRepo := repository.NewNFTRepository(pool)
	configRepo := repository.NewConfigRepository(pool)

	// Admin account, created once
	hasAdmin, err := userRepo.AdminExists(ctx)
	if err != nil {
		log.Fatalf("check admin: %v", err)
	}
	if !hasAdmin {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			log.Fatal("ADMIN_PASSWORD not set and no admin account exists")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash admin password: %v", err)
		}
		admin := &domain.User{
			Email:        envOr("ADMIN_EMAIL", "admin@example.com"),
			Username:     "admin",
			PasswordHash: string(hash),
			IsAdmin:      true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("admin created id=%d\n", admin.ID)
	} else {
		log.Println("admin already exists, skipping")
	}

	// Config defaults, stored so admins can tune them later
	configKeys := []string{
		domain.KeyGoldBuyRate,
		domain.KeyGoldSellRate,
		domain.KeyDailyAdLimit,
		domain.KeyAdRewardGold,
		domain.KeyEnergyRegenMinutes,
		domain.KeyEnergyCostGold,
	}
	for _, key := range configKeys {
		value, known := service.DefaultConfigValue(key)
		if !known {
			continue
		}
		if _, ok, err := configRepo.Get(ctx, key); err != nil {
			log.Fatalf("read config %s: %v", key, err)
		} else if ok {
			continue
		}
		if _, err := configRepo.Upsert(ctx, key, value); err != nil {
			log.Fatalf("seed config %s: %v", key, err)
		}
		log.Printf("config seeded %s=%s\n", key, value)
	}

	// Catalog templates, skipped if any catalog assets already exist
	existing, err := nftRepo.ListCatalog(ctx)
	if err != nil {
		log.Fatalf("read catalog: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("catalog already seeded (%d assets), skipping\n", len(existing))
		return
	}
	for _, e := range catalog {
		nft := &domain.NFT{
			Name:        e.name,
			Description: "A " + string(e.rarity) + " NFT warrior",
			ImageURL:    "/nft/" + e.slug + ".png",
			Rarity:      e.rarity,
			FarmPower:   e.farmPower,
			BattlePower: e.battlePower,
			PriceGold:   e.priceGold,
			PriceUSD:    float64(e.priceGold) / service.GoldPerUSD,
		}
		if err := nftRepo.Create(ctx, nft); err != nil {
			log.Fatalf("seed nft %s: %v", e.name, err)
		}
		log.Printf("nft seeded id=%d name=%s\n", nft.ID, nft.Name)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
