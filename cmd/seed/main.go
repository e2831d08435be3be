package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/gastrohub-dev/gastrohub/backend/internal/config"
	"github.com/gastrohub-dev/gastrohub/backend/internal/repository"
	"github.com/gastrohub-dev/gastrohub/backend/internal/seed"
	"github.com/gastrohub-dev/gastrohub/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var businessID int64

	flag.IntVar(&op, "op", 0, "operation to run (1: random owners, 2: demo business for a random owner, 3: random shifts for a business, 4: random absences for a business, 5: full demo tenant)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.Int64Var(&businessID, "business-id", 0, "business to attach shifts/absences to")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("unable to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	switch op {
	case 0:
		slog.Error("no operation specified")
	case 1:
		if n <= 0 {
			slog.Error("invalid owner count")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			owner, err := utils.GenerateRandomOwner(cfg.Seed.OwnerPassword)
			if err != nil {
				slog.Error("unable to generate owner", slog.String("error", err.Error()))
				continue
			}

			if err := repo.CreateOwner(owner); err != nil {
				slog.Error("unable to insert owner", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("owners inserted", slog.Int("count", n-cnt))
	case 2:
		owner, err := utils.GenerateRandomOwner(cfg.Seed.OwnerPassword)
		if err != nil {
			slog.Error("unable to generate owner", slog.String("error", err.Error()))
			return
		}
		if err := repo.CreateOwner(owner); err != nil {
			slog.Error("unable to insert owner", slog.String("error", err.Error()))
			return
		}

		business := utils.GenerateRandomBusiness(owner.ID)
		if err := repo.CreateBusiness(business); err != nil {
			slog.Error("unable to insert business", slog.String("error", err.Error()))
			return
		}

		for i := 0; i < n; i++ {
			member := utils.GenerateRandomStaffMember(business.ID)
			if err := repo.CreateStaffMember(member); err != nil {
				slog.Error("unable to insert staff member", slog.String("error", err.Error()))
			}
		}

		slog.Info("demo business inserted", slog.String("name", business.Name), slog.Int64("id", business.ID))
	case 3:
		if businessID <= 0 {
			slog.Error("please provide a valid business id")
			return
		}

		staff, err := repo.GetStaffMembersByBusiness(businessID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				slog.Error("business has no staff", slog.Int64("business_id", businessID))
			default:
				slog.Error("unable to load staff", slog.String("error", err.Error()))
			}
			return
		}

		if err := seed.SeedShifts(repo, businessID, staff, n); err != nil {
			slog.Error("unable to seed shifts", slog.String("error", err.Error()))
		}
	case 4:
		if businessID <= 0 {
			slog.Error("please provide a valid business id")
			return
		}

		staff, err := repo.GetStaffMembersByBusiness(businessID)
		if err != nil {
			slog.Error("unable to load staff", slog.String("error", err.Error()))
			return
		}
		if len(staff) == 0 {
			slog.Error("business has no staff", slog.Int64("business_id", businessID))
			return
		}

		cnt := 0
		for i := 0; i < n; i++ {
			member := staff[rand.Intn(len(staff))]
			absence := utils.GenerateRandomAbsence(businessID, member.ID)
			if err := repo.CreateAbsence(absence); err != nil {
				slog.Error("unable to insert absence", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}

		slog.Info("absences inserted", slog.Int("count", cnt))
	case 5:
		if err := seed.SeedDemoTenant(repo, cfg.Seed.OwnerPassword); err != nil {
			slog.Error("unable to seed demo tenant", slog.String("error", err.Error()))
		}
	default:
		slog.Error("unknown operation")
	}
}
