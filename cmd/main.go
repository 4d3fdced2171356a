package main

import (
	"context"
	"time"

	"bmicalc/config"
	"bmicalc/models"
	"bmicalc/routes"
	"bmicalc/services"
	"bmicalc/utils"
)

func main() {
	cfg := config.Load()
	utils.SetupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var s3c utils.S3ObjectGetter
	if cfg.S3Region != "" {
		client, err := utils.NewS3Client(ctx, cfg.S3Region)
		if err != nil {
			utils.Log.Fatalf("s3: %v", err)
		}
		s3c = client
	}

	table, err := services.LoadCategoryTable(ctx, cfg.CategoriesSource, s3c)
	if err != nil {
		utils.Log.Fatalf("%v", err)
	}

	f := cfg.Fields
	calc, err := services.NewBMICalculator(services.BMIConfig{
		WeightInputID:     f.Weight,
		HeightInputID:     f.Height,
		InchesInputID:     f.Inches,
		AgeInputID:        f.Age,
		GenderInputID:     f.Gender,
		BMIValueID:        f.BMIValue,
		BMIResultID:       f.BMIResult,
		ResultBoxID:       f.ResultBox,
		MeasurementSystem: models.MeasurementSystem(cfg.MeasurementSystem),
		BMICategories:     table,
	})
	if err != nil {
		utils.Log.Fatalf("bmi calculator: %v", err)
	}

	deps := routes.Deps{Calc: calc, Hub: services.NewRealtimeHub(), JWTSecret: []byte(cfg.JWTSecret)}
	if cfg.DBHost != "" {
		db, err := config.InitDB(cfg)
		if err != nil {
			utils.Log.Fatalf("%v", err)
		}
		deps.Store = services.NewGormProfileStore(db)
	} else {
		utils.Log.Warn("DB_HOST not set; profile endpoints disabled")
	}

	r := routes.SetupRouter(deps)
	utils.Log.Infof("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Log.Fatalf("server: %v", err)
	}
}
