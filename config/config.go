package config

import (
	"fmt"
	"os"

	"bmicalc/models"
	"bmicalc/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// BMIFields are the page widget ids the calculator reads and writes.
type BMIFields struct {
	Weight    string
	Height    string
	Inches    string
	Age       string
	Gender    string
	BMIValue  string
	BMIResult string
	ResultBox string
}

type Config struct {
	Port       string
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	JWTSecret  string
	LogLevel   string

	MeasurementSystem string
	CategoriesSource  string // file path or s3://bucket/key
	S3Region          string
	Fields            BMIFields
}

// Load reads .env when present, then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Log.WithError(err).Warn("could not load .env file")
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}

	return &Config{
		Port:              getEnv("PORT", "8080"),
		DBHost:            os.Getenv("DB_HOST"),
		DBUser:            os.Getenv("DB_USER"),
		DBPassword:        os.Getenv("DB_PASSWORD"),
		DBName:            os.Getenv("DB_NAME"),
		DBPort:            getEnv("DB_PORT", "5432"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MeasurementSystem: getEnv("MEASUREMENT_SYSTEM", string(models.Imperial)),
		CategoriesSource:  os.Getenv("BMI_CATEGORIES_SOURCE"),
		S3Region:          region,
		Fields: BMIFields{
			Weight:    getEnv("BMI_WEIGHT_ID", "weight"),
			Height:    getEnv("BMI_HEIGHT_ID", "height"),
			Inches:    getEnv("BMI_INCHES_ID", "inches"),
			Age:       getEnv("BMI_AGE_ID", "age"),
			Gender:    getEnv("BMI_GENDER_ID", "gender"),
			BMIValue:  getEnv("BMI_VALUE_ID", "bmiValue"),
			BMIResult: getEnv("BMI_RESULT_ID", "bmiResult"),
			ResultBox: getEnv("BMI_RESULT_BOX_ID", "resultBox"),
		},
	}
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	DB = db
	return db, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
