package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joho/godotenv"
	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
	"github.com/rs/cors"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/internal/router"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Initialize environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	accountID := os.Getenv("ACCOUNT_ID")
	accessKeyID := os.Getenv("ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("ACCESS_KEY_SECRET")

	// OAUTH
	callbackURL := os.Getenv("OAUTH_CALLBACK_URL")
	if callbackURL == "" {
		callbackURL = "http://localhost:3000/auth/google/callback"
	}
	goth.UseProviders(
		google.New(os.Getenv("GOOGLE_KEY"), os.Getenv("GOOGLE_SECRET"), callbackURL),
	)

	// Session store, shared with gothic
	isProd := os.Getenv("ENV") == "production"
	auth.NewSessionStore(os.Getenv("SESSION_SECRET"), isProd)

	// Database connection
	dsn := os.Getenv("DSN")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Create custom HTTP client with TLS config
	tr := &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			MaxVersion: tls.VersionTLS13,
			CipherSuites: []uint16{
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			},
		},
	}
	httpClient := &http.Client{Transport: tr}

	// Object storage for portfolio images (S3-compatible bucket)
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithHTTPClient(httpClient),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, accessKeySecret, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		log.Fatal("ERR CONFIG:", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID))
	})

	r := router.New(db, client)

	// The dashboard runs on a separate origin and sends the session
	// cookie, so credentials must be allowed.
	origins := []string{"http://localhost:5173"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	log.Println("Starting API server on :" + port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}
